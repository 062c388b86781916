package multisig

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/log"

	"msigctl/internal/domain"
)

var (
	// ErrReverted is returned when a mined transaction has a failed status.
	ErrReverted = errors.New("transaction reverted")
	// ErrExecutionFailed is returned when the wallet emitted ExecutionFailure,
	// meaning the inner call of the multisig transaction failed.
	ErrExecutionFailed = errors.New("multisig transaction execution failed")
	// ErrNoSubmission is returned when a submitTransaction receipt carries no
	// Submission event.
	ErrNoSubmission = errors.New("no submission event in receipt")
)

// Waiter blocks until a sent transaction is mined.
type Waiter interface {
	WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
}

// boundContract is the part of *bind.BoundContract used by Wallet.
type boundContract interface {
	Call(opts *bind.CallOpts, results *[]interface{}, method string, params ...interface{}) error
	Transact(opts *bind.TransactOpts, method string, params ...interface{}) (*types.Transaction, error)
}

// Wallet implements the multisig actions for any wallet address on one chain.
type Wallet struct {
	abi     abi.ABI
	bind    func(common.Address) boundContract
	waiter  Waiter
	signers domain.Transactors
	log     log.Logger
}

// New returns a Wallet that talks to the chain through backend.
func New(backend bind.ContractBackend, waiter Waiter, signers domain.Transactors, logger log.Logger) (*Wallet, error) {
	parsed, err := WalletABI()
	if err != nil {
		return nil, fmt.Errorf("parse wallet abi: %w", err)
	}
	w := &Wallet{abi: parsed, waiter: waiter, signers: signers, log: logger}
	w.bind = func(addr common.Address) boundContract {
		return bind.NewBoundContract(addr, parsed, backend, backend, backend)
	}
	return w, nil
}

// Confirm adds signer's confirmation to transaction id. Executed transactions
// and ones the signer already confirmed are skipped.
func (w *Wallet) Confirm(ctx context.Context, wallet common.Address, id domain.TxID, signer common.Address) (domain.ActionResult, error) {
	n, err := id.BigInt()
	if err != nil {
		return domain.ActionResult{}, err
	}
	c := w.bind(wallet)

	rec, err := w.transaction(ctx, c, n)
	if err != nil {
		return domain.ActionResult{}, err
	}
	if rec.Executed {
		return skipped("already executed"), nil
	}
	confirmed, err := w.isConfirmedBy(ctx, c, n, signer)
	if err != nil {
		return domain.ActionResult{}, err
	}
	if confirmed {
		return skipped("already confirmed by " + signer.Hex()), nil
	}

	w.log.Info("Confirming transaction", "wallet", wallet, "id", id, "signer", signer)
	receipt, err := w.transact(ctx, c, signer, methodConfirm, n)
	if err != nil {
		return domain.ActionResult{}, err
	}
	res := domain.ActionResult{Status: domain.StatusConfirmed, TxHash: receipt.TxHash}
	switch {
	case hasEvent(w.abi, receipt, wallet, eventExecution, n):
		res.Note = "executed"
	case hasEvent(w.abi, receipt, wallet, eventExecutionFailure, n):
		res.Note = "execution failed"
	}
	return res, nil
}

// Execute runs transaction id. The wallet emits ExecutionFailure rather than
// reverting when the inner call fails; that case is ErrExecutionFailed.
func (w *Wallet) Execute(ctx context.Context, wallet common.Address, id domain.TxID, signer common.Address) (domain.ActionResult, error) {
	n, err := id.BigInt()
	if err != nil {
		return domain.ActionResult{}, err
	}
	c := w.bind(wallet)

	rec, err := w.transaction(ctx, c, n)
	if err != nil {
		return domain.ActionResult{}, err
	}
	if rec.Executed {
		return skipped("already executed"), nil
	}

	w.log.Info("Executing transaction", "wallet", wallet, "id", id, "signer", signer)
	receipt, err := w.transact(ctx, c, signer, methodExecute, n)
	if err != nil {
		return domain.ActionResult{}, err
	}
	if hasEvent(w.abi, receipt, wallet, eventExecutionFailure, n) {
		return domain.ActionResult{}, fmt.Errorf("%w: id %s in %s", ErrExecutionFailed, id, receipt.TxHash.Hex())
	}
	res := domain.ActionResult{Status: domain.StatusExecuted, TxHash: receipt.TxHash}
	if !hasEvent(w.abi, receipt, wallet, eventExecution, n) {
		// executeTransaction is a no-op without enough confirmations.
		res.Note = "not executed: missing confirmations"
	}
	return res, nil
}

// Revoke withdraws signer's confirmation of transaction id.
func (w *Wallet) Revoke(ctx context.Context, wallet common.Address, id domain.TxID, signer common.Address) (domain.ActionResult, error) {
	n, err := id.BigInt()
	if err != nil {
		return domain.ActionResult{}, err
	}
	c := w.bind(wallet)

	rec, err := w.transaction(ctx, c, n)
	if err != nil {
		return domain.ActionResult{}, err
	}
	if rec.Executed {
		return skipped("already executed"), nil
	}
	confirmed, err := w.isConfirmedBy(ctx, c, n, signer)
	if err != nil {
		return domain.ActionResult{}, err
	}
	if !confirmed {
		return skipped("not confirmed by " + signer.Hex()), nil
	}

	w.log.Info("Revoking confirmation", "wallet", wallet, "id", id, "signer", signer)
	receipt, err := w.transact(ctx, c, signer, methodRevoke, n)
	if err != nil {
		return domain.ActionResult{}, err
	}
	return domain.ActionResult{Status: domain.StatusRevoked, TxHash: receipt.TxHash}, nil
}

// Check reads the stored state of transaction id.
func (w *Wallet) Check(ctx context.Context, wallet common.Address, id domain.TxID) (domain.ActionResult, error) {
	n, err := id.BigInt()
	if err != nil {
		return domain.ActionResult{}, err
	}
	c := w.bind(wallet)

	rec, err := w.transaction(ctx, c, n)
	if err != nil {
		return domain.ActionResult{}, err
	}
	rec.ID = id

	count, err := w.callUint(ctx, c, methodConfirmCount, n)
	if err != nil {
		return domain.ActionResult{}, err
	}
	rec.Confirmations = count

	required, err := w.callUint(ctx, c, methodRequired)
	if err != nil {
		return domain.ActionResult{}, err
	}
	rec.Required = required

	rec.ConfirmedBy, err = w.callAddresses(ctx, c, methodGetConfirmations, n)
	if err != nil {
		return domain.ActionResult{}, err
	}

	res := domain.ActionResult{Status: domain.StatusChecked, Record: &rec}
	switch {
	case rec.Executed:
		res.Note = "executed"
	case rec.Ready():
		res.Note = "ready to execute"
	default:
		res.Note = fmt.Sprintf("%d of %d confirmations", rec.Confirmations, rec.Required)
	}
	return res, nil
}

// AddOwner proposes adding owner to the wallet.
func (w *Wallet) AddOwner(ctx context.Context, wallet common.Address, owner common.Address, signer common.Address) (domain.Submission, error) {
	return w.submitSelfCall(ctx, wallet, signer, methodAddOwner, owner)
}

// RemoveOwner proposes removing owner from the wallet.
func (w *Wallet) RemoveOwner(ctx context.Context, wallet common.Address, owner common.Address, signer common.Address) (domain.Submission, error) {
	return w.submitSelfCall(ctx, wallet, signer, methodRemoveOwner, owner)
}

// Owners lists the current owners and the confirmation threshold.
func (w *Wallet) Owners(ctx context.Context, wallet common.Address) (domain.OwnerSet, error) {
	c := w.bind(wallet)
	owners, err := w.callAddresses(ctx, c, methodGetOwners)
	if err != nil {
		return domain.OwnerSet{}, err
	}
	required, err := w.callUint(ctx, c, methodRequired)
	if err != nil {
		return domain.OwnerSet{}, err
	}
	return domain.OwnerSet{Owners: owners, Required: required}, nil
}

// submitSelfCall submits a wallet transaction that calls method on the wallet
// itself and returns the multisig id it was assigned.
func (w *Wallet) submitSelfCall(ctx context.Context, wallet, signer common.Address, method string, args ...interface{}) (domain.Submission, error) {
	data, err := w.abi.Pack(method, args...)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("pack %s: %w", method, err)
	}

	w.log.Info("Submitting wallet transaction", "wallet", wallet, "call", method, "signer", signer)
	receipt, err := w.transact(ctx, w.bind(wallet), signer, methodSubmit, wallet, new(big.Int), data)
	if err != nil {
		return domain.Submission{}, err
	}
	id, ok := eventID(w.abi, receipt, wallet, eventSubmission)
	if !ok {
		return domain.Submission{}, fmt.Errorf("%w: %s", ErrNoSubmission, receipt.TxHash.Hex())
	}
	sub := domain.Submission{ID: domain.TxID(id.String()), TxHash: receipt.TxHash}
	w.log.Info("Wallet transaction submitted", "id", sub.ID, "hash", sub.TxHash)
	return sub, nil
}

// transact signs and sends method as signer, then waits until it is mined.
// The returned receipt always carries the transaction hash.
func (w *Wallet) transact(ctx context.Context, c boundContract, signer common.Address, method string, args ...interface{}) (*types.Receipt, error) {
	opts, err := w.signers.Transactor(ctx, signer)
	if err != nil {
		return nil, err
	}
	tx, err := c.Transact(opts, method, args...)
	if err != nil {
		return nil, fmt.Errorf("send %s: %w", method, err)
	}
	w.log.Debug("Transaction sent", "method", method, "hash", tx.Hash(), "nonce", tx.Nonce())

	receipt, err := w.waiter.WaitMined(ctx, tx)
	if err != nil {
		return nil, err
	}
	receipt.TxHash = tx.Hash()
	if receipt.Status == types.ReceiptStatusFailed {
		return nil, fmt.Errorf("%w: %s %s", ErrReverted, method, tx.Hash().Hex())
	}
	return receipt, nil
}

func (w *Wallet) transaction(ctx context.Context, c boundContract, id *big.Int) (domain.TxRecord, error) {
	var out []interface{}
	if err := c.Call(&bind.CallOpts{Context: ctx}, &out, methodTransactions, id); err != nil {
		return domain.TxRecord{}, fmt.Errorf("read transaction %s: %w", id, err)
	}
	if len(out) != 4 {
		return domain.TxRecord{}, fmt.Errorf("read transaction %s: unexpected %d outputs", id, len(out))
	}
	return domain.TxRecord{
		ID:          domain.TxID(id.String()),
		Destination: *abi.ConvertType(out[0], new(common.Address)).(*common.Address),
		Value:       *abi.ConvertType(out[1], new(*big.Int)).(**big.Int),
		Data:        *abi.ConvertType(out[2], new([]byte)).(*[]byte),
		Executed:    *abi.ConvertType(out[3], new(bool)).(*bool),
	}, nil
}

func (w *Wallet) isConfirmedBy(ctx context.Context, c boundContract, id *big.Int, signer common.Address) (bool, error) {
	var out []interface{}
	if err := c.Call(&bind.CallOpts{Context: ctx}, &out, methodConfirmations, id, signer); err != nil {
		return false, fmt.Errorf("read confirmation %s by %s: %w", id, signer.Hex(), err)
	}
	if len(out) == 0 {
		return false, fmt.Errorf("read confirmation %s: no output", id)
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

func (w *Wallet) callUint(ctx context.Context, c boundContract, method string, args ...interface{}) (uint64, error) {
	var out []interface{}
	if err := c.Call(&bind.CallOpts{Context: ctx}, &out, method, args...); err != nil {
		return 0, fmt.Errorf("call %s: %w", method, err)
	}
	if len(out) == 0 {
		return 0, fmt.Errorf("call %s: no output", method)
	}
	v := *abi.ConvertType(out[0], new(*big.Int)).(**big.Int)
	if !v.IsUint64() {
		return 0, fmt.Errorf("call %s: %s out of range", method, v)
	}
	return v.Uint64(), nil
}

func (w *Wallet) callAddresses(ctx context.Context, c boundContract, method string, args ...interface{}) ([]common.Address, error) {
	var out []interface{}
	if err := c.Call(&bind.CallOpts{Context: ctx}, &out, method, args...); err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("call %s: no output", method)
	}
	return *abi.ConvertType(out[0], new([]common.Address)).(*[]common.Address), nil
}

func skipped(note string) domain.ActionResult {
	return domain.ActionResult{Status: domain.StatusSkipped, Note: note}
}

var (
	_ domain.MultisigActions = (*Wallet)(nil)
	_ domain.OwnerManager    = (*Wallet)(nil)
)
