package interfaces

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"

	domaintypes "msigctl/internal/domain/types"
)

// MultisigActions runs the single-id wallet operations. State-changing calls
// return only after the transaction is mined.
type MultisigActions interface {
	Confirm(
		ctx context.Context,
		wallet common.Address,
		id domaintypes.TxID,
		signer common.Address,
	) (domaintypes.ActionResult, error)
	Execute(
		ctx context.Context,
		wallet common.Address,
		id domaintypes.TxID,
		signer common.Address,
	) (domaintypes.ActionResult, error)
	Revoke(
		ctx context.Context,
		wallet common.Address,
		id domaintypes.TxID,
		signer common.Address,
	) (domaintypes.ActionResult, error)
	Check(
		ctx context.Context,
		wallet common.Address,
		id domaintypes.TxID,
	) (domaintypes.ActionResult, error)
}

// OwnerManager proposes owner set changes and lists the current owners.
type OwnerManager interface {
	AddOwner(
		ctx context.Context,
		wallet common.Address,
		owner common.Address,
		signer common.Address,
	) (domaintypes.Submission, error)
	RemoveOwner(
		ctx context.Context,
		wallet common.Address,
		owner common.Address,
		signer common.Address,
	) (domaintypes.Submission, error)
	Owners(ctx context.Context, wallet common.Address) (domaintypes.OwnerSet, error)
}

// Transactors provides signing options for a local account.
type Transactors interface {
	Transactor(ctx context.Context, account common.Address) (*bind.TransactOpts, error)
}
