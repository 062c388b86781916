package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ActionStatus summarises what a single-id action did.
type ActionStatus string

const (
	StatusConfirmed ActionStatus = "confirmed"
	StatusExecuted  ActionStatus = "executed"
	StatusRevoked   ActionStatus = "revoked"
	StatusChecked   ActionStatus = "checked"
	StatusSkipped   ActionStatus = "skipped"
)

// TxRecord is the state of a multisig transaction as stored by the wallet.
type TxRecord struct {
	ID            TxID
	Destination   common.Address
	Value         *big.Int
	Data          []byte
	Executed      bool
	Confirmations uint64
	Required      uint64
	ConfirmedBy   []common.Address
}

// Ready reports whether the transaction has enough confirmations to execute.
func (r TxRecord) Ready() bool {
	return !r.Executed && r.Required > 0 && r.Confirmations >= r.Required
}

// ActionResult is reported by every single-id action.
type ActionResult struct {
	Status ActionStatus
	Note   string
	TxHash common.Hash // zero for read-only or skipped actions
	Record *TxRecord   // set by CheckStatus
}

// Submission is a wallet transaction created through submitTransaction.
type Submission struct {
	ID     TxID
	TxHash common.Hash
}

// OwnerSet lists the wallet owners and the confirmation threshold.
type OwnerSet struct {
	Owners   []common.Address
	Required uint64
}
