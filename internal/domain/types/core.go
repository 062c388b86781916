package types

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ErrInvalidTxID is returned when a transaction id cannot be read as a
// non-negative integer.
var ErrInvalidTxID = errors.New("invalid multisig transaction id")

// TxID identifies a multisig transaction. Ids coming from a single-id token
// keep the operator's text verbatim and are only converted when an action
// needs the number.
type TxID string

// String returns the string form of the id.
func (id TxID) String() string { return string(id) }

// BigInt converts the id to the uint256 argument expected by the contract.
// Base-10 and 0x-prefixed hex are accepted.
func (id TxID) BigInt() (*big.Int, error) {
	s := string(id)
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s, base = s[2:], 16
	}
	if s == "" || strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTxID, string(id))
	}
	n, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTxID, string(id))
	}
	return n, nil
}

// ActionKind selects the single-id operation run by the batch dispatcher.
type ActionKind int

const (
	ActionSign ActionKind = iota + 1
	ActionExecute
	ActionCheckStatus
	ActionRevoke
)

// String returns the command-facing name of the action.
func (k ActionKind) String() string {
	switch k {
	case ActionSign:
		return "sign"
	case ActionExecute:
		return "execute"
	case ActionCheckStatus:
		return "check"
	case ActionRevoke:
		return "revoke"
	default:
		return fmt.Sprintf("action(%d)", int(k))
	}
}

// Mutates reports whether the action sends a state-changing transaction.
func (k ActionKind) Mutates() bool {
	return k == ActionSign || k == ActionExecute || k == ActionRevoke
}
