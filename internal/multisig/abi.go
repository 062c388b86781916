package multisig

import (
	_ "embed"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

//go:embed MultiSigWallet.abi.json
var walletABIJSON string

// Contract methods and events used by Wallet.
const (
	methodConfirm          = "confirmTransaction"
	methodExecute          = "executeTransaction"
	methodRevoke           = "revokeConfirmation"
	methodSubmit           = "submitTransaction"
	methodTransactions     = "transactions"
	methodConfirmations    = "confirmations"
	methodConfirmCount     = "getConfirmationCount"
	methodGetConfirmations = "getConfirmations"
	methodRequired         = "required"
	methodGetOwners        = "getOwners"
	methodAddOwner         = "addOwner"
	methodRemoveOwner      = "removeOwner"

	eventSubmission       = "Submission"
	eventExecution        = "Execution"
	eventExecutionFailure = "ExecutionFailure"
)

// WalletABI parses the embedded MultiSigWallet ABI.
func WalletABI() (abi.ABI, error) {
	return abi.JSON(strings.NewReader(walletABIJSON))
}

// eventID returns the id carried by the first log of event emitted by wallet.
// Every wallet event used here indexes the transaction id as its first topic.
func eventID(parsed abi.ABI, receipt *types.Receipt, wallet common.Address, event string) (*big.Int, bool) {
	sig := parsed.Events[event].ID
	for _, l := range receipt.Logs {
		if l.Address != wallet || len(l.Topics) < 2 || l.Topics[0] != sig {
			continue
		}
		return new(big.Int).SetBytes(l.Topics[1].Bytes()), true
	}
	return nil, false
}

// hasEvent reports whether wallet emitted event for id in receipt.
func hasEvent(parsed abi.ABI, receipt *types.Receipt, wallet common.Address, event string, id *big.Int) bool {
	sig := parsed.Events[event].ID
	topic := common.BigToHash(id)
	for _, l := range receipt.Logs {
		if l.Address == wallet && len(l.Topics) >= 2 && l.Topics[0] == sig && l.Topics[1] == topic {
			return true
		}
	}
	return false
}
