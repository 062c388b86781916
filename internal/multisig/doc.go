// Package multisig performs single transaction-id actions on a deployed
// Gnosis-style MultiSigWallet contract.
//
// Wallet binds the embedded contract ABI through go-ethereum's bind package.
// Reads use eth_call at the latest block. State-changing calls are signed
// with the operator's key, sent, and awaited until mined; the resulting
// receipt is checked for revert and for the wallet's Execution and
// ExecutionFailure events.
//
// Owner set changes are proposed as wallet transactions with
// submitTransaction, so they still need confirmations from the other owners.
package multisig
