// Package resolver decides which multisig wallet a command operates on.
//
// An operator-supplied candidate is used only when it is a well-formed
// address with contract code deployed at it. Anything else falls back to the
// default MultiSigWallet deployment from the deployment registry.
package resolver
