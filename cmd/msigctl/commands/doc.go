// Package commands defines the msigctl CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - sign-tx, sign-txs         Confirm one or many multisig transactions
//   - execute-tx, execute-txs   Execute confirmed transactions
//   - revoke-sig, revoke-sigs   Revoke the signer's confirmation
//   - check-tx, check-txs       Show the state of transactions
//   - add-owner, remove-owner   Propose an owner set change
//   - owners                    List owners and the confirmation threshold
//   - key import, key list      Manage local signer keys
//   - version                   Print the build version
//
// The multi-id variants take an id spec such as 12,14,16-20,22. Ids run
// one at a time in the order given; the first failure stops the batch
// unless --continue-on-error is set.
//
// # Implementation
//
// The root command loads the config file, applies MSIGCTL_* environment
// variables and flags, and sets up logging before any subcommand runs.
// Commands that talk to the chain build the app graph on demand so key
// management works offline.
package commands
