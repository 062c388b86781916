// Package chain provides the JSON-RPC connection msigctl uses to talk to an
// EVM node.
//
// Client wraps go-ethereum's ethclient and exposes the few calls the rest of
// the tool needs: reading contract code for the address resolver, the chain
// id for signing, and waiting for a sent transaction to be mined. The
// underlying bind.ContractBackend is available for contract bindings.
package chain
