// Package crypto exposes the minimal key and address helpers used by msigctl.
//
// Contents
//
//   - secp256k1 private key parsing and address derivation (ParsePrivateKey,
//     Address)
//   - Account address syntax checks, including the EIP-55 mixed-case
//     checksum (IsAddress, ParseAddress)
//
// # Notes
//
// The helpers wrap go-ethereum's crypto and common packages. Callers should
// treat returned private keys as sensitive and drop them as soon as the
// transaction is signed.
package crypto
