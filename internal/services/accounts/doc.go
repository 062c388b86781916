// Package accounts resolves signer identities and signs with local keys.
//
// A signer is either a literal address or a named account such as
// "deployer", configured per network. Transactions are signed with the key
// stored for that address in the encrypted key store; keys are decrypted on
// first use and wiped by Close.
package accounts
