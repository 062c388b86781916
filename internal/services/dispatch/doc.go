// Package dispatch runs one multisig action over an ordered sequence of
// transaction ids.
//
// Ids are processed strictly one after another in sequence order. By default
// the first failure stops the batch and later ids are never touched; in
// continue-on-error mode every id is attempted and all failures are reported
// together. Ids already processed are never rolled back.
package dispatch
