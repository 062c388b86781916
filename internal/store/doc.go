// Package store provides file-based persistence for msigctl.
//
// It contains concrete implementations of the domain storage and registry
// interfaces, reading and writing JSON on disk. Writes go through a temp file
// and rename. Stored files typically live under the user's configured home
// directory.
//
// The package includes:
//   - Signer keys encrypted with scrypt and ChaCha20-Poly1305 (KeyFileStore)
//   - hardhat-deploy deployment files (DeploymentFileStore)
//   - Configured deployment addresses (StaticDeployments)
//   - An ordered fallback over several registries (Deployments)
package store
