// Package app wires application dependencies for the CLI.
//
// It loads Config from the YAML file and environment, sets up logging,
// connects to the node and builds the stores, bindings and services. The
// result is exposed via the Wire struct, and via App as domain interfaces for
// commands to use.
package app
