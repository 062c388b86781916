package types

import "github.com/ethereum/go-ethereum/common"

// ResolutionSource records which branch the address resolver took.
type ResolutionSource int

const (
	// ResolvedDefault means the registry's default deployment is used.
	ResolvedDefault ResolutionSource = iota
	// ResolvedExplicit means the operator supplied a deployed contract address.
	ResolvedExplicit
)

// String returns the string form of the source.
func (s ResolutionSource) String() string {
	if s == ResolvedExplicit {
		return "explicit"
	}
	return "default"
}

// Resolution is the multisig contract instance a command operates on.
type Resolution struct {
	Source    ResolutionSource
	Address   common.Address
	Requested string // candidate as typed by the operator
	Reason    string // why the default was used; empty for explicit targets
}

// IsDefault reports whether the default deployment was selected.
func (r Resolution) IsDefault() bool { return r.Source == ResolvedDefault }

// Deployment is an entry of the deployment registry.
type Deployment struct {
	Name    string         `json:"name,omitempty"`
	Address common.Address `json:"address"`
}
