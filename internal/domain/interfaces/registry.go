package interfaces

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	domaintypes "msigctl/internal/domain/types"
)

// DeploymentRegistry maps a logical contract name to its canonical deployment.
type DeploymentRegistry interface {
	Deployment(ctx context.Context, name string) (domaintypes.Deployment, error)
}

// AccountRegistry turns a signer identity (literal address or named alias)
// into a concrete account.
type AccountRegistry interface {
	ResolveSigner(identity string) (common.Address, error)
}
