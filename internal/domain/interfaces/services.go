package interfaces

import (
	"context"

	domaintypes "msigctl/internal/domain/types"
)

// TargetResolver decides which multisig contract instance a command uses.
type TargetResolver interface {
	Resolve(ctx context.Context, candidate string) (domaintypes.Resolution, error)
}
