package interfaces

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// CodeReader reads deployed contract code at the latest block.
type CodeReader interface {
	CodeAt(ctx context.Context, addr common.Address) ([]byte, error)
}
