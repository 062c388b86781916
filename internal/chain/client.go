package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/log"

	"msigctl/internal/domain"
)

// DefaultWaitTimeout bounds how long WaitMined blocks for one transaction.
const DefaultWaitTimeout = 5 * time.Minute

// ErrNoRPC is returned by Dial when no endpoint is configured.
var ErrNoRPC = errors.New("no rpc endpoint configured")

// Backend is the subset of ethclient.Client used by Client.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
	Close()
}

// Client is a serial connection to one node.
type Client struct {
	backend     Backend
	log         log.Logger
	waitTimeout time.Duration

	mu      sync.Mutex
	chainID *big.Int
}

// Dial connects to the node at url.
func Dial(ctx context.Context, url string, logger log.Logger) (*Client, error) {
	if url == "" {
		return nil, ErrNoRPC
	}
	ec, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	logger.Debug("Connected to node", "url", url)
	return New(ec, logger), nil
}

// New wraps an existing backend, such as a simulated chain in tests.
func New(backend Backend, logger log.Logger) *Client {
	return &Client{backend: backend, log: logger, waitTimeout: DefaultWaitTimeout}
}

// SetWaitTimeout changes the mining wait bound. Zero or negative restores the
// default.
func (c *Client) SetWaitTimeout(d time.Duration) {
	if d <= 0 {
		d = DefaultWaitTimeout
	}
	c.waitTimeout = d
}

// SetChainID pins the chain id so it is not fetched from the node.
func (c *Client) SetChainID(id *big.Int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.chainID = id
}

// CodeAt returns the contract code at addr in the latest block.
func (c *Client) CodeAt(ctx context.Context, addr common.Address) ([]byte, error) {
	code, err := c.backend.CodeAt(ctx, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("code at %s: %w", addr.Hex(), err)
	}
	return code, nil
}

// ChainID returns the pinned chain id, querying the node once if unset.
func (c *Client) ChainID(ctx context.Context) (*big.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.chainID != nil {
		return new(big.Int).Set(c.chainID), nil
	}
	id, err := c.backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("chain id: %w", err)
	}
	c.chainID = id
	return new(big.Int).Set(id), nil
}

// WaitMined blocks until tx is included in a block or the wait timeout
// expires.
func (c *Client) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, c.waitTimeout)
	defer cancel()

	c.log.Info("Waiting for transaction", "hash", tx.Hash())
	start := time.Now()
	receipt, err := bind.WaitMined(ctx, c.backend, tx)
	if err != nil {
		return nil, fmt.Errorf("wait for %s: %w", tx.Hash().Hex(), err)
	}
	c.log.Debug("Transaction mined", "hash", tx.Hash(), "block", receipt.BlockNumber,
		"status", receipt.Status, "gas", receipt.GasUsed, "elapsed", time.Since(start))
	return receipt, nil
}

// Backend returns the contract backend for bindings.
func (c *Client) Backend() bind.ContractBackend { return c.backend }

// Close releases the connection.
func (c *Client) Close() { c.backend.Close() }

var _ domain.CodeReader = (*Client)(nil)
