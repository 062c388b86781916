package app

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/log"

	"msigctl/internal/chain"
	"msigctl/internal/domain"
	"msigctl/internal/multisig"
	"msigctl/internal/services/accounts"
	"msigctl/internal/services/resolver"
	"msigctl/internal/store"
)

// Wire bundles the concrete stores, services and clients for the CLI.
type Wire struct {
	Chain    *chain.Client
	Keys     *store.KeyFileStore
	Accounts *accounts.Service
	Resolver *resolver.Service
	Wallet   *multisig.Wallet
	Log      log.Logger
}

// NewWire validates cfg, connects to the node and constructs the dependency
// graph. Prompt supplies the passphrase when cfg.Passphrase is empty.
func NewWire(ctx context.Context, cfg Config, prompt accounts.PassphraseFunc, logger log.Logger) (*Wire, error) {
	resolved, err := cfg.Resolve()
	if err != nil {
		return nil, err
	}
	network := resolved.Network

	client, err := chain.Dial(ctx, network.RPC, logger)
	if err != nil {
		return nil, err
	}
	client.SetWaitTimeout(cfg.WaitTimeout)
	if network.ChainID != 0 {
		client.SetChainID(new(big.Int).SetUint64(network.ChainID))
	}

	// Pinned deployments win over hardhat-deploy files.
	registry := store.Deployments{
		store.StaticDeployments(resolved.Deployments),
		store.NewDeploymentFileStore(cfg.DeploymentsDir, cfg.Network),
	}

	keys := store.NewKeyFileStore(cfg.Home)
	passphrase := prompt
	if cfg.Passphrase != "" {
		passphrase = func() (string, error) { return cfg.Passphrase, nil }
	}
	accountSvc := accounts.New(resolved.Accounts, keys, client, passphrase, logger)

	wallet, err := multisig.New(client.Backend(), client, accountSvc, logger)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("multisig binding: %w", err)
	}

	logger.Debug("Wired application", "network", cfg.Network, "rpc", network.RPC, "home", cfg.Home)
	return &Wire{
		Chain:    client,
		Keys:     keys,
		Accounts: accountSvc,
		Resolver: resolver.New(client, registry, logger),
		Wallet:   wallet,
		Log:      logger,
	}, nil
}

// App exposes the wired graph through the domain interfaces.
func (w *Wire) App() *App {
	return New(w.Resolver, w.Accounts, w.Wallet, w.Wallet, w.Log, w.Close)
}

// Close wipes unlocked keys and drops the node connection.
func (w *Wire) Close() {
	w.Accounts.Close()
	w.Chain.Close()
}

// NewKeyStore returns the key store of cfg without touching the chain.
func NewKeyStore(cfg Config) domain.KeyStore {
	return store.NewKeyFileStore(cfg.Home)
}
