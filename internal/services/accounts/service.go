package accounts

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"

	"msigctl/internal/crypto"
	"msigctl/internal/domain"
	"msigctl/internal/util/memzero"
)

// ErrUnknownAccount is returned for a signer that is neither an address nor
// a configured named account.
var ErrUnknownAccount = errors.New("unknown account")

// ChainIDSource provides the chain id transactions are signed for.
type ChainIDSource interface {
	ChainID(ctx context.Context) (*big.Int, error)
}

// PassphraseFunc returns the key store passphrase. It is called at most once,
// the first time a key is needed.
type PassphraseFunc func() (string, error)

// Service implements domain.AccountRegistry and domain.Transactors.
type Service struct {
	named      map[string]common.Address
	keys       domain.KeyStore
	chain      ChainIDSource
	passphrase PassphraseFunc
	log        log.Logger

	mu       sync.Mutex
	pass     *string
	unlocked map[common.Address]*ecdsa.PrivateKey
}

// New constructs an account service.
func New(
	named map[string]common.Address,
	keys domain.KeyStore,
	chain ChainIDSource,
	passphrase PassphraseFunc,
	logger log.Logger,
) *Service {
	copied := make(map[string]common.Address, len(named))
	for k, v := range named {
		copied[k] = v
	}
	return &Service{
		named:      copied,
		keys:       keys,
		chain:      chain,
		passphrase: passphrase,
		log:        logger,
		unlocked:   make(map[common.Address]*ecdsa.PrivateKey),
	}
}

// ResolveSigner turns identity into an address. Literal addresses win over
// names.
func (s *Service) ResolveSigner(identity string) (common.Address, error) {
	identity = strings.TrimSpace(identity)
	if crypto.IsAddress(identity) {
		return common.HexToAddress(identity), nil
	}
	addr, ok := s.named[identity]
	if !ok {
		return common.Address{}, fmt.Errorf("%w %q", ErrUnknownAccount, identity)
	}
	return addr, nil
}

// Names returns the configured account names, sorted.
func (s *Service) Names() []string {
	names := make([]string, 0, len(s.named))
	for n := range s.named {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Transactor returns signing options for account, bound to ctx.
func (s *Service) Transactor(ctx context.Context, account common.Address) (*bind.TransactOpts, error) {
	key, err := s.unlock(account)
	if err != nil {
		return nil, err
	}
	chainID, err := s.chain.ChainID(ctx)
	if err != nil {
		return nil, err
	}
	opts, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return nil, fmt.Errorf("transactor for %s: %w", account.Hex(), err)
	}
	opts.Context = ctx
	return opts, nil
}

// Close wipes every decrypted key.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for addr, key := range s.unlocked {
		memzero.ZeroKey(key)
		delete(s.unlocked, addr)
	}
	s.pass = nil
}

func (s *Service) unlock(account common.Address) (*ecdsa.PrivateKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if key, ok := s.unlocked[account]; ok {
		return key, nil
	}
	if s.pass == nil {
		if s.passphrase == nil {
			return nil, errors.New("no passphrase source configured")
		}
		p, err := s.passphrase()
		if err != nil {
			return nil, fmt.Errorf("read passphrase: %w", err)
		}
		s.pass = &p
	}
	key, err := s.keys.LoadKey(*s.pass, account)
	if err != nil {
		return nil, err
	}
	s.log.Debug("Unlocked signer key", "account", account)
	s.unlocked[account] = key
	return key, nil
}

var (
	_ domain.AccountRegistry = (*Service)(nil)
	_ domain.Transactors     = (*Service)(nil)
)
