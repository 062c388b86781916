package store

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"msigctl/internal/crypto"
	"msigctl/internal/domain"
	"msigctl/internal/util/memzero"
)

const (
	keysDir       = "keys"
	keyFileSuffix = ".key.json"
)

// ErrKeyNotFound is returned when no key file exists for an account.
var ErrKeyNotFound = errors.New("no local key for account")

// KeyFileStore persists signer keys to disk, one encrypted file per account.
type KeyFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewKeyFileStore returns a KeyFileStore rooted at home.
func NewKeyFileStore(home string) *KeyFileStore {
	return &KeyFileStore{dir: filepath.Join(home, keysDir)}
}

// SaveKey encrypts key with passphrase and writes it under its address.
// An existing file for the same address is replaced.
func (s *KeyFileStore) SaveKey(passphrase string, key *ecdsa.PrivateKey) (common.Address, error) {
	if passphrase == "" {
		return common.Address{}, errors.New("passphrase required to store a key")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	address := crypto.Address(key)
	secret := crypto.KeyBytes(key)
	defer memzero.Zero(secret)

	f, err := seal(passphrase, address, secret)
	if err != nil {
		return common.Address{}, err
	}
	if err := writeJSON(s.path(address), f, 0o600); err != nil {
		return common.Address{}, err
	}
	return address, nil
}

// LoadKey reads and decrypts the key of account.
func (s *KeyFileStore) LoadKey(passphrase string, account common.Address) (*ecdsa.PrivateKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var f keyFile
	found, err := readJSON(s.path(account), &f)
	if err != nil {
		return nil, fmt.Errorf("read key file for %s: %w", account.Hex(), err)
	}
	if !found {
		return nil, fmt.Errorf("%w %s", ErrKeyNotFound, account.Hex())
	}
	if f.Address != account {
		return nil, fmt.Errorf("key file for %s holds %s", account.Hex(), f.Address.Hex())
	}
	secret, err := open(passphrase, f)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(secret)

	key, err := crypto.KeyFromBytes(secret)
	if err != nil {
		return nil, err
	}
	if crypto.Address(key) != account {
		return nil, errWrongPassphrase
	}
	return key, nil
}

// ListKeys returns the accounts that have a stored key, sorted by address.
func (s *KeyFileStore) ListKeys() ([]common.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var out []common.Address
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, keyFileSuffix) {
			continue
		}
		var f keyFile
		if _, err := readJSON(filepath.Join(s.dir, name), &f); err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		out = append(out, f.Address)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cmp(out[j]) < 0 })
	return out, nil
}

func (s *KeyFileStore) path(account common.Address) string {
	return filepath.Join(s.dir, strings.ToLower(account.Hex())+keyFileSuffix)
}

// Compile-time assertion that KeyFileStore implements domain.KeyStore.
var _ domain.KeyStore = (*KeyFileStore)(nil)
