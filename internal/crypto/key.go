package crypto

import (
	"crypto/ecdsa"
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	gethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// ErrInvalidKey is returned when a private key cannot be decoded.
var ErrInvalidKey = errors.New("invalid secp256k1 private key")

// ParsePrivateKey decodes a hex encoded secp256k1 private key. A 0x prefix
// and surrounding whitespace are tolerated.
func ParsePrivateKey(raw string) (*ecdsa.PrivateKey, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	key, err := gethcrypto.HexToECDSA(s)
	if err != nil {
		return nil, ErrInvalidKey
	}
	return key, nil
}

// Address returns the account address controlled by key.
func Address(key *ecdsa.PrivateKey) common.Address {
	return gethcrypto.PubkeyToAddress(key.PublicKey)
}

// KeyBytes returns the 32 byte big-endian scalar of key.
func KeyBytes(key *ecdsa.PrivateKey) []byte {
	return gethcrypto.FromECDSA(key)
}

// KeyFromBytes is the inverse of KeyBytes.
func KeyFromBytes(b []byte) (*ecdsa.PrivateKey, error) {
	key, err := gethcrypto.ToECDSA(b)
	if err != nil {
		return nil, ErrInvalidKey
	}
	return key, nil
}
