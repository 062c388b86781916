package interfaces

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
)

// KeyStore persists signer private keys encrypted under a passphrase.
type KeyStore interface {
	SaveKey(passphrase string, key *ecdsa.PrivateKey) (common.Address, error)
	LoadKey(passphrase string, account common.Address) (*ecdsa.PrivateKey, error)
	ListKeys() ([]common.Address, error)
}
