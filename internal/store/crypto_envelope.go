package store

import (
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"msigctl/internal/util/memzero"
)

const (
	// The current supported version of the encrypted key format stored on disk.
	keyFormatVersion = 1
	saltSize         = 16
)

var (
	// Returned when the passphrase is incorrect or the ciphertext has been modified / corrupted.
	errWrongPassphrase = errors.New("wrong passphrase or corrupted key file")
)

// keyFile is the on-disk JSON structure holding one signer key. The address
// is stored in clear so keys can be listed without the passphrase; it is
// also bound to the ciphertext as associated data.
type keyFile struct {
	Version int            `json:"version"`
	Address common.Address `json:"address"`
	KDF     kdfParams      `json:"kdf"`
	Nonce   []byte         `json:"nonce"`
	Cipher  []byte         `json:"cipher"`
}

type kdfParams struct {
	Salt []byte `json:"salt"`
	N    int    `json:"scrypt_N"`
	R    int    `json:"scrypt_r"`
	P    int    `json:"scrypt_p"`
}

// seal derives a key from passphrase and encrypts secret for address.
func seal(passphrase string, address common.Address, secret []byte) (keyFile, error) {
	N, r, p := scryptParamsDefault()
	params := kdfParams{Salt: make([]byte, saltSize), N: N, R: r, P: p}
	if _, err := rand.Read(params.Salt); err != nil {
		return keyFile{}, err
	}
	aead, err := newAEAD(passphrase, params)
	if err != nil {
		return keyFile{}, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return keyFile{}, err
	}
	return keyFile{
		Version: keyFormatVersion,
		Address: address,
		KDF:     params,
		Nonce:   nonce,
		Cipher:  aead.Seal(nil, nonce, secret, associatedData(address, params.Salt)),
	}, nil
}

// open decrypts f using a key derived from passphrase.
func open(passphrase string, f keyFile) ([]byte, error) {
	if f.Version > keyFormatVersion {
		return nil, fmt.Errorf("unsupported key file version %d", f.Version)
	}
	aead, err := newAEAD(passphrase, f.KDF)
	if err != nil {
		return nil, err
	}
	if len(f.Nonce) != aead.NonceSize() {
		return nil, errWrongPassphrase
	}
	secret, err := aead.Open(nil, f.Nonce, f.Cipher, associatedData(f.Address, f.KDF.Salt))
	if err != nil {
		return nil, errWrongPassphrase
	}
	return secret, nil
}

func newAEAD(passphrase string, params kdfParams) (cipher.AEAD, error) {
	key, err := scrypt.Key([]byte(passphrase), params.Salt, params.N, params.R, params.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(key)
	return chacha20poly1305.New(key)
}

func associatedData(address common.Address, salt []byte) []byte {
	ad := make([]byte, 0, common.AddressLength+len(salt))
	ad = append(ad, address.Bytes()...)
	return append(ad, salt...)
}

// Tunables for scrypt key derivation.
func scryptParamsDefault() (N, r, p int) { return 1 << 15, 8, 1 }
