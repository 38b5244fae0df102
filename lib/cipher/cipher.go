package cipher

import (
	"bytes"
	"crypto/rand"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// ICipher transforms blobs before they are written and after they are read.
type ICipher interface {
	// Seal returns the protected form of plain.
	Seal(plain []byte) ([]byte, error)
	// Open reverses Seal.
	Open(sealed []byte) ([]byte, error)
}

var (
	// ErrNotSealed is returned by Open if the blob was not produced by this cipher.
	ErrNotSealed = errors.New("cipher: blob is not sealed")
	// ErrAuthentication is returned by Open if the key is wrong or the blob was modified.
	ErrAuthentication = errors.New("cipher: message authentication failed")
)

// --------------------------------------------------------------------------
// Plain (no encryption)
// --------------------------------------------------------------------------

// NewPlain returns a cipher that passes blobs through unchanged.
func NewPlain() ICipher {
	return plainImpl{}
}

type plainImpl struct{}

func (plainImpl) Seal(plain []byte) ([]byte, error) { return plain, nil }

func (plainImpl) Open(sealed []byte) ([]byte, error) { return sealed, nil }

// --------------------------------------------------------------------------
// Passphrase (scrypt + XChaCha20-Poly1305)
// --------------------------------------------------------------------------

// Layout of a sealed blob: magic | salt | nonce | ciphertext+tag
const (
	magic       = "JDBX\x01"
	saltSize    = 16
	keySize     = chacha20poly1305.KeySize
	headerSize  = len(magic) + saltSize + chacha20poly1305.NonceSizeX
	scryptR     = 8
	scryptP     = 1
	defaultCost = 1 << 15
)

// NewPassphrase returns a cipher deriving its key from passphrase with scrypt.
// Every instance uses one random salt for all blobs it seals; blobs sealed with
// another salt are opened by deriving their key on demand.
func NewPassphrase(passphrase string) ICipher {
	return newPassphrase(passphrase, defaultCost)
}

func newPassphrase(passphrase string, cost int) *passphraseImpl {
	return &passphraseImpl{
		passphrase: []byte(passphrase),
		cost:       cost,
	}
}

type passphraseImpl struct {
	passphrase []byte
	cost       int

	mu   sync.Mutex
	salt []byte // salt of the cached key, nil until first use
	key  []byte
}

// keyFor returns the key for salt, deriving and caching it if needed.
func (p *passphraseImpl) keyFor(salt []byte) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.salt != nil && bytes.Equal(p.salt, salt) {
		return p.key, nil
	}
	key, err := scrypt.Key(p.passphrase, salt, p.cost, scryptR, scryptP, keySize)
	if err != nil {
		return nil, fmt.Errorf("cipher: failed to derive key: %w", err)
	}
	p.salt = append([]byte(nil), salt...)
	p.key = key
	return key, nil
}

// sealSalt returns the salt used for sealing, creating it on first use.
func (p *passphraseImpl) sealSalt() ([]byte, error) {
	p.mu.Lock()
	salt := p.salt
	p.mu.Unlock()
	if salt != nil {
		return salt, nil
	}
	salt = make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("cipher: failed to generate salt: %w", err)
	}
	return salt, nil
}

func (p *passphraseImpl) Seal(plain []byte) ([]byte, error) {
	salt, err := p.sealSalt()
	if err != nil {
		return nil, err
	}
	key, err := p.keyFor(salt)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}

	out := make([]byte, headerSize, headerSize+len(plain)+aead.Overhead())
	copy(out, magic)
	copy(out[len(magic):], salt)
	nonce := out[len(magic)+saltSize : headerSize]
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("cipher: failed to generate nonce: %w", err)
	}
	return aead.Seal(out, nonce, plain, []byte(magic)), nil
}

func (p *passphraseImpl) Open(sealed []byte) ([]byte, error) {
	if len(sealed) < headerSize || string(sealed[:len(magic)]) != magic {
		return nil, ErrNotSealed
	}
	salt := sealed[len(magic) : len(magic)+saltSize]
	nonce := sealed[len(magic)+saltSize : headerSize]

	key, err := p.keyFor(salt)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	plain, err := aead.Open(nil, nonce, sealed[headerSize:], []byte(magic))
	if err != nil {
		return nil, ErrAuthentication
	}
	return plain, nil
}
