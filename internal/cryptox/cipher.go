// Package cryptox implements the authenticated encryption used for stored
// secrets. Ciphertexts are AES-256-GCM sealed with a fresh random nonce per
// call and base64-encoded so they are safe to keep in a text column.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/mkadlec/passvault/internal/common"
)

// KeySize is the required symmetric key length (AES-256).
const KeySize = 32

// Cipher encrypts and decrypts secret strings with a process-wide key.
// The key is injected at construction time; see keystore.Resolve.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher builds a Cipher from a raw 32-byte key.
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: need %d bytes, got %d", common.ErrInvalidKeyFormat, KeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &Cipher{aead: aead}, nil
}

// Encrypt seals plaintext under a fresh random nonce and returns
// base64(nonce || ciphertext). Two calls with the same plaintext produce
// different outputs; equality of stored secrets must not be observable.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. Any malformed, truncated, tampered or empty
// input fails with common.ErrDecryption; garbage is never returned.
func (c *Cipher) Decrypt(ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", common.ErrDecryption
	}

	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", common.ErrDecryption
	}

	if len(raw) < c.aead.NonceSize() {
		return "", common.ErrDecryption
	}

	nonce, sealed := raw[:c.aead.NonceSize()], raw[c.aead.NonceSize():]
	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", common.ErrDecryption
	}

	return string(plaintext), nil
}
