// Package crypto provides field-level encryption for client contact data.
// Emails and phone numbers are encrypted at rest; names stay in plaintext so
// list views and search remain usable.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
)

// Codec provides AES-256-GCM field-level encryption and decryption.
type Codec struct {
	aead cipher.AEAD
}

// NewCodec creates a Codec with the given 32-byte AES-256 key.
func NewCodec(key []byte) (*Codec, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("pii codec: key must be 32 bytes, got %d", len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("pii codec: create cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("pii codec: create GCM: %w", err)
	}

	return &Codec{aead: aead}, nil
}

// NewCodecFromHex creates a Codec from a 64-character hex-encoded key, the
// form the key takes in configuration.
func NewCodecFromHex(hexKey string) (*Codec, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("pii codec: decode hex key: %w", err)
	}
	return NewCodec(key)
}

// Encrypt encrypts the plaintext string and returns a base64-encoded
// ciphertext with the nonce prepended.
func (c *Codec) Encrypt(plaintext string) (string, error) {
	encrypted, err := c.EncryptBytes([]byte(plaintext))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(encrypted), nil
}

// Decrypt decodes the base64 ciphertext, extracts the prepended nonce, and
// decrypts.
func (c *Codec) Decrypt(ciphertext string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("pii decrypt: base64 decode: %w", err)
	}

	plaintext, err := c.DecryptBytes(data)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// EncryptBytes encrypts the data and returns the nonce prepended to the
// ciphertext.
func (c *Codec) EncryptBytes(data []byte) ([]byte, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("pii encrypt: generate nonce: %w", err)
	}

	// Seal appends the ciphertext to nonce, so the result is nonce + ciphertext.
	return c.aead.Seal(nonce, nonce, data, nil), nil
}

// DecryptBytes extracts the nonce from the front of data and decrypts the
// remainder.
func (c *Codec) DecryptBytes(data []byte) ([]byte, error) {
	nonceSize := c.aead.NonceSize()
	if len(data) < nonceSize {
		return nil, fmt.Errorf("pii decrypt: ciphertext too short")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("pii decrypt: %w", err)
	}
	return plaintext, nil
}
