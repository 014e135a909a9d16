// Package secretbox seals short secrets (client credentials) with a key from
// configuration. Each ciphertext records the id of the key that sealed it so
// keys can be rotated without rewriting every row at once.
package secretbox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

var (
	ErrUnknownKey = errors.New("secretbox: unknown key id")
	ErrMalformed  = errors.New("secretbox: malformed ciphertext")
)

type Keyring struct {
	current string
	keys    map[string][]byte
}

// NewKeyring takes a base64-encoded 32-byte key that becomes the sealing key.
func NewKeyring(keyID, encodedKey string) (*Keyring, error) {
	if keyID == "" {
		return nil, errors.New("secretbox: empty key id")
	}
	key, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("secretbox: decode key: %w", err)
	}
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("secretbox: key must be %d bytes, got %d", chacha20poly1305.KeySize, len(key))
	}
	return &Keyring{current: keyID, keys: map[string][]byte{keyID: key}}, nil
}

// AddKey registers an older key that can still open existing ciphertexts.
func (k *Keyring) AddKey(keyID, encodedKey string) error {
	key, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil {
		return fmt.Errorf("secretbox: decode key: %w", err)
	}
	if len(key) != chacha20poly1305.KeySize {
		return fmt.Errorf("secretbox: key must be %d bytes, got %d", chacha20poly1305.KeySize, len(key))
	}
	k.keys[keyID] = key
	return nil
}

// Seal returns base64(nonce||ciphertext) and the id of the key used.
// additional binds the ciphertext to its owner row.
func (k *Keyring) Seal(plaintext, additional string) (ciphertext string, keyID string, err error) {
	aead, err := chacha20poly1305.NewX(k.keys[k.current])
	if err != nil {
		return "", "", err
	}
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", "", err
	}
	sealed := aead.Seal(nonce, nonce, []byte(plaintext), []byte(additional))
	return base64.StdEncoding.EncodeToString(sealed), k.current, nil
}

func (k *Keyring) Open(ciphertext, keyID, additional string) (string, error) {
	key, ok := k.keys[keyID]
	if !ok {
		return "", ErrUnknownKey
	}
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", ErrMalformed
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return "", err
	}
	if len(raw) < aead.NonceSize() {
		return "", ErrMalformed
	}
	nonce, sealed := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, sealed, []byte(additional))
	if err != nil {
		return "", ErrMalformed
	}
	return string(plain), nil
}
