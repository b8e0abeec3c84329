// Package secrets encrypts provider API tokens for storage at rest using
// fernet symmetric encryption.
package secrets

import (
	"fmt"

	"github.com/fernet/fernet-go"
)

// Encryptor wraps a fernet key for token encryption and decryption.
type Encryptor struct {
	key *fernet.Key
}

// NewEncryptor parses a base64 fernet key as produced by fernet key
// generation tooling.
func NewEncryptor(encodedKey string) (*Encryptor, error) {
	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode fernet key: %w", err)
	}
	return &Encryptor{key: key}, nil
}

// Encrypt returns the fernet token for a plaintext secret.
func (e *Encryptor) Encrypt(plaintext string) (string, error) {
	token, err := fernet.EncryptAndSign([]byte(plaintext), e.key)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt secret: %w", err)
	}
	return string(token), nil
}

// Decrypt verifies and decrypts a stored fernet token. TTL 0 means stored
// tokens never expire; rotation happens by re-saving the credential.
func (e *Encryptor) Decrypt(token string) (string, error) {
	plaintext := fernet.VerifyAndDecrypt([]byte(token), 0, []*fernet.Key{e.key})
	if plaintext == nil {
		return "", fmt.Errorf("failed to decrypt secret: invalid or tampered token")
	}
	return string(plaintext), nil
}
