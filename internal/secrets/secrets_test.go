package secrets_test

import (
	"testing"

	"github.com/fundscope/fundscope-backend/internal/secrets"
)

// base64 of 32 bytes, the shape fernet key generation tooling produces.
const testKey = "YWJjZGVmZ2hpamtsbW5vcHFyc3R1dnd4eXoxMjM0NTY="

func TestEncryptor(t *testing.T) {
	t.Run("round-trips a secret", func(t *testing.T) {
		enc, err := secrets.NewEncryptor(testKey)
		if err != nil {
			t.Fatalf("NewEncryptor() returned unexpected error: %v", err)
		}

		token, err := enc.Encrypt("super-secret-api-token")
		if err != nil {
			t.Fatalf("Encrypt() returned unexpected error: %v", err)
		}
		if token == "super-secret-api-token" {
			t.Fatal("Expected ciphertext to differ from plaintext")
		}

		plaintext, err := enc.Decrypt(token)
		if err != nil {
			t.Fatalf("Decrypt() returned unexpected error: %v", err)
		}
		if plaintext != "super-secret-api-token" {
			t.Errorf("Expected original plaintext back, got %q", plaintext)
		}
	})

	t.Run("rejects a tampered token", func(t *testing.T) {
		enc, err := secrets.NewEncryptor(testKey)
		if err != nil {
			t.Fatalf("NewEncryptor() returned unexpected error: %v", err)
		}

		token, err := enc.Encrypt("secret")
		if err != nil {
			t.Fatalf("Encrypt() returned unexpected error: %v", err)
		}

		if _, err := enc.Decrypt(token + "x"); err == nil {
			t.Error("Expected decryption of a tampered token to fail")
		}
	})

	t.Run("rejects a malformed key", func(t *testing.T) {
		if _, err := secrets.NewEncryptor("not-a-key"); err == nil {
			t.Error("Expected a malformed key to be rejected")
		}
	})
}
