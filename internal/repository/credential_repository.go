package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/fundscope/fundscope-backend/internal/apperrors"
)

// CredentialRepository provides data access methods for the
// provider_credential table. Tokens are stored encrypted; this repository
// never sees plaintext.
type CredentialRepository struct {
	db *sql.DB
}

// NewCredentialRepository creates a new repository instance.
func NewCredentialRepository(db *sql.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Upsert stores the encrypted token for a provider, replacing any previous one.
func (r *CredentialRepository) Upsert(provider, tokenEncrypted string) error {
	query := `
		INSERT INTO provider_credential (provider, token_encrypted, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(provider) DO UPDATE SET
			token_encrypted = excluded.token_encrypted,
			updated_at = excluded.updated_at
	`

	_, err := r.db.Exec(query, provider, tokenEncrypted, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to upsert provider_credential: %w", err)
	}

	return nil
}

// Get retrieves the encrypted token and update time for a provider.
func (r *CredentialRepository) Get(provider string) (tokenEncrypted, updatedAt string, err error) {
	err = r.db.QueryRow(
		`SELECT token_encrypted, updated_at FROM provider_credential WHERE provider = ?`,
		provider,
	).Scan(&tokenEncrypted, &updatedAt)
	if err == sql.ErrNoRows {
		return "", "", apperrors.ErrCredentialNotFound
	}
	if err != nil {
		return "", "", fmt.Errorf("failed to query provider_credential: %w", err)
	}

	return tokenEncrypted, updatedAt, nil
}
