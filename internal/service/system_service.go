package service

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/fundscope/fundscope-backend/internal/apperrors"
	"github.com/fundscope/fundscope-backend/internal/database"
	"github.com/fundscope/fundscope-backend/internal/model"
	"github.com/fundscope/fundscope-backend/internal/repository"
	"github.com/fundscope/fundscope-backend/internal/secrets"
	"github.com/fundscope/fundscope-backend/internal/version"
)

// SystemService handles system-related operations: health, version info, and
// provider credential management.
type SystemService struct {
	db             *sql.DB
	credentialRepo *repository.CredentialRepository
	encryptor      *secrets.Encryptor // nil when no fernet key is configured
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB, credentialRepo *repository.CredentialRepository, encryptor *secrets.Encryptor) *SystemService {
	return &SystemService{
		db:             db,
		credentialRepo: credentialRepo,
		encryptor:      encryptor,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// GetVersionInfo returns the application version and current schema version.
func (s *SystemService) GetVersionInfo() (model.VersionInfo, error) {
	schemaVersion, err := database.SchemaVersion(s.db)
	if err != nil {
		return model.VersionInfo{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToGetVersionInfo, err)
	}

	return model.VersionInfo{
		AppVersion: version.Version,
		DbVersion:  strconv.FormatInt(schemaVersion, 10),
		Features: map[string]bool{
			"credentials": s.encryptor != nil,
		},
	}, nil
}

// SetProviderCredential encrypts and stores an API token for a data provider.
func (s *SystemService) SetProviderCredential(provider, token string) error {
	if s.encryptor == nil {
		return fmt.Errorf("%w: no fernet key configured", apperrors.ErrCredentialNotFound)
	}
	if provider == "" || token == "" {
		return apperrors.ErrMissingRequiredField
	}

	encrypted, err := s.encryptor.Encrypt(token)
	if err != nil {
		return err
	}

	return s.credentialRepo.Upsert(provider, encrypted)
}

// GetProviderCredential decrypts and returns the stored token for a provider.
// Intended for ingestion clients, not for display; handlers expose only
// existence and update time.
func (s *SystemService) GetProviderCredential(provider string) (model.ProviderCredential, error) {
	if s.encryptor == nil {
		return model.ProviderCredential{}, apperrors.ErrCredentialNotFound
	}

	encrypted, updatedAt, err := s.credentialRepo.Get(provider)
	if err != nil {
		return model.ProviderCredential{}, err
	}

	token, err := s.encryptor.Decrypt(encrypted)
	if err != nil {
		return model.ProviderCredential{}, err
	}

	return model.ProviderCredential{
		Provider:  provider,
		Token:     token,
		UpdatedAt: updatedAt,
	}, nil
}
