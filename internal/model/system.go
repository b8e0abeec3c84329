package model

// VersionInfo contains version and feature information for the application.
type VersionInfo struct {
	AppVersion string          `json:"app_version"`
	DbVersion  string          `json:"db_version"`
	Features   map[string]bool `json:"features"`
}

// ProviderCredential stores an encrypted API token for an external data
// provider. The token is fernet-encrypted at rest and only decrypted when
// handed to an ingestion client.
type ProviderCredential struct {
	Provider  string
	Token     string // Decrypted token; never stored in this form
	UpdatedAt string
}
