package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrFundNotFound indicates that a fund with the given ID does not exist.
	ErrFundNotFound = errors.New("fund not found")

	// ErrContributorNotFound indicates that a contributor with the given ID does not exist.
	ErrContributorNotFound = errors.New("contributor not found")

	// ErrArticleNotFound indicates that an article with the given ID does not exist.
	ErrArticleNotFound = errors.New("article not found")

	// ErrSnapshotNotFound indicates no materialized snapshot exists for a fund and date.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrCredentialNotFound indicates no credential is stored for a provider.
	ErrCredentialNotFound = errors.New("provider credential not found")

	// ErrJobNotFound indicates that no run history exists for a job name.
	ErrJobNotFound = errors.New("job not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrInvalidTicker indicates that a ticker symbol fails format validation.
	ErrInvalidTicker = errors.New("invalid ticker symbol")

	// ErrInvalidThreshold indicates a negative significance threshold.
	ErrInvalidThreshold = errors.New("threshold cannot be negative")

	// ErrInvalidLookbackWindow indicates lookback window bounds that cannot
	// match any date (e.g., min greater than max, or non-positive bounds).
	ErrInvalidLookbackWindow = errors.New("invalid lookback window")

	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrNegativeAmount indicates that an amount field has an invalid negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrJobAlreadyRunning indicates the job lock is held by another run.
	ErrJobAlreadyRunning = errors.New("job already running")

	// ErrEmptyBatch indicates an ingestion request carried no rows.
	ErrEmptyBatch = errors.New("batch cannot be empty")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data. These errors indicate that an operation failed, but not due
// to missing entities or validation issues.
var (
	// Fund operation errors
	ErrFailedToRetrieveFunds     = errors.New("failed to retrieve funds")
	ErrFailedToRetrievePositions = errors.New("failed to retrieve positions")
	ErrFailedToRetrieveHistory   = errors.New("failed to retrieve position history")

	// Snapshot operation errors
	ErrFailedToRetrieveSnapshots   = errors.New("failed to retrieve snapshots")
	ErrFailedToMaterializeSnapshot = errors.New("failed to materialize snapshot")

	// ETF operation errors
	ErrFailedToRetrieveHoldings = errors.New("failed to retrieve holdings")
	ErrFailedToRetrieveChanges  = errors.New("failed to retrieve holding changes")

	// Contributor operation errors
	ErrFailedToRetrieveContributors = errors.New("failed to retrieve contributors")
	ErrFailedToRetrieveCapital      = errors.New("failed to retrieve contributor capital")

	// Disclosure operation errors
	ErrFailedToRetrieveDisclosures = errors.New("failed to retrieve disclosures")

	// Article operation errors
	ErrFailedToRetrieveArticles = errors.New("failed to retrieve articles")
	ErrFailedToCreateArticle    = errors.New("failed to create article")

	// Job operation errors
	ErrFailedToRetrieveJobRuns = errors.New("failed to retrieve job runs")
	ErrFailedToRecordJobRun    = errors.New("failed to record job run")

	// Ingestion operation errors
	ErrFailedToImportObservations = errors.New("failed to import observations")

	// System operation errors
	ErrFailedToGetVersionInfo = errors.New("failed to get version information")
)

// Data integrity errors represent inconsistencies or corruption in the data.
var (
	// ErrDataInconsistency indicates that the data is in an inconsistent state
	// (e.g., a position references a fund that doesn't exist).
	ErrDataInconsistency = errors.New("data inconsistency detected")

	// ErrMissingRequiredField indicates that a required field is missing or empty.
	ErrMissingRequiredField = errors.New("missing required field")
)
