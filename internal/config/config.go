package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	API       APIConfig
	Scheduler SchedulerConfig
	Reconcile ReconcileConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// APIConfig holds API access configuration
type APIConfig struct {
	// Key gates write and admin endpoints. Empty disables the gate, which
	// is only sensible for local development.
	Key string

	// FernetKey is the base64 fernet key used to encrypt provider
	// credentials at rest. Empty disables credential storage.
	FernetKey string
}

// SchedulerConfig holds background job configuration
type SchedulerConfig struct {
	Enabled          bool
	SnapshotSchedule string // cron expression for daily snapshot materialization
	CleanupSchedule  string // cron expression for job-run history pruning
	RetainJobRuns    int    // job_run rows to keep per job name
}

// ReconcileConfig holds the call-time defaults of the reconciliation engine.
// The lookback window bounds tolerate missing snapshot days; the right values
// depend on the ingestion cadence, so they are tunable rather than constants.
type ReconcileConfig struct {
	DailyWindowMin  int // 1-day lookback: closest prior within this window
	DailyWindowMax  int
	WeeklyWindowMin int // 5-day lookback window bounds
	WeeklyWindowMax int
	AbsThreshold    float64 // significance filter: absolute unit change
	PctThreshold    float64 // significance filter: percentage change
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/fundscope.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		API: APIConfig{
			Key:       getEnv("API_KEY", ""),
			FernetKey: getEnv("FERNET_KEY", ""),
		},
		Scheduler: SchedulerConfig{
			Enabled:          getEnvBool("SCHEDULER_ENABLED", true),
			SnapshotSchedule: getEnv("SNAPSHOT_SCHEDULE", "0 22 * * *"),
			CleanupSchedule:  getEnv("CLEANUP_SCHEDULE", "30 3 * * 0"),
			RetainJobRuns:    getEnvInt("RETAIN_JOB_RUNS", 200),
		},
		Reconcile: ReconcileConfig{
			DailyWindowMin:  getEnvInt("LOOKBACK_1D_WINDOW_MIN", 1),
			DailyWindowMax:  getEnvInt("LOOKBACK_1D_WINDOW_MAX", 14),
			WeeklyWindowMin: getEnvInt("LOOKBACK_5D_WINDOW_MIN", 3),
			WeeklyWindowMax: getEnvInt("LOOKBACK_5D_WINDOW_MAX", 10),
			AbsThreshold:    getEnvFloat("CHANGE_ABS_THRESHOLD", 1000),
			PctThreshold:    getEnvFloat("CHANGE_PCT_THRESHOLD", 0.5),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
