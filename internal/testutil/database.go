package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Every pool connection to ":memory:" opens its own database, so the
	// pool must stay at one connection or concurrent queries would see an
	// empty schema.
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA timezone = 'UTC'",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the goose migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Fund table
		CREATE TABLE IF NOT EXISTS fund (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL UNIQUE,
			description TEXT,
			currency VARCHAR(3) NOT NULL DEFAULT 'USD',
			is_archived BOOLEAN NOT NULL DEFAULT FALSE
		);

		-- Append-only fund position snapshot log
		CREATE TABLE IF NOT EXISTS fund_position (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			fund_id VARCHAR(36) NOT NULL,
			ticker VARCHAR(10) NOT NULL,
			date DATE NOT NULL,
			shares FLOAT NOT NULL,
			price FLOAT NOT NULL,
			cost_basis FLOAT NOT NULL DEFAULT 0,
			ingested_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(fund_id) REFERENCES fund(id) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_fund_position_lookup
			ON fund_position(fund_id, ticker, date);

		-- Append-only ETF holdings snapshot log
		CREATE TABLE IF NOT EXISTS etf_holding (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			etf_ticker VARCHAR(10) NOT NULL,
			holding_ticker VARCHAR(10) NOT NULL,
			holding_name VARCHAR(100),
			date DATE NOT NULL,
			shares FLOAT NOT NULL,
			market_value FLOAT NOT NULL DEFAULT 0,
			weight FLOAT NOT NULL DEFAULT 0,
			ingested_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_etf_holding_lookup
			ON etf_holding(etf_ticker, holding_ticker, date);

		-- Materialized daily per-fund valuations
		CREATE TABLE IF NOT EXISTS daily_portfolio_snapshot (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			fund_id VARCHAR(36) NOT NULL,
			date DATE NOT NULL,
			position_count INTEGER NOT NULL,
			total_market_value FLOAT NOT NULL,
			total_basis FLOAT NOT NULL,
			total_unrealized FLOAT NOT NULL,
			total_return_pct FLOAT NOT NULL,
			calculated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(fund_id) REFERENCES fund(id) ON DELETE CASCADE,
			CONSTRAINT unique_fund_date UNIQUE (fund_id, date)
		);

		-- Contributor tables
		CREATE TABLE IF NOT EXISTS contributor (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			joined_at DATE NOT NULL
		);

		CREATE TABLE IF NOT EXISTS capital_event (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			contributor_id VARCHAR(36) NOT NULL,
			fund_id VARCHAR(36) NOT NULL,
			date DATE NOT NULL,
			amount FLOAT NOT NULL,
			FOREIGN KEY(contributor_id) REFERENCES contributor(id) ON DELETE CASCADE,
			FOREIGN KEY(fund_id) REFERENCES fund(id) ON DELETE CASCADE
		);

		-- Congressional trade disclosures
		CREATE TABLE IF NOT EXISTS congress_trade (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			politician VARCHAR(100) NOT NULL,
			chamber VARCHAR(6) NOT NULL,
			ticker VARCHAR(10) NOT NULL,
			transaction_type VARCHAR(4) NOT NULL,
			amount_range VARCHAR(30) NOT NULL,
			transaction_date DATE NOT NULL,
			disclosure_date DATE NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_congress_trade_ticker
			ON congress_trade(ticker, disclosure_date);

		-- Research articles
		CREATE TABLE IF NOT EXISTS article (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			title VARCHAR(200) NOT NULL,
			ticker VARCHAR(10),
			summary TEXT,
			content TEXT,
			published_at DATETIME NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		-- Background job run history
		CREATE TABLE IF NOT EXISTS job_run (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			job_name VARCHAR(50) NOT NULL,
			status VARCHAR(10) NOT NULL,
			detail TEXT,
			started_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			finished_at DATETIME
		);

		CREATE INDEX IF NOT EXISTS idx_job_run_name ON job_run(job_name, started_at);

		-- Job lock
		CREATE TABLE IF NOT EXISTS job_lock (
			name VARCHAR(50) NOT NULL PRIMARY KEY,
			locked_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			locked_by VARCHAR(36) NOT NULL
		);

		-- Encrypted external data provider credentials
		CREATE TABLE IF NOT EXISTS provider_credential (
			provider VARCHAR(50) NOT NULL PRIMARY KEY,
			token_encrypted TEXT NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := db.Exec(schema)
	return err
}
