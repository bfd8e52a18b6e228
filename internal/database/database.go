package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

var (
	shared     *sql.DB
	sharedOnce sync.Once
	sharedErr  error

	// GetDB is a function variable to allow mocking in tests
	GetDB = func(dbPath string) (*sql.DB, error) {
		sharedOnce.Do(func() {
			shared, sharedErr = Open(dbPath)
		})
		return shared, sharedErr
	}
)

// DBPath returns the default path of the local data cache
func DBPath() string {
	return filepath.Join("data", "warehouse-map.db")
}

// Open opens (creating if needed) the sqlite cache at dbPath and makes sure
// the schema exists
func Open(dbPath string) (*sql.DB, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if dbPath == ":memory:" {
		// Each pooled connection would get its own empty database
		db.SetMaxOpenConns(1)
	}

	// Set pragmas for performance
	_, _ = db.Exec("PRAGMA journal_mode=WAL")
	_, _ = db.Exec("PRAGMA synchronous=NORMAL")
	_, _ = db.Exec("PRAGMA cache_size=10000")
	// Warehouses and boundaries provision concurrently on first run
	_, _ = db.Exec("PRAGMA busy_timeout=5000")

	if err := EnsureSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the cache tables if they do not exist. Existing rows
// are kept.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS warehouses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			company TEXT NOT NULL,
			address TEXT NOT NULL,
			state TEXT,
			source TEXT,
			type TEXT,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_warehouses_key ON warehouses(company, address);
		CREATE INDEX IF NOT EXISTS idx_warehouses_state ON warehouses(state);

		CREATE TABLE IF NOT EXISTS state_boundaries (
			geoid TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			stusps TEXT,
			geometry TEXT NOT NULL,
			bbox_min_lat REAL NOT NULL,
			bbox_max_lat REAL NOT NULL,
			bbox_min_lon REAL NOT NULL,
			bbox_max_lon REAL NOT NULL
		);

		CREATE TABLE IF NOT EXISTS data_sources (
			name TEXT PRIMARY KEY,
			url TEXT NOT NULL,
			row_count INTEGER NOT NULL,
			fetched_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating cache tables: %w", err)
	}

	return nil
}

// HasRows reports whether a cache table holds any data
func HasRows(db *sql.DB, table string) (bool, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking for %s table: %w", table, err)
	}
	if count == 0 {
		return false, nil
	}

	var exists int
	// table is one of our own names, never user input
	err = db.QueryRow(fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s)", table)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("counting %s: %w", table, err)
	}
	return exists == 1, nil
}

// RecordSource notes where and when a cache table was filled
func RecordSource(db *sql.DB, name, url string, rows int) error {
	_, err := db.Exec(`
		INSERT INTO data_sources (name, url, row_count, fetched_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET url = excluded.url, row_count = excluded.row_count, fetched_at = excluded.fetched_at
	`, name, url, rows)
	if err != nil {
		return fmt.Errorf("recording data source %s: %w", name, err)
	}
	return nil
}
