// Package db manages the SQLite database backing the local store.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

var (
	db            *sql.DB
	dbInitialized bool
)

// GetDB returns the shared database connection, opening it on first
// use and running pending migrations.
func GetDB() (*sql.DB, error) {
	if db != nil {
		return db, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	appDir := filepath.Join(home, ".safeprag")
	dbPath := filepath.Join(appDir, "safeprag.db")

	if err := os.MkdirAll(appDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .safeprag directory: %w", err)
	}

	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if !dbInitialized {
		dbInitialized = true
		if err := RunMigrations(db); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	return db, nil
}

// GetDBPath returns the database file path without opening it.
func GetDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".safeprag", "safeprag.db"), nil
}

// Close closes the shared connection. Used by tests and shutdown.
func Close() error {
	if db == nil {
		return nil
	}
	err := db.Close()
	db = nil
	dbInitialized = false
	return err
}
