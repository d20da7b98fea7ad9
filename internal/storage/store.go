// Package storage provides the voter store over database/sql, supporting
// Postgres for production runs and SQLite for local ones.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/AzadNikarthil/rollscan/internal/config"
)

// Store owns the long-lived database handle. It is acquired once per run,
// passed into the orchestrator, and released at run end.
type Store struct {
	db     *sql.DB
	driver string
}

// Open connects to the configured database and verifies the connection.
func Open(cfg config.DatabaseConfig) (*Store, error) {
	var (
		db  *sql.DB
		err error
	)

	switch cfg.Driver {
	case "sqlite":
		db, err = sql.Open("sqlite3", cfg.SQLite.Path)
		if err == nil && cfg.SQLite.MaxOpenConns > 0 {
			db.SetMaxOpenConns(cfg.SQLite.MaxOpenConns)
		}
	case "postgres":
		db, err = sql.Open("postgres", cfg.Postgres.DSN)
		if err == nil {
			db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
			db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
			db.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)
		}
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s database: %w", cfg.Driver, err)
	}

	return &Store{db: db, driver: cfg.Driver}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Driver reports which SQL driver backs the store.
func (s *Store) Driver() string {
	return s.driver
}

// EnsureSchema creates the voters table and its indexes if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if s.driver == "postgres" {
		// Trigram index support for fuzzy address search.
		if _, err := s.db.ExecContext(ctx, "CREATE EXTENSION IF NOT EXISTS pg_trgm"); err != nil {
			return fmt.Errorf("enable pg_trgm: %w", err)
		}
	}

	ddl := `
		CREATE TABLE IF NOT EXISTS voters (
			epic_id VARCHAR(20) PRIMARY KEY,
			voter_name VARCHAR(255) NOT NULL,
			guardian_name VARCHAR(255),
			guardian_relation VARCHAR(50),
			age INTEGER,
			gender VARCHAR(50),
			house_details TEXT,
			full_address TEXT,
			pincode INTEGER,
			section_no INTEGER,
			section_name VARCHAR(255),
			part_no INTEGER,
			polling_station_name TEXT,
			assembly_constituency_no INTEGER,
			assembly_constituency_name VARCHAR(255),
			district_name VARCHAR(255),
			publication_date VARCHAR(10),
			data_source_file VARCHAR(255)
		)`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create voters table: %w", err)
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_voter_name ON voters (voter_name)",
		"CREATE INDEX IF NOT EXISTS idx_guardian_name ON voters (guardian_name)",
		"CREATE INDEX IF NOT EXISTS idx_pincode ON voters (pincode)",
		"CREATE INDEX IF NOT EXISTS idx_district ON voters (district_name)",
		"CREATE INDEX IF NOT EXISTS idx_ac_no ON voters (assembly_constituency_no)",
	}
	if s.driver == "postgres" {
		indexes = append(indexes,
			"CREATE INDEX IF NOT EXISTS idx_full_address_trgm ON voters USING gin (full_address gin_trgm_ops)")
	}
	for _, idx := range indexes {
		if _, err := s.db.ExecContext(ctx, idx); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	return nil
}
