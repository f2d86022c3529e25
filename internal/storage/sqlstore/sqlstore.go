// Package sqlstore implements storage.Storage on a key/value SQL table.
// PostgreSQL and MySQL are supported.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"

	"todo/internal/storage"
)

// DefaultTable is the table created when none is configured.
const DefaultTable = "todo_storage"

var tableNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

// ValidTableName reports whether name can be interpolated into queries.
func ValidTableName(name string) bool {
	return tableNameRe.MatchString(name)
}

// Dialect holds the SQL that differs between databases.
type Dialect struct {
	// Driver is the database/sql driver name.
	Driver string

	createTable string
	get         string
	upsert      string
	remove      string
}

// Postgres returns the PostgreSQL dialect for table.
func Postgres(table string) Dialect {
	return Dialect{
		Driver: "postgres",
		createTable: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	storage_key VARCHAR(255) PRIMARY KEY,
	storage_value TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`, table),
		get: fmt.Sprintf(`SELECT storage_value FROM %s WHERE storage_key = $1`, table),
		upsert: fmt.Sprintf(`INSERT INTO %s (storage_key, storage_value, updated_at) VALUES ($1, $2, NOW())
ON CONFLICT (storage_key) DO UPDATE SET storage_value = EXCLUDED.storage_value, updated_at = NOW()`, table),
		remove: fmt.Sprintf(`DELETE FROM %s WHERE storage_key = $1`, table),
	}
}

// MySQL returns the MySQL dialect for table.
func MySQL(table string) Dialect {
	return Dialect{
		Driver: "mysql",
		createTable: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	storage_key VARCHAR(255) PRIMARY KEY,
	storage_value LONGTEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)`, table),
		get: fmt.Sprintf(`SELECT storage_value FROM %s WHERE storage_key = ?`, table),
		upsert: fmt.Sprintf(`INSERT INTO %s (storage_key, storage_value) VALUES (?, ?)
ON DUPLICATE KEY UPDATE storage_value = VALUES(storage_value)`, table),
		remove: fmt.Sprintf(`DELETE FROM %s WHERE storage_key = ?`, table),
	}
}

// DialectFor returns the dialect named by backend ("postgres" or "mysql").
func DialectFor(backend, table string) (Dialect, error) {
	if table == "" {
		table = DefaultTable
	}
	if !ValidTableName(table) {
		return Dialect{}, fmt.Errorf("invalid table name: %q", table)
	}
	switch backend {
	case "postgres":
		return Postgres(table), nil
	case "mysql":
		return MySQL(table), nil
	default:
		return Dialect{}, fmt.Errorf("unsupported sql backend: %s", backend)
	}
}

// Store implements storage.Backend on a SQL database.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// Config configures Open.
type Config struct {
	Backend         string
	DSN             string
	Table           string
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// Open connects to the database, pings it and creates the table if needed.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	dialect, err := DialectFor(cfg.Backend, cfg.Table)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(dialect.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := NewWithDB(db, dialect)
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewWithDB creates a Store with an existing connection. The table must exist
// or Migrate must be called.
func NewWithDB(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// Migrate creates the key/value table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.createTable); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// Get implements storage.Storage.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, s.dialect.get, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, storage.NewError(storage.OpRead, key, err)
	}
	return value, true, nil
}

// Set implements storage.Storage.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, s.dialect.upsert, key, value)
	return storage.NewError(storage.OpWrite, key, err)
}

// Remove implements storage.Storage.
func (s *Store) Remove(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, s.dialect.remove, key)
	return storage.NewError(storage.OpRemove, key, err)
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
