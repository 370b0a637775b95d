package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Supported drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

var placeholder = regexp.MustCompile(`\$\d+`)

// DB wraps the database connection
type DB struct {
	*sql.DB
	driver string
}

// NewDB creates a new database connection.
// For postgres, connectionString should be in the format:
// "host=localhost port=5432 user=postgres password=postgres dbname=assetboard sslmode=disable".
// For sqlite3 it is a file path.
func NewDB(driver, connectionString string) (*DB, error) {
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if driver == DriverSQLite {
		// One writer at a time; sqlite reports SQLITE_BUSY otherwise
		db.SetMaxOpenConns(1)
	}

	return &DB{DB: db, driver: driver}, nil
}

// Migrate creates the tables used by the record store
func (db *DB) Migrate(ctx context.Context) error {
	idColumn := "id BIGSERIAL PRIMARY KEY"
	if db.driver == DriverSQLite {
		idColumn = "id INTEGER PRIMARY KEY AUTOINCREMENT"
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS record_tables (
			name    TEXT PRIMARY KEY,
			headers TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS record_rows (
			` + idColumn + `,
			table_name TEXT NOT NULL REFERENCES record_tables(name),
			fields     TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS record_rows_table_idx ON record_rows (table_name, id)`,
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}
	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

// rebind rewrites $N placeholders for drivers that expect '?'.
// Queries must use each placeholder once, in order.
func (db *DB) rebind(query string) string {
	if db.driver == DriverSQLite {
		return placeholder.ReplaceAllString(query, "?")
	}
	return query
}
