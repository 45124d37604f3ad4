// Package sqlite provides a local SQLite-backed cache of fetched appointment
// records. Content addressing makes cached entries permanently valid: a
// content identifier always resolves to the same bytes, so the cache never
// invalidates and can be deleted at any time without losing data.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/medichain-labs/medichain-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/medichain-labs/medichain-cli/internal/core/domain"
	"github.com/medichain-labs/medichain-cli/internal/core/ports/driven"
)

// Ensure RecordCache implements the interface.
var _ driven.RecordCache = (*RecordCache)(nil)

// RecordCache is a SQLite-backed implementation of driven.RecordCache.
type RecordCache struct {
	db   *sql.DB
	path string
}

// NewRecordCache creates a record cache inside dataDir.
// If dataDir is empty, defaults to ~/.medichain/data.
func NewRecordCache(dataDir string) (*RecordCache, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".medichain", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "records.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	c := &RecordCache{
		db:   db,
		path: dbPath,
	}

	if err := c.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return c, nil
}

// Close closes the database connection.
func (c *RecordCache) Close() error {
	return c.db.Close()
}

// Path returns the database file path.
func (c *RecordCache) Path() string {
	return c.path
}

// Get returns the cached record for a content identifier, or (nil, nil) on
// a miss.
func (c *RecordCache) Get(ctx context.Context, contentID string) (*domain.PersistedAppointment, error) {
	var body string
	row := c.db.QueryRowContext(ctx, "SELECT body FROM records WHERE content_id = ?", contentID)
	if err := row.Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading cached record: %w", err)
	}

	var record domain.PersistedAppointment
	if err := json.Unmarshal([]byte(body), &record); err != nil {
		return nil, fmt.Errorf("decoding cached record: %w", err)
	}
	return &record, nil
}

// Put stores a fetched record under its content identifier. Re-putting the
// same identifier is a harmless overwrite with identical content.
func (c *RecordCache) Put(ctx context.Context, contentID string, record *domain.PersistedAppointment) error {
	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT INTO records (content_id, body) VALUES (?, ?)
		ON CONFLICT(content_id) DO UPDATE SET body = excluded.body
	`, contentID, string(body))
	if err != nil {
		return fmt.Errorf("writing cached record: %w", err)
	}
	return nil
}

// migrate runs all pending migrations.
func (c *RecordCache) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := c.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_records.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := c.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := c.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
