// Package history records completed mirror runs in a SQLite database.
//
// History is optional (HISTORY_DB_PATH in the settings file, empty by
// default). It records run outcomes only — counts and timings — never file
// identities, so the mirror itself stays stateless across runs.
package history

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/harrison/mirror/internal/mirror"
)

//go:embed schema.sql
var schemaSQL string

// Run is one recorded mirror refresh.
type Run struct {
	ID         string
	StartedAt  time.Time
	DurationMS int64
	Root       string
	MirrorDir  string
	NamingMode string
	Copied     int
	Skipped    int
	Warnings   int
	Errors     int
}

// Store manages the SQLite run-history database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (creating if necessary) the history database at dbPath and
// initializes its schema. ":memory:" is supported for tests.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	// busy_timeout first so schema init waits on locks instead of failing
	// when another mirror process touches the same database.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record inserts one completed run into the ledger.
func (s *Store) Record(report *mirror.RunReport) error {
	_, err := s.db.Exec(`
		INSERT INTO runs (id, started_at, duration_ms, root, mirror_dir, naming_mode, copied, skipped, warnings, errors)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.RunID,
		report.StartedAt,
		report.DurationMS,
		report.Root,
		report.MirrorDir,
		report.NamingMode,
		report.Copied,
		report.Skipped(),
		report.Warnings,
		report.Errors,
	)
	if err != nil {
		return fmt.Errorf("record run %s: %w", report.RunID, err)
	}
	return nil
}

// Recent returns the most recent runs, newest first.
func (s *Store) Recent(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(`
		SELECT id, started_at, duration_ms, root, mirror_dir, naming_mode, copied, skipped, warnings, errors
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(
			&r.ID,
			&r.StartedAt,
			&r.DurationMS,
			&r.Root,
			&r.MirrorDir,
			&r.NamingMode,
			&r.Copied,
			&r.Skipped,
			&r.Warnings,
			&r.Errors,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}
