package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/yieldpilot/yieldpilot/internal/record"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - Initial schema (pre-migration)
// 1 - Added length CHECK on records.record
const currentSchemaVersion = 1

// Store is the SQLite-backed RecordStore.
// Uses WAL mode for concurrent read access; writes are serialized by a
// single-connection pool so each mutation is a strict sequential step.
type Store struct {
	db *sql.DB
}

var _ RecordStore = (*Store)(nil)

// Open creates or opens a SQLite database at the given path.
// Applies required pragmas and migrations automatically.
// Use ":memory:" for a throwaway in-process database.
//
// This function is idempotent - safe to call multiple times.
func Open(path string) (*Store, error) {
	// Open database (creates file if doesn't exist)
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify connection works
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1) // Single writer to avoid SQLITE_BUSY errors
	db.SetMaxIdleConns(1) // Keep one connection ready

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Create writes a new record into an empty slot.
// The insert claims the slot atomically via the primary key; a conflict
// means the slot is occupied (CP-1).
func (s *Store) Create(ctx context.Context, slotID string, rec *record.YieldRecord) error {
	slotID = record.CanonicalSlotID(slotID)

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO records (slot_id, record)
		VALUES (?, ?)
		ON CONFLICT(slot_id) DO NOTHING
	`, slotID, rec.EncodeBinary())
	if err != nil {
		return fmt.Errorf("create record: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("create record: rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return NewSlotOccupiedError(slotID)
	}

	return nil
}

// Get returns a copy of the record in the slot.
func (s *Store) Get(ctx context.Context, slotID string) (*record.YieldRecord, error) {
	slotID = record.CanonicalSlotID(slotID)

	var blob []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT record FROM records WHERE slot_id = ?
	`, slotID).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, NewRecordNotFoundError(slotID)
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}

	rec, err := record.DecodeBinary(blob)
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}

	return rec, nil
}

// Mutate applies fn to the record in the slot inside a transaction.
// fn runs against a decoded copy; only a nil return commits the
// re-encoded record. Any error rolls back, leaving the stored bytes
// untouched (CP-2).
func (s *Store) Mutate(ctx context.Context, slotID string, fn func(*record.YieldRecord) error) error {
	slotID = record.CanonicalSlotID(slotID)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("mutate record: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var blob []byte
	err = tx.QueryRowContext(ctx, `
		SELECT record FROM records WHERE slot_id = ?
	`, slotID).Scan(&blob)
	if err == sql.ErrNoRows {
		return NewRecordNotFoundError(slotID)
	}
	if err != nil {
		return fmt.Errorf("mutate record: select: %w", err)
	}

	rec, err := record.DecodeBinary(blob)
	if err != nil {
		return fmt.Errorf("mutate record: decode: %w", err)
	}

	if err := fn(rec); err != nil {
		// Rejected mutation - surface verbatim, store untouched.
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE records SET record = ? WHERE slot_id = ?
	`, rec.EncodeBinary(), slotID); err != nil {
		return fmt.Errorf("mutate record: update: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("mutate record: commit: %w", err)
	}

	return nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist and runs migrations.
// This function is idempotent.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// runMigrations applies incremental schema migrations based on user_version.
func runMigrations(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}

	// Databases created before the length CHECK existed carry version 0.
	// The constraint only applies to new rows, so nothing to rewrite -
	// bump the version and rely on the Go-side length check on decode.
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
