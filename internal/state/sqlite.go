package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver (pure Go)

	"github.com/leapstack-labs/leapmeta/pkg/core"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore creates a new SQLite state store instance.
func NewSQLiteStore() *SQLiteStore {
	return &SQLiteStore{}
}

// NewSQLiteStoreWithDB wraps an existing connection. The caller is
// responsible for its schema.
func NewSQLiteStoreWithDB(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Open opens a connection to the SQLite database and migrates it.
// Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(path string) error {
	dsn := ":memory:?_pragma=foreign_keys(1)"
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create state directory: %w", err)
			}
		}
		dsn = path + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// An in-memory database lives as long as its single connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	if err := s.Migrate(); err != nil {
		_ = db.Close()
		s.db = nil
		return err
	}
	return nil
}

// Path returns the database path given to Open.
func (s *SQLiteStore) Path() string { return s.path }

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSnapshot stores a snapshot with its fingerprints and failures in
// one transaction.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, snap *Snapshot) error {
	if s.db == nil {
		return ErrNotOpen
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, created_at, strict, type_count, failure_count, error_count)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		snap.ID, snap.CreatedAt.UnixMilli(), snap.Strict, snap.TypeCount, snap.FailureCount, snap.ErrorCount,
	)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	for _, t := range snap.Types {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO snapshot_types (snapshot_id, type_name, facet_count, member_count, fingerprint)
			 VALUES (?, ?, ?, ?, ?)`,
			snap.ID, t.Name, t.Facets, t.Members, t.Fingerprint,
		)
		if err != nil {
			return fmt.Errorf("insert fingerprint for %s: %w", t.Name, err)
		}
	}

	for i, f := range snap.Failures {
		member := ""
		if !f.Member.IsClass() {
			member = f.Member.String()
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO snapshot_failures (snapshot_id, seq, rule_id, severity, type_name, member, message)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			snap.ID, i, f.RuleID, f.Severity.String(), f.Type, member, f.Message,
		)
		if err != nil {
			return fmt.Errorf("insert failure %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetSnapshot loads one snapshot with its fingerprints and failures.
func (s *SQLiteStore) GetSnapshot(ctx context.Context, id string) (*Snapshot, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}

	snap, err := scanSnapshot(s.db.QueryRowContext(ctx,
		`SELECT id, created_at, strict, type_count, failure_count, error_count
		 FROM snapshots WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	if snap.Types, err = s.types(ctx, id); err != nil {
		return nil, err
	}
	if snap.Failures, err = s.failures(ctx, id); err != nil {
		return nil, err
	}
	return snap, nil
}

// ListSnapshots returns the most recent snapshots first, without their
// fingerprints or failures. A limit of zero or less returns all of them.
func (s *SQLiteStore) ListSnapshots(ctx context.Context, limit int) ([]Snapshot, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, strict, type_count, failure_count, error_count
		 FROM snapshots ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		out = append(out, *snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (*Snapshot, error) {
	var (
		snap    Snapshot
		created int64
	)
	if err := row.Scan(&snap.ID, &created, &snap.Strict, &snap.TypeCount, &snap.FailureCount, &snap.ErrorCount); err != nil {
		return nil, err
	}
	snap.CreatedAt = time.UnixMilli(created).UTC()
	return &snap, nil
}

func (s *SQLiteStore) types(ctx context.Context, id string) ([]TypeFingerprint, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT type_name, facet_count, member_count, fingerprint
		 FROM snapshot_types WHERE snapshot_id = ? ORDER BY type_name`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query fingerprints: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []TypeFingerprint
	for rows.Next() {
		var t TypeFingerprint
		if err := rows.Scan(&t.Name, &t.Facets, &t.Members, &t.Fingerprint); err != nil {
			return nil, fmt.Errorf("failed to scan fingerprint: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) failures(ctx context.Context, id string) ([]core.ValidationFailure, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT rule_id, severity, type_name, member, message
		 FROM snapshot_failures WHERE snapshot_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query failures: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []core.ValidationFailure
	for rows.Next() {
		var (
			f        core.ValidationFailure
			severity string
			member   string
		)
		if err := rows.Scan(&f.RuleID, &severity, &f.Type, &member, &f.Message); err != nil {
			return nil, fmt.Errorf("failed to scan failure: %w", err)
		}
		f.Severity, _ = core.ParseSeverity(severity)
		f.Member = parseMember(member)
		out = append(out, f)
	}
	return out, rows.Err()
}

// parseMember reverses Identifier.String for member and parameter ids.
func parseMember(s string) core.Identifier {
	class, member, ok := strings.Cut(s, "#")
	if !ok {
		return core.ClassID(s)
	}
	name, idx, ok := strings.Cut(member, "[")
	if !ok {
		return core.MemberID(class, member)
	}
	i, err := strconv.Atoi(strings.TrimSuffix(idx, "]"))
	if err != nil {
		return core.MemberID(class, member)
	}
	return core.ParamID(class, name, i)
}
