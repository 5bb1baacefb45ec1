package state

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapmeta/internal/demo"
	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/loader"
	"github.com/leapstack-labs/leapmeta/pkg/model"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore()
	require.NoError(t, store.Open(":memory:"))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleSnapshot(id string, at time.Time) *Snapshot {
	return &Snapshot{
		ID:           id,
		CreatedAt:    at,
		TypeCount:    2,
		FailureCount: 2,
		ErrorCount:   1,
		Types: []TypeFingerprint{
			{Name: "sales.Invoice", Facets: 12, Members: 4, Fingerprint: "aaaa"},
			{Name: "demo.Customer", Facets: 8, Members: 3, Fingerprint: "bbbb"},
		},
		Failures: []core.ValidationFailure{
			{RuleID: "MV01", Severity: core.SeverityError, Type: "sales.Invoice", Message: "duplicate"},
			{
				RuleID:   "MV03",
				Severity: core.SeverityWarning,
				Type:     "demo.Customer",
				Member:   core.ParamID("demo.Customer", "Rename", 0),
				Message:  "orphan",
			},
		},
	}
}

func TestSQLiteStore_OpenClose(t *testing.T) {
	store := NewSQLiteStore()
	require.NoError(t, store.Open(":memory:"))

	version, err := store.MigrationVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	require.NoError(t, store.Close())
}

func TestSQLiteStore_OpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.db")
	store := NewSQLiteStore()
	require.NoError(t, store.Open(path))
	defer func() { _ = store.Close() }()
	assert.Equal(t, path, store.Path())
}

func TestSQLiteStore_SnapshotRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.SaveSnapshot(ctx, sampleSnapshot("snap-1", at)))

	got, err := store.GetSnapshot(ctx, "snap-1")
	require.NoError(t, err)
	assert.Equal(t, "snap-1", got.ID)
	assert.True(t, at.Equal(got.CreatedAt))
	assert.Equal(t, 2, got.FailureCount)
	assert.Equal(t, 1, got.ErrorCount)

	// Fingerprints come back ordered by name.
	require.Len(t, got.Types, 2)
	assert.Equal(t, "demo.Customer", got.Types[0].Name)
	assert.Equal(t, "aaaa", got.Types[1].Fingerprint)

	require.Len(t, got.Failures, 2)
	assert.Equal(t, core.SeverityError, got.Failures[0].Severity)
	assert.True(t, got.Failures[0].Member.IsClass())
	assert.Equal(t, core.SeverityWarning, got.Failures[1].Severity)
	assert.Equal(t, core.ParamID("demo.Customer", "Rename", 0), got.Failures[1].Member)
}

func TestSQLiteStore_ListSnapshots(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"first", "second", "third"} {
		require.NoError(t, store.SaveSnapshot(ctx, sampleSnapshot(id, base.Add(time.Duration(i)*time.Minute))))
	}

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{name: "all", limit: 0, want: []string{"third", "second", "first"}},
		{name: "limited", limit: 2, want: []string{"third", "second"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snaps, err := store.ListSnapshots(ctx, tt.limit)
			require.NoError(t, err)
			var ids []string
			for _, s := range snaps {
				ids = append(ids, s.ID)
				assert.Empty(t, s.Types)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestSQLiteStore_GetSnapshotNotFound(t *testing.T) {
	store := setupTestStore(t)
	_, err := store.GetSnapshot(context.Background(), "missing")
	require.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestSQLiteStore_DuplicateID(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	snap := sampleSnapshot("dup", time.Now())
	require.NoError(t, store.SaveSnapshot(ctx, snap))
	require.Error(t, store.SaveSnapshot(ctx, snap))

	// The failed transaction left nothing behind.
	snaps, err := store.ListSnapshots(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, snaps, 1)
}

func TestSQLiteStore_NotOpen(t *testing.T) {
	store := NewSQLiteStore()
	ctx := context.Background()

	assert.ErrorIs(t, store.SaveSnapshot(ctx, &Snapshot{}), ErrNotOpen)
	_, err := store.GetSnapshot(ctx, "x")
	assert.ErrorIs(t, err, ErrNotOpen)
	_, err = store.ListSnapshots(ctx, 0)
	assert.ErrorIs(t, err, ErrNotOpen)
	assert.ErrorIs(t, store.Migrate(), ErrNotOpen)
	assert.NoError(t, store.Close())
}

func TestSQLiteStore_SaveSnapshotErrors(t *testing.T) {
	errBoom := errors.New("boom")
	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr string
	}{
		{
			name: "begin fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(errBoom)
			},
			wantErr: "begin transaction",
		},
		{
			name: "snapshot insert fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO snapshots").WillReturnError(errBoom)
				mock.ExpectRollback()
			},
			wantErr: "insert snapshot",
		},
		{
			name: "fingerprint insert fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO snapshots").WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec("INSERT INTO snapshot_types").WillReturnError(errBoom)
				mock.ExpectRollback()
			},
			wantErr: "insert fingerprint for sales.Invoice",
		},
		{
			name: "commit fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO snapshots").WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec("INSERT INTO snapshot_types").WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec("INSERT INTO snapshot_types").WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec("INSERT INTO snapshot_failures").WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec("INSERT INTO snapshot_failures").WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit().WillReturnError(errBoom)
			},
			wantErr: "commit transaction",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer func() { _ = db.Close() }()
			tt.setup(mock)

			store := NewSQLiteStoreWithDB(db)
			err = store.SaveSnapshot(context.Background(), sampleSnapshot("id", time.Now()))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.ErrorIs(t, err, errBoom)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSQLiteStore_ListSnapshotsQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("SELECT id, created_at").WillReturnError(errors.New("disk I/O error"))

	_, err = NewSQLiteStoreWithDB(db).ListSnapshots(context.Background(), 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list snapshots")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewSnapshot_Demo(t *testing.T) {
	build := func() ([]TypeFingerprint, *Snapshot) {
		l := loader.New(model.Default(model.Config{SkipServices: true}), demo.Provider(), loader.Options{})
		report, err := l.BuildUnit(demo.Types()...)
		require.NoError(t, err)
		snap := NewSnapshot(l.Specifications(), report, false)
		return snap.Types, snap
	}

	first, snap := build()
	second, other := build()

	assert.NotEmpty(t, snap.ID)
	assert.NotEqual(t, snap.ID, other.ID)
	assert.Equal(t, len(first), snap.TypeCount)
	assert.Zero(t, snap.FailureCount)

	// Fingerprints are stable across independent builds.
	assert.Equal(t, first, second)
	for _, fp := range first {
		assert.Len(t, fp.Fingerprint, 16)
		assert.Positive(t, fp.Facets, fp.Name)
	}
}

func TestParseMember(t *testing.T) {
	tests := []struct {
		in   string
		want core.Identifier
	}{
		{"", core.ClassID("")},
		{"a.T#Name", core.MemberID("a.T", "Name")},
		{"a.T#Do[2]", core.ParamID("a.T", "Do", 2)},
		{"a.T#Do[x]", core.MemberID("a.T", "Do[x]")},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseMember(tt.in))
		})
	}
}
