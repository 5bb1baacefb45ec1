// Package state persists build snapshots for the leapmeta CLI using SQLite.
// A snapshot records when a build ran, a fingerprint of the facets each
// type ended up with, and the validation failures it reported.
package state

import (
	"context"
	"errors"
	"time"

	"github.com/leapstack-labs/leapmeta/pkg/core"
)

// ErrNotOpen is returned when the store is used before Open.
var ErrNotOpen = errors.New("database not opened")

// ErrSnapshotNotFound is returned when no snapshot has the requested id.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Store is the snapshot persistence contract used by the CLI.
type Store interface {
	SaveSnapshot(ctx context.Context, snap *Snapshot) error
	GetSnapshot(ctx context.Context, id string) (*Snapshot, error)
	ListSnapshots(ctx context.Context, limit int) ([]Snapshot, error)
	Close() error
}

// Snapshot is one persisted build.
type Snapshot struct {
	ID           string                   `json:"id" yaml:"id"`
	CreatedAt    time.Time                `json:"created_at" yaml:"created_at"`
	Strict       bool                     `json:"strict" yaml:"strict"`
	TypeCount    int                      `json:"type_count" yaml:"type_count"`
	FailureCount int                      `json:"failure_count" yaml:"failure_count"`
	ErrorCount   int                      `json:"error_count" yaml:"error_count"`
	Types        []TypeFingerprint        `json:"types,omitempty" yaml:"types,omitempty"`
	Failures     []core.ValidationFailure `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// TypeFingerprint summarizes the facets of one specification.
type TypeFingerprint struct {
	Name        string `json:"name" yaml:"name"`
	Facets      int    `json:"facets" yaml:"facets"`
	Members     int    `json:"members" yaml:"members"`
	Fingerprint string `json:"fingerprint" yaml:"fingerprint"`
}
