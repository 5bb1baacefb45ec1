package state

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/facet"
	"github.com/leapstack-labs/leapmeta/pkg/spec"
)

// NewSnapshot captures a finished build.
func NewSnapshot(specs []*spec.ObjectSpecification, report *core.Report, strict bool) *Snapshot {
	snap := &Snapshot{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Strict:    strict,
		TypeCount: len(specs),
	}
	for _, s := range specs {
		snap.Types = append(snap.Types, Fingerprint(s))
	}
	if report != nil {
		snap.Failures = slices.Clone(report.Failures)
		snap.FailureCount = len(report.Failures)
		for _, f := range report.Failures {
			if f.Severity == core.SeverityError {
				snap.ErrorCount++
			}
		}
	}
	return snap
}

// Fingerprint hashes every facet stored on a specification, its members
// and their parameters. Two builds of the same type with the same facets
// produce the same fingerprint.
func Fingerprint(s *spec.ObjectSpecification) TypeFingerprint {
	var lines []string
	add := func(h *facet.Holder) {
		for _, f := range h.Facets() {
			lines = append(lines, h.Identifier().String()+" "+f.String())
		}
	}

	add(s.Holder)
	members := s.Members()
	for _, m := range members {
		add(m.Holder)
		for _, p := range m.Parameters() {
			add(p.Holder)
		}
	}
	slices.Sort(lines)

	sum := sha256.New()
	for _, l := range lines {
		_, _ = fmt.Fprintln(sum, l)
	}
	return TypeFingerprint{
		Name:        s.LogicalType().Name(),
		Facets:      len(lines),
		Members:     len(members),
		Fingerprint: hex.EncodeToString(sum.Sum(nil))[:16],
	}
}
