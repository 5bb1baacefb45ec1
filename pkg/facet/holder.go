package facet

import (
	"sync"

	"github.com/leapstack-labs/leapmeta/pkg/core"
)

// Outcome describes what AddFacet did with a candidate.
type Outcome int

// AddFacet outcomes.
const (
	// Added means no facet of the kind was stored yet.
	Added Outcome = iota
	// Replaced means the candidate had strictly higher precedence.
	Replaced
	// Discarded means the candidate had strictly lower precedence.
	Discarded
	// Redundant means equal precedence and a semantically equal value.
	Redundant
	// Conflict means equal precedence and a different value; the stored facet was kept.
	Conflict
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Added:
		return "added"
	case Replaced:
		return "replaced"
	case Discarded:
		return "discarded"
	case Redundant:
		return "redundant"
	case Conflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Stored reports whether the candidate became the current facet.
func (o Outcome) Stored() bool {
	return o == Added || o == Replaced
}

// Contribution is one candidate offered to a holder and what happened to it.
type Contribution struct {
	Facet   *Facet
	Outcome Outcome
}

// ConflictRecord is an equal-precedence, semantically different contribution.
type ConflictRecord struct {
	Holder   core.Identifier
	Kind     Kind
	Kept     *Facet
	Rejected *Facet
}

// Holder stores at most one facet per kind for one spec, member or parameter.
type Holder struct {
	id      core.Identifier
	feature core.FeatureType

	mu            sync.RWMutex
	facets        map[Kind]*Facet
	order         []Kind
	contributions map[Kind][]Contribution
	conflicts     []ConflictRecord
}

// NewHolder creates an empty holder for the given identifier and feature type.
func NewHolder(id core.Identifier, feature core.FeatureType) *Holder {
	return &Holder{
		id:            id,
		feature:       feature,
		facets:        make(map[Kind]*Facet),
		contributions: make(map[Kind][]Contribution),
	}
}

// Identifier returns the identifier of the holder.
func (h *Holder) Identifier() core.Identifier { return h.id }

// FeatureType returns the feature type the holder describes.
func (h *Holder) FeatureType() core.FeatureType { return h.feature }

// AddFacet offers a candidate and resolves it against the stored facet of
// the same kind.
func (h *Holder) AddFacet(candidate *Facet) Outcome {
	if candidate == nil {
		return Discarded
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	kind := candidate.Kind()
	outcome := h.resolve(candidate)
	h.contributions[kind] = append(h.contributions[kind], Contribution{Facet: candidate, Outcome: outcome})
	return outcome
}

func (h *Holder) resolve(candidate *Facet) Outcome {
	kind := candidate.Kind()
	existing, ok := h.facets[kind]
	if !ok {
		h.facets[kind] = candidate
		h.order = append(h.order, kind)
		return Added
	}

	switch {
	case candidate.Precedence() > existing.Precedence():
		h.facets[kind] = candidate
		return Replaced
	case candidate.Precedence() < existing.Precedence():
		return Discarded
	case candidate.SemanticEquals(existing):
		return Redundant
	default:
		h.conflicts = append(h.conflicts, ConflictRecord{
			Holder:   h.id,
			Kind:     kind,
			Kept:     existing,
			Rejected: candidate,
		})
		return Conflict
	}
}

// Facet returns the current facet of the given kind.
func (h *Holder) Facet(kind Kind) (*Facet, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	f, ok := h.facets[kind]
	return f, ok
}

// Has reports whether a facet of the given kind is stored.
func (h *Holder) Has(kind Kind) bool {
	_, ok := h.Facet(kind)
	return ok
}

// IsExplicit reports whether a non-fallback facet of the kind is stored.
func (h *Holder) IsExplicit(kind Kind) bool {
	f, ok := h.Facet(kind)
	return ok && !f.IsFallback()
}

// Facets returns the stored facets in first-insertion order of their kinds.
func (h *Holder) Facets() []*Facet {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*Facet, 0, len(h.order))
	for _, k := range h.order {
		out = append(out, h.facets[k])
	}
	return out
}

// Contributions returns every candidate offered for the kind, in offer order.
func (h *Holder) Contributions(kind Kind) []Contribution {
	h.mu.RLock()
	defer h.mu.RUnlock()
	src := h.contributions[kind]
	out := make([]Contribution, len(src))
	copy(out, src)
	return out
}

// Conflicts returns the equal-precedence conflicts recorded so far.
func (h *Holder) Conflicts() []ConflictRecord {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]ConflictRecord, len(h.conflicts))
	copy(out, h.conflicts)
	return out
}

// Lookup returns the value of the stored facet of the given kind as T.
func Lookup[T any](h *Holder, kind Kind) (T, bool) {
	f, ok := h.Facet(kind)
	if !ok {
		var zero T
		return zero, false
	}
	return ValueOf[T](f)
}
