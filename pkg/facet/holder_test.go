package facet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/facet"
)

func newHolder() *facet.Holder {
	return facet.NewHolder(core.MemberID("sales.Invoice", "Number"), core.FeatureProperty)
}

func TestHolder_AddFacet(t *testing.T) {
	tests := []struct {
		name      string
		first     *facet.Facet
		second    *facet.Facet
		want      facet.Outcome
		wantValue any
	}{
		{
			name:      "higher replaces",
			first:     facet.Convention(facet.Named, "number"),
			second:    facet.Marker(facet.Named, "Invoice No."),
			want:      facet.Replaced,
			wantValue: "Invoice No.",
		},
		{
			name:      "lower is discarded",
			first:     facet.Marker(facet.Named, "Invoice No."),
			second:    facet.Derived(facet.Named, "number"),
			want:      facet.Discarded,
			wantValue: "Invoice No.",
		},
		{
			name:      "equal and same value is redundant",
			first:     facet.Marker(facet.MaxLength, 20, facet.WithSource("a")),
			second:    facet.Marker(facet.MaxLength, 20, facet.WithSource("b")),
			want:      facet.Redundant,
			wantValue: 20,
		},
		{
			name:      "equal and different value conflicts and keeps first",
			first:     facet.Marker(facet.MaxLength, 20),
			second:    facet.Marker(facet.MaxLength, 30),
			want:      facet.Conflict,
			wantValue: 20,
		},
		{
			name:      "fallback is displaced by anything",
			first:     facet.Fallback(facet.MaxLength, 255),
			second:    facet.Derived(facet.MaxLength, 40),
			want:      facet.Replaced,
			wantValue: 40,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHolder()
			assert.Equal(t, facet.Added, h.AddFacet(tt.first))
			assert.Equal(t, tt.want, h.AddFacet(tt.second))

			f, ok := h.Facet(tt.first.Kind())
			require.True(t, ok)
			assert.Equal(t, tt.wantValue, f.Value())
			assert.Len(t, h.Contributions(tt.first.Kind()), 2)
		})
	}
}

func TestHolder_Conflicts(t *testing.T) {
	h := newHolder()
	h.AddFacet(facet.Marker(facet.Named, "A", facet.WithSource("named")))
	h.AddFacet(facet.Marker(facet.Named, "B", facet.WithSource("other")))

	conflicts := h.Conflicts()
	require.Len(t, conflicts, 1)
	assert.Equal(t, facet.Named, conflicts[0].Kind)
	assert.Equal(t, "named", conflicts[0].Kept.Source())
	assert.Equal(t, "other", conflicts[0].Rejected.Source())
	assert.Equal(t, h.Identifier(), conflicts[0].Holder)
}

func TestHolder_NilCandidate(t *testing.T) {
	h := newHolder()
	assert.Equal(t, facet.Discarded, h.AddFacet(nil))
	assert.Empty(t, h.Facets())
}

// Any arrival order of candidates with distinct precedences ends in the same facet.
func TestHolder_OrderIndependent(t *testing.T) {
	candidates := []*facet.Facet{
		facet.Fallback(facet.Named, "fallback"),
		facet.Derived(facet.Named, "derived"),
		facet.Convention(facet.Named, "convention"),
		facet.Marker(facet.Named, "marker"),
	}

	for _, perm := range permutations(len(candidates)) {
		h := newHolder()
		for _, i := range perm {
			h.AddFacet(candidates[i])
		}
		v, ok := facet.Lookup[string](h, facet.Named)
		require.True(t, ok)
		assert.Equal(t, "marker", v, "order %v", perm)
	}
}

// The stored precedence never decreases as candidates arrive.
func TestHolder_Monotonic(t *testing.T) {
	h := newHolder()
	sequence := []*facet.Facet{
		facet.Convention(facet.Paged, 25),
		facet.Fallback(facet.Paged, 10),
		facet.Marker(facet.Paged, 50),
		facet.Derived(facet.Paged, 5),
		facet.Convention(facet.Paged, 15),
	}

	last := facet.PrecedenceFallback
	for _, c := range sequence {
		h.AddFacet(c)
		f, ok := h.Facet(facet.Paged)
		require.True(t, ok)
		assert.GreaterOrEqual(t, f.Precedence(), last)
		last = f.Precedence()
	}
	assert.Equal(t, facet.PrecedenceHigh, last)
}

func TestHolder_Facets(t *testing.T) {
	h := newHolder()
	h.AddFacet(facet.Fallback(facet.MaxLength, 255))
	h.AddFacet(facet.Convention(facet.Named, "Number"))
	h.AddFacet(facet.Marker(facet.MaxLength, 20))

	facets := h.Facets()
	require.Len(t, facets, 2)
	assert.Equal(t, facet.MaxLength, facets[0].Kind(), "kinds keep first insertion order")
	assert.Equal(t, 20, facets[0].Value())

	assert.True(t, h.Has(facet.Named))
	assert.True(t, h.IsExplicit(facet.MaxLength))
	assert.False(t, h.Has(facet.Hidden))
}

func TestHolder_IsExplicit(t *testing.T) {
	h := newHolder()
	h.AddFacet(facet.Fallback(facet.MaxLength, 255))
	assert.True(t, h.Has(facet.MaxLength))
	assert.False(t, h.IsExplicit(facet.MaxLength))
}

func TestOutcome(t *testing.T) {
	assert.True(t, facet.Added.Stored())
	assert.True(t, facet.Replaced.Stored())
	assert.False(t, facet.Conflict.Stored())
	assert.Equal(t, "redundant", facet.Redundant.String())
}

func permutations(n int) [][]int {
	if n == 0 {
		return [][]int{{}}
	}
	var out [][]int
	for _, p := range permutations(n - 1) {
		for i := 0; i <= len(p); i++ {
			q := make([]int, 0, n)
			q = append(q, p[:i]...)
			q = append(q, n-1)
			q = append(q, p[i:]...)
			out = append(out, q)
		}
	}
	return out
}
