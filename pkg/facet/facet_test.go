package facet_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/leapmeta/pkg/facet"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		f          *facet.Facet
		precedence facet.Precedence
		origin     facet.Origin
	}{
		{"marker", facet.Marker(facet.Named, "x"), facet.PrecedenceHigh, facet.OriginMarker},
		{"convention", facet.Convention(facet.Named, "x"), facet.PrecedenceDefault, facet.OriginConvention},
		{"derived", facet.Derived(facet.Named, "x"), facet.PrecedenceLow, facet.OriginDerived},
		{"fallback", facet.Fallback(facet.Named, "x"), facet.PrecedenceFallback, facet.OriginConfig},
		{"override", facet.Marker(facet.Named, "x", facet.WithPrecedence(facet.PrecedenceLow)), facet.PrecedenceLow, facet.OriginMarker},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.precedence, tt.f.Precedence())
			assert.Equal(t, tt.origin, tt.f.Origin())
		})
	}
}

func TestSemanticEquals(t *testing.T) {
	type probe struct {
		values []string
		hidden string
	}

	tests := []struct {
		name string
		a, b *facet.Facet
		want bool
	}{
		{"same struct", facet.New(facet.Choices, facet.ChoicesValue{Values: []string{"A"}}),
			facet.New(facet.Choices, facet.ChoicesValue{Values: []string{"A"}}), true},
		{"different struct", facet.New(facet.Choices, facet.ChoicesValue{Values: []string{"A"}}),
			facet.New(facet.Choices, facet.ChoicesValue{Values: []string{"B"}}), false},
		{"unexported fields", facet.New("probe", probe{hidden: "a"}), facet.New("probe", probe{hidden: "a"}), true},
		{"different kind", facet.New(facet.Named, "a"), facet.New(facet.DescribedAs, "a"), false},
		{"type handles", facet.New(facet.TypeOf, reflect.TypeOf("")), facet.New(facet.TypeOf, reflect.TypeOf("")), true},
		{"custom equal", facet.New(facet.Named, "A", facet.WithEqual(func(a, b any) bool { return true })),
			facet.New(facet.Named, "B"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.SemanticEquals(tt.b))
		})
	}

	var nilFacet *facet.Facet
	assert.True(t, nilFacet.SemanticEquals(nil))
}

func TestAttributed(t *testing.T) {
	f := facet.Marker(facet.Named, "x")
	stamped := f.Attributed("named")
	assert.Equal(t, "named", stamped.Source())
	assert.Empty(t, f.Source(), "original is not modified")
	assert.Same(t, stamped, stamped.Attributed("other"))
}

func TestValueOf(t *testing.T) {
	f := facet.New(facet.MaxLength, 20)
	n, ok := facet.ValueOf[int](f)
	assert.True(t, ok)
	assert.Equal(t, 20, n)

	_, ok = facet.ValueOf[string](f)
	assert.False(t, ok)
	_, ok = facet.ValueOf[int](nil)
	assert.False(t, ok)
}

func TestParseHelpers(t *testing.T) {
	p, ok := facet.ParsePrecedence("HIGH")
	assert.True(t, ok)
	assert.Equal(t, facet.PrecedenceHigh, p)

	_, ok = facet.ParseNature("aggregate")
	assert.False(t, ok)
	n, ok := facet.ParseNature("service")
	assert.True(t, ok)
	assert.Equal(t, facet.NatureService, n)

	s, ok := facet.ParseSemantics("non-idempotent")
	assert.True(t, ok)
	assert.Equal(t, facet.SemanticsNonIdempotent, s)
}

func TestParentValue_Ambiguous(t *testing.T) {
	tests := []struct {
		name string
		v    facet.ParentValue
		want bool
	}{
		{"single local", facet.ParentValue{Field: "Customer", Candidates: []string{"Customer"}, Local: 1}, false},
		{"two local", facet.ParentValue{Candidates: []string{"Customer", "Account"}, Local: 2}, true},
		{"local shadows inherited", facet.ParentValue{Candidates: []string{"Customer", "Owner"}, Local: 1}, false},
		{"two inherited", facet.ParentValue{Candidates: []string{"Owner", "Tenant"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.Ambiguous())
		})
	}
}
