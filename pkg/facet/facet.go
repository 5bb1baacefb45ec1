package facet

import (
	"fmt"
	"reflect"

	"github.com/google/go-cmp/cmp"
)

// Kind names a facet kind. A holder stores at most one facet per kind.
type Kind string

// EqualFunc decides whether two facet values are semantically equal.
// It is only used to detect redundant contributions of equal precedence.
type EqualFunc func(a, b any) bool

// Facet is a typed, immutable behavioral value attached to a type or member.
type Facet struct {
	kind       Kind
	precedence Precedence
	origin     Origin
	source     string
	value      any
	equal      EqualFunc
}

// Option configures a Facet at construction time.
type Option func(*Facet)

// WithPrecedence sets the precedence. Defaults to PrecedenceDefault.
func WithPrecedence(p Precedence) Option {
	return func(f *Facet) { f.precedence = p }
}

// WithOrigin records the kind of evidence that produced the facet.
func WithOrigin(o Origin) Option {
	return func(f *Facet) { f.origin = o }
}

// WithSource records the contributor that produced the facet.
func WithSource(id string) Option {
	return func(f *Facet) { f.source = id }
}

// WithEqual overrides the semantic-equality predicate.
func WithEqual(eq EqualFunc) Option {
	return func(f *Facet) { f.equal = eq }
}

// New creates a facet of the given kind holding value.
func New(kind Kind, value any, opts ...Option) *Facet {
	f := &Facet{
		kind:       kind,
		precedence: PrecedenceDefault,
		value:      value,
		equal:      DeepEqual,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Marker creates a High precedence facet backed by a declarative marker.
func Marker(kind Kind, value any, opts ...Option) *Facet {
	return New(kind, value, append([]Option{WithPrecedence(PrecedenceHigh), WithOrigin(OriginMarker)}, opts...)...)
}

// Convention creates a Default precedence facet backed by a naming convention.
func Convention(kind Kind, value any, opts ...Option) *Facet {
	return New(kind, value, append([]Option{WithPrecedence(PrecedenceDefault), WithOrigin(OriginConvention)}, opts...)...)
}

// Derived creates a Low precedence facet derived from another holder's facet.
func Derived(kind Kind, value any, opts ...Option) *Facet {
	return New(kind, value, append([]Option{WithPrecedence(PrecedenceLow), WithOrigin(OriginDerived)}, opts...)...)
}

// Fallback creates a Fallback precedence facet from configuration defaults.
func Fallback(kind Kind, value any, opts ...Option) *Facet {
	return New(kind, value, append([]Option{WithPrecedence(PrecedenceFallback), WithOrigin(OriginConfig)}, opts...)...)
}

// Kind returns the facet kind.
func (f *Facet) Kind() Kind { return f.kind }

// Precedence returns the facet precedence.
func (f *Facet) Precedence() Precedence { return f.precedence }

// Origin returns the kind of evidence behind the facet.
func (f *Facet) Origin() Origin { return f.origin }

// Source returns the ID of the contributor that produced the facet.
func (f *Facet) Source() string { return f.source }

// Value returns the raw facet value.
func (f *Facet) Value() any { return f.value }

// IsFallback reports whether the facet is a defaulted placeholder.
func (f *Facet) IsFallback() bool { return f.precedence == PrecedenceFallback }

// SemanticEquals reports whether other carries the same kind and an equal value.
func (f *Facet) SemanticEquals(other *Facet) bool {
	if f == nil || other == nil {
		return f == other
	}
	if f.kind != other.kind {
		return false
	}
	return f.equal(f.value, other.value)
}

// Attributed returns f stamped with source, or f itself when a source is
// already recorded.
func (f *Facet) Attributed(source string) *Facet {
	if f.source != "" || source == "" {
		return f
	}
	c := *f
	c.source = source
	return &c
}

// String renders "kind=value (precedence, origin)".
func (f *Facet) String() string {
	return fmt.Sprintf("%s=%v (%s, %s)", f.kind, f.value, f.precedence, f.origin)
}

// ValueOf returns the facet value as T.
func ValueOf[T any](f *Facet) (T, bool) {
	var zero T
	if f == nil {
		return zero, false
	}
	v, ok := f.value.(T)
	return v, ok
}

var equalOpts = []cmp.Option{
	cmp.Exporter(func(reflect.Type) bool { return true }),
	cmp.Comparer(func(x, y reflect.Type) bool { return x == y }),
}

// DeepEqual is the default semantic-equality predicate. It compares values
// structurally, including unexported fields. Type handles compare by identity.
func DeepEqual(a, b any) bool {
	return cmp.Equal(a, b, equalOpts...)
}

// IdentityEqual compares values with ==. Values must be comparable.
func IdentityEqual(a, b any) bool {
	return a == b
}
