package factory

import "github.com/leapstack-labs/leapmeta/pkg/core"

// Contributor inspects one class, member or parameter and proposes facets.
type Contributor interface {
	// ID returns the unique identifier, e.g. "named-marker".
	ID() string

	// Description returns a human-readable description.
	Description() string

	// Features returns the feature types this contributor applies to.
	Features() core.FeatureSet

	// Process examines the context and attaches zero or more facets.
	Process(ctx *Context)
}

// Prefixed is implemented by contributors that own naming-convention methods.
// Methods starting with any returned prefix are never classified as actions.
type Prefixed interface {
	Contributor
	Prefixes() []string
}

// Def is a data-driven contributor definition.
type Def struct {
	ID          string
	Description string
	Features    core.FeatureSet
	Prefixes    []string // Convention method prefixes owned by this contributor
	Process     ProcessFunc
}

// ProcessFunc examines a context and attaches facets.
type ProcessFunc func(ctx *Context)

// Wrap turns a Def into a Contributor.
func Wrap(def Def) Contributor {
	return &wrappedDef{def: def}
}

type wrappedDef struct {
	def Def
}

func (w *wrappedDef) ID() string                { return w.def.ID }
func (w *wrappedDef) Description() string       { return w.def.Description }
func (w *wrappedDef) Features() core.FeatureSet { return w.def.Features }
func (w *wrappedDef) Prefixes() []string        { return w.def.Prefixes }

func (w *wrappedDef) Process(ctx *Context) {
	if w.def.Process != nil {
		w.def.Process(ctx)
	}
}

// Unwrap returns the underlying Def.
func (w *wrappedDef) Unwrap() Def {
	return w.def
}

// Info describes a contributor for documentation and tooling.
type Info struct {
	ID          string   `json:"id" yaml:"id"`
	Description string   `json:"description" yaml:"description"`
	Features    string   `json:"features" yaml:"features"`
	Prefixes    []string `json:"prefixes,omitempty" yaml:"prefixes,omitempty"`
}

// GetInfo extracts metadata from a Contributor.
func GetInfo(c Contributor) Info {
	info := Info{
		ID:          c.ID(),
		Description: c.Description(),
		Features:    c.Features().String(),
	}
	if p, ok := c.(Prefixed); ok {
		info.Prefixes = p.Prefixes()
	}
	return info
}

// PrefixesOf returns the prefixes owned by c, or nil.
func PrefixesOf(c Contributor) []string {
	if p, ok := c.(Prefixed); ok {
		return p.Prefixes()
	}
	return nil
}
