package validate

import (
	"reflect"

	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/spec"
)

// Graph is the read-only view of a completed build unit.
type Graph interface {
	// Specifications returns every specification sorted by canonical name.
	Specifications() []*spec.ObjectSpecification

	// Specification looks up a specification by type handle.
	Specification(t reflect.Type) (*spec.ObjectSpecification, bool)
}

// Refiner is a cross-cutting validator run after construction.
type Refiner interface {
	// ID returns the unique identifier, e.g. "MV01".
	ID() string

	// Name returns the short slug, e.g. "logical-type-uniqueness".
	Name() string

	// Description returns a human-readable description.
	Description() string

	// DefaultSeverity returns the severity of the findings.
	DefaultSeverity() core.Severity

	// SkipServices reports whether service types are excluded from the check.
	SkipServices() bool

	// Check inspects the graph and returns findings.
	Check(ctx *Context) []core.ValidationFailure
}

// Def is a data-driven refiner definition.
type Def struct {
	ID           string
	Name         string
	Description  string
	Severity     core.Severity
	SkipServices bool
	Check        CheckFunc
}

// CheckFunc inspects the graph and returns findings.
type CheckFunc func(ctx *Context) []core.ValidationFailure

// Wrap turns a Def into a Refiner.
func Wrap(def Def) Refiner {
	return &wrappedDef{def: def}
}

type wrappedDef struct {
	def Def
}

func (w *wrappedDef) ID() string                     { return w.def.ID }
func (w *wrappedDef) Name() string                   { return w.def.Name }
func (w *wrappedDef) Description() string            { return w.def.Description }
func (w *wrappedDef) DefaultSeverity() core.Severity { return w.def.Severity }
func (w *wrappedDef) SkipServices() bool             { return w.def.SkipServices }

func (w *wrappedDef) Check(ctx *Context) []core.ValidationFailure {
	if w.def.Check == nil {
		return nil
	}
	return w.def.Check(ctx)
}

// Unwrap returns the underlying Def.
func (w *wrappedDef) Unwrap() Def {
	return w.def
}

// Info describes a refiner for documentation and tooling.
type Info struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Description  string `json:"description" yaml:"description"`
	Severity     string `json:"severity" yaml:"severity"`
	SkipServices bool   `json:"skip_services" yaml:"skip_services"`
}

// GetInfo extracts metadata from a Refiner.
func GetInfo(r Refiner) Info {
	return Info{
		ID:           r.ID(),
		Name:         r.Name(),
		Description:  r.Description(),
		Severity:     r.DefaultSeverity().String(),
		SkipServices: r.SkipServices(),
	}
}
