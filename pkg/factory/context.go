package factory

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/facet"
	"github.com/leapstack-labs/leapmeta/pkg/introspect"
	"github.com/leapstack-labs/leapmeta/pkg/spec"
)

// Loader resolves related types while a build is in progress. A type that
// is still being constructed is returned as a partially populated
// placeholder; contributors must tolerate missing facets on it.
type Loader interface {
	LoadNested(t reflect.Type) (*spec.ObjectSpecification, error)
}

// Options holds free-form contributor options keyed by contributor ID.
type Options map[string]map[string]any

// Context is bound to exactly one class, member or parameter while a
// contributor runs.
type Context struct {
	Phase   core.Phase
	Feature core.FeatureType

	Type   *introspect.TypeDescriptor
	Spec   *spec.ObjectSpecification
	Member *spec.ObjectMember // Nil during the class pass
	Param  *spec.Parameter    // Set during the parameter pass only

	Methods *MethodPool
	Loader  Loader
	Logger  *slog.Logger

	contributor string
	options     map[string]any
}

// Bind returns a copy of the context attributed to one contributor.
func (c *Context) Bind(contributorID string, opts Options) *Context {
	bound := *c
	bound.contributor = contributorID
	bound.options = opts[contributorID]
	if bound.Logger == nil {
		bound.Logger = slog.New(slog.DiscardHandler)
	}
	bound.Logger = bound.Logger.With("contributor", contributorID)
	return &bound
}

// Contributor returns the ID of the contributor the context is bound to.
func (c *Context) Contributor() string { return c.contributor }

// Holder returns the holder being built: the parameter, member or class.
func (c *Context) Holder() *facet.Holder {
	switch {
	case c.Param != nil:
		return c.Param.Holder
	case c.Member != nil:
		return c.Member.Holder
	default:
		return c.Spec.Holder
	}
}

// ClassHolder returns the holder of the class being built. Facets attached
// during the class pass are visible here during member and parameter passes.
func (c *Context) ClassHolder() *facet.Holder {
	return c.Spec.Holder
}

// AddFacet offers a facet to the current holder, attributed to the bound contributor.
func (c *Context) AddFacet(f *facet.Facet) facet.Outcome {
	outcome := c.Holder().AddFacet(f.Attributed(c.contributor))
	if outcome == facet.Conflict {
		c.Logger.Debug("facet conflict",
			"holder", c.Holder().Identifier().String(),
			"kind", string(f.Kind()))
	}
	return outcome
}

// Identifier returns the identifier of the current holder.
func (c *Context) Identifier() core.Identifier {
	return c.Holder().Identifier()
}

// Name returns the Go name of the current feature: type, member or parameter.
func (c *Context) Name() string {
	switch {
	case c.Param != nil:
		return c.Param.Name()
	case c.Member != nil:
		return c.Member.Name()
	default:
		return c.Type.Name
	}
}

// Markers returns the declarative markers of the current feature.
func (c *Context) Markers() introspect.Markers {
	var m introspect.Markers
	switch {
	case c.Param != nil:
		m = c.Param.Descriptor().Markers
	case c.Member != nil:
		m = c.Member.Descriptor().Markers
	default:
		m = c.Type.Markers
	}
	if m == nil {
		return introspect.Markers{}
	}
	return m
}

// ValueType returns the declared type of the current feature: the field
// type, the action result type, the parameter type, or the class itself.
func (c *Context) ValueType() reflect.Type {
	switch {
	case c.Param != nil:
		return c.Param.Type()
	case c.Member != nil:
		return c.Member.Descriptor().Type
	default:
		return c.Type.Type
	}
}

// LoadNested resolves a related type through the loader.
func (c *Context) LoadNested(t reflect.Type) (*spec.ObjectSpecification, error) {
	if c.Loader == nil {
		return nil, fmt.Errorf("load %s: no loader bound", core.CanonicalName(t))
	}
	return c.Loader.LoadNested(t)
}

// HasOptions reports whether options were configured for the bound contributor.
func (c *Context) HasOptions() bool {
	return len(c.options) > 0
}

// DecodeOptions decodes the bound contributor's options into out.
// Fields left unset in configuration keep their current values.
func (c *Context) DecodeOptions(out any) error {
	if len(c.options) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "koanf",
	})
	if err != nil {
		return fmt.Errorf("options for %s: %w", c.contributor, err)
	}
	if err := dec.Decode(c.options); err != nil {
		return fmt.Errorf("options for %s: %w", c.contributor, err)
	}
	return nil
}
