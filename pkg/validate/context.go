package validate

import (
	"log/slog"

	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/spec"
)

// Exclusion reports whether a specification is excluded from a refiner.
type Exclusion func(*spec.ObjectSpecification) bool

// Context is what a refiner sees while checking one graph.
type Context struct {
	Graph   Graph
	Options Options
	Logger  *slog.Logger

	refiner Refiner
	exclude []Exclusion
}

// Specs returns the specifications the refiner applies to, sorted by
// canonical name. Service types are left out when the refiner skips them.
func (c *Context) Specs() []*spec.ObjectSpecification {
	all := c.Graph.Specifications()
	out := make([]*spec.ObjectSpecification, 0, len(all))
	for _, s := range all {
		if c.Excluded(s) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Excluded reports whether s is outside the refiner's scope.
func (c *Context) Excluded(s *spec.ObjectSpecification) bool {
	if c.Options.SkipServices && c.refiner.SkipServices() && s.IsService() {
		return true
	}
	for _, ex := range c.exclude {
		if ex(s) {
			return true
		}
	}
	return false
}

// Failure creates a type-level finding with the refiner's ID and severity.
func (c *Context) Failure(s *spec.ObjectSpecification, msg string, related ...string) core.ValidationFailure {
	return core.ValidationFailure{
		RuleID:   c.refiner.ID(),
		Severity: c.refiner.DefaultSeverity(),
		Type:     typeName(s),
		Message:  msg,
		Related:  related,
	}
}

// MemberFailure creates a finding for one member or parameter.
func (c *Context) MemberFailure(s *spec.ObjectSpecification, id core.Identifier, msg string, related ...string) core.ValidationFailure {
	f := c.Failure(s, msg, related...)
	f.Member = id
	return f
}

func typeName(s *spec.ObjectSpecification) string {
	if s == nil {
		return ""
	}
	return s.LogicalType().Name()
}
