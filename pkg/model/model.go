// Package model holds the programming model: the ordered contributors and
// refiners used by a loader, plus the policy that selects and tunes them.
package model

import (
	"slices"

	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/factory"
	"github.com/leapstack-labs/leapmeta/pkg/factory/contributors"
	"github.com/leapstack-labs/leapmeta/pkg/validate"
	"github.com/leapstack-labs/leapmeta/pkg/validate/refiners"
)

// ProgrammingModel is an ordered set of contributors and refiners. Order is
// the tie-break for equal-precedence facets.
type ProgrammingModel struct {
	contributors []factory.Contributor
	refiners     []validate.Refiner

	disabledContributors map[string]bool
	disabledRefiners     map[string]bool
	severities           map[string]core.Severity
	exclusions           map[string][]validate.Exclusion
	options              factory.Options
	validation           ValidationPolicy
}

// ValidationPolicy holds the validation switches.
type ValidationPolicy struct {
	Strict       bool
	Orphans      bool
	SkipServices bool
}

// Option configures a ProgrammingModel.
type Option func(*ProgrammingModel)

// WithContributors appends contributors in order.
func WithContributors(cs ...factory.Contributor) Option {
	return func(m *ProgrammingModel) { m.contributors = append(m.contributors, cs...) }
}

// WithRefiners appends refiners in order.
func WithRefiners(rs ...validate.Refiner) Option {
	return func(m *ProgrammingModel) { m.refiners = append(m.refiners, rs...) }
}

// WithoutContributor disables the contributor with the given ID.
func WithoutContributor(id string) Option {
	return func(m *ProgrammingModel) { m.disabledContributors[id] = true }
}

// WithoutRefiner disables the refiner with the given ID.
func WithoutRefiner(id string) Option {
	return func(m *ProgrammingModel) { m.disabledRefiners[id] = true }
}

// WithSeverity overrides the severity of a refiner's findings.
func WithSeverity(refinerID string, sev core.Severity) Option {
	return func(m *ProgrammingModel) { m.severities[refinerID] = sev }
}

// WithExclusion skips specifications matching pred for one refiner.
func WithExclusion(refinerID string, pred validate.Exclusion) Option {
	return func(m *ProgrammingModel) {
		m.exclusions[refinerID] = append(m.exclusions[refinerID], pred)
	}
}

// WithOptions sets the free-form options of one contributor.
func WithOptions(contributorID string, opts map[string]any) Option {
	return func(m *ProgrammingModel) { m.options[contributorID] = opts }
}

// WithValidation sets the validation policy.
func WithValidation(p ValidationPolicy) Option {
	return func(m *ProgrammingModel) { m.validation = p }
}

// New creates a programming model. Service types are skipped by refiners
// that opt in unless WithValidation says otherwise.
func New(opts ...Option) *ProgrammingModel {
	m := &ProgrammingModel{
		disabledContributors: make(map[string]bool),
		disabledRefiners:     make(map[string]bool),
		severities:           make(map[string]core.Severity),
		exclusions:           make(map[string][]validate.Exclusion),
		options:              make(factory.Options),
		validation:           ValidationPolicy{SkipServices: true},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Contributors returns the enabled contributors in registry order.
func (m *ProgrammingModel) Contributors() []factory.Contributor {
	out := make([]factory.Contributor, 0, len(m.contributors))
	for _, c := range m.contributors {
		if !m.disabledContributors[c.ID()] {
			out = append(out, c)
		}
	}
	return out
}

// ContributorsFor returns the enabled contributors selecting the feature type.
func (m *ProgrammingModel) ContributorsFor(f core.FeatureType) []factory.Contributor {
	var out []factory.Contributor
	for _, c := range m.Contributors() {
		if c.Features().Has(f) {
			out = append(out, c)
		}
	}
	return out
}

// Prefixes returns every convention prefix owned by an enabled contributor.
func (m *ProgrammingModel) Prefixes() []string {
	var out []string
	for _, c := range m.Contributors() {
		for _, p := range factory.PrefixesOf(c) {
			if !slices.Contains(out, p) {
				out = append(out, p)
			}
		}
	}
	return out
}

// Refiners returns the enabled refiners in registration order.
func (m *ProgrammingModel) Refiners() []validate.Refiner {
	out := make([]validate.Refiner, 0, len(m.refiners))
	for _, r := range m.refiners {
		if !m.disabledRefiners[r.ID()] {
			out = append(out, r)
		}
	}
	return out
}

// AllContributors returns every registered contributor, enabled or not.
func (m *ProgrammingModel) AllContributors() []factory.Contributor {
	return slices.Clone(m.contributors)
}

// AllRefiners returns every registered refiner, enabled or not.
func (m *ProgrammingModel) AllRefiners() []validate.Refiner {
	return slices.Clone(m.refiners)
}

// ContributorEnabled reports whether the contributor is enabled.
func (m *ProgrammingModel) ContributorEnabled(id string) bool { return !m.disabledContributors[id] }

// RefinerEnabled reports whether the refiner is enabled.
func (m *ProgrammingModel) RefinerEnabled(id string) bool { return !m.disabledRefiners[id] }

// Options returns the contributor options keyed by contributor ID.
func (m *ProgrammingModel) Options() factory.Options { return m.options }

// Validation returns the validation policy.
func (m *ProgrammingModel) Validation() ValidationPolicy { return m.validation }

// ValidateOptions returns the options passed to the validation engine.
func (m *ProgrammingModel) ValidateOptions() validate.Options {
	return validate.Options{
		Orphans:           m.validation.Orphans,
		SkipServices:      m.validation.SkipServices,
		SeverityOverrides: m.severities,
		Exclusions:        m.exclusions,
	}
}

// Severity returns the effective severity of a refiner.
func (m *ProgrammingModel) Severity(r validate.Refiner) core.Severity {
	if sev, ok := m.severities[r.ID()]; ok {
		return sev
	}
	return r.DefaultSeverity()
}

// Config is the configuration-driven view used by Default.
type Config struct {
	Strict               bool
	Orphans              bool
	SkipServices         bool
	DisabledContributors []string
	DisabledRefiners     []string
	SeverityOverrides    map[string]core.Severity
	Options              map[string]map[string]any
	MaxLength            int
	PageSize             int
}

// Default wires the built-in contributors and refiners and applies cfg.
func Default(cfg Config, extra ...Option) *ProgrammingModel {
	opts := []Option{
		WithContributors(contributors.Builtin()...),
		WithRefiners(refiners.Builtin()...),
		WithValidation(ValidationPolicy{
			Strict:       cfg.Strict,
			Orphans:      cfg.Orphans,
			SkipServices: cfg.SkipServices,
		}),
	}
	for _, id := range cfg.DisabledContributors {
		opts = append(opts, WithoutContributor(id))
	}
	for _, id := range cfg.DisabledRefiners {
		opts = append(opts, WithoutRefiner(id))
	}
	for id, sev := range cfg.SeverityOverrides {
		opts = append(opts, WithSeverity(id, sev))
	}
	for id, o := range cfg.Options {
		opts = append(opts, WithOptions(id, o))
	}
	opts = append(opts, WithOptions(contributors.ConfigDefaults.ID(), defaultsOptions(cfg)))
	return New(append(opts, extra...)...)
}

// defaultsOptions merges the defaults.* keys into the config-defaults options.
func defaultsOptions(cfg Config) map[string]any {
	out := map[string]any{}
	for k, v := range cfg.Options[contributors.ConfigDefaults.ID()] {
		out[k] = v
	}
	if cfg.MaxLength > 0 {
		out["max_length"] = cfg.MaxLength
	}
	if cfg.PageSize > 0 {
		out["page_size"] = cfg.PageSize
	}
	return out
}
