package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/factory"
	"github.com/leapstack-labs/leapmeta/pkg/factory/contributors"
	"github.com/leapstack-labs/leapmeta/pkg/model"
	"github.com/leapstack-labs/leapmeta/pkg/spec"
	"github.com/leapstack-labs/leapmeta/pkg/validate/refiners"
)

func ids[T interface{ ID() string }](items []T) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID()
	}
	return out
}

func TestDefault(t *testing.T) {
	m := model.Default(model.Config{})

	assert.Equal(t, ids(contributors.Builtin()), ids(m.Contributors()))
	assert.Equal(t, []string{"MV01", "MV02", "MV03", "MV04", "MV05", "MV06"}, ids(m.Refiners()))
	assert.ElementsMatch(t, []string{"Hide", "Disable", "Choices", "Default", "Validate"}, m.Prefixes())
	assert.Equal(t, model.ValidationPolicy{}, m.Validation())
}

func TestDefault_Disabling(t *testing.T) {
	m := model.Default(model.Config{
		DisabledContributors: []string{"hidden", "validate"},
		DisabledRefiners:     []string{"MV03"},
	})

	assert.NotContains(t, ids(m.Contributors()), "hidden")
	assert.Len(t, m.AllContributors(), len(contributors.Builtin()))
	assert.False(t, m.ContributorEnabled("hidden"))
	assert.True(t, m.ContributorEnabled("named-marker"))
	assert.ElementsMatch(t, []string{"Disable", "Choices", "Default"}, m.Prefixes())

	assert.NotContains(t, ids(m.Refiners()), "MV03")
	assert.Len(t, m.AllRefiners(), 6)
	assert.False(t, m.RefinerEnabled("MV03"))
}

func TestContributorsFor(t *testing.T) {
	m := model.Default(model.Config{})
	for _, f := range core.FeaturesAll.Types() {
		for _, c := range m.ContributorsFor(f) {
			assert.True(t, c.Features().Has(f), "%s selects %s", c.ID(), f)
		}
	}

	params := ids(m.ContributorsFor(core.FeatureParameter))
	assert.Contains(t, params, "choices")
	assert.NotContains(t, params, "hidden")
}

func TestSeverityAndOptions(t *testing.T) {
	m := model.Default(model.Config{
		Strict:            true,
		Orphans:           true,
		SkipServices:      true,
		SeverityOverrides: map[string]core.Severity{"MV05": core.SeverityError},
		Options:           map[string]map[string]any{"config-defaults": {"page_size": 10}},
		MaxLength:         80,
	})

	assert.Equal(t, core.SeverityError, m.Severity(refiners.FacetConflict))
	assert.Equal(t, core.SeverityWarning, m.Severity(refiners.OrphanedMethod))

	opts := m.ValidateOptions()
	assert.True(t, opts.Orphans)
	assert.True(t, opts.SkipServices)
	assert.Equal(t, core.SeverityError, opts.SeverityOverrides["MV05"])
	assert.True(t, m.Validation().Strict)

	assert.Equal(t, map[string]any{"page_size": 10, "max_length": 80}, m.Options()["config-defaults"])
}

func TestNew_Extras(t *testing.T) {
	extra := factory.Wrap(factory.Def{ID: "extra", Features: core.FeaturesMembers})
	m := model.New(
		model.WithContributors(extra),
		model.WithExclusion("MV01", func(*spec.ObjectSpecification) bool { return true }),
	)

	assert.Equal(t, []string{"extra"}, ids(m.Contributors()))
	assert.Empty(t, m.Prefixes())
	assert.True(t, m.Validation().SkipServices, "services are skipped by default")
	assert.Len(t, m.ValidateOptions().Exclusions["MV01"], 1)
}
