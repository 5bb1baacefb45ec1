package validate_test

import (
	"reflect"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapmeta/internal/testutil"
	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/facet"
	"github.com/leapstack-labs/leapmeta/pkg/introspect"
	"github.com/leapstack-labs/leapmeta/pkg/spec"
	"github.com/leapstack-labs/leapmeta/pkg/validate"
)

type (
	invoice       struct{}
	customer      struct{}
	mailerService struct{}
)

type graph struct {
	specs map[reflect.Type]*spec.ObjectSpecification
}

func (g *graph) Specifications() []*spec.ObjectSpecification {
	out := make([]*spec.ObjectSpecification, 0, len(g.specs))
	for _, s := range g.specs {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b *spec.ObjectSpecification) int {
		return a.LogicalType().Compare(b.LogicalType())
	})
	return out
}

func (g *graph) Specification(t reflect.Type) (*spec.ObjectSpecification, bool) {
	s, ok := g.specs[t]
	return s, ok
}

func newGraph() *graph {
	g := &graph{specs: map[reflect.Type]*spec.ObjectSpecification{}}
	for _, t := range []reflect.Type{reflect.TypeFor[invoice](), reflect.TypeFor[customer](), reflect.TypeFor[mailerService]()} {
		s := spec.New(&introspect.TypeDescriptor{Type: t, Name: t.Name()}, g)
		s.MarkBuilt()
		g.specs[t] = s
	}
	g.specs[reflect.TypeFor[mailerService]()].AddFacet(facet.Marker(facet.ObjectNature, facet.NatureService))
	return g
}

// perType reports one finding for every specification in scope.
func perType(id string, sev core.Severity, skipServices bool) validate.Refiner {
	return validate.Wrap(validate.Def{
		ID:           id,
		Name:         "per-type",
		Description:  "one finding per type",
		Severity:     sev,
		SkipServices: skipServices,
		Check: func(ctx *validate.Context) []core.ValidationFailure {
			var out []core.ValidationFailure
			for _, s := range ctx.Specs() {
				out = append(out, ctx.Failure(s, "seen"))
			}
			return out
		},
	})
}

func TestEngine_RegistrationOrder(t *testing.T) {
	e := validate.NewEngine([]validate.Refiner{
		perType("T2", core.SeverityWarning, false),
		perType("T1", core.SeverityError, false),
	}, validate.Options{Concurrency: 1}, nil)

	report := e.Run(newGraph())
	require.Equal(t, 6, report.Len())

	var rules []string
	for _, f := range report.Failures {
		rules = append(rules, f.RuleID)
	}
	assert.Equal(t, []string{"T2", "T2", "T2", "T1", "T1", "T1"}, rules)
	assert.Equal(t, core.SeverityWarning, report.Failures[0].Severity)
}

func TestEngine_Deterministic(t *testing.T) {
	refiners := []validate.Refiner{
		perType("A", core.SeverityError, false),
		perType("B", core.SeverityError, true),
		perType("C", core.SeverityInfo, false),
	}
	g := newGraph()
	first := validate.NewEngine(refiners, validate.Options{SkipServices: true}, nil).Run(g)
	for range 10 {
		again := validate.NewEngine(refiners, validate.Options{SkipServices: true}, nil).Run(g)
		assert.Equal(t, first.Failures, again.Failures)
	}
}

func TestEngine_SkipServices(t *testing.T) {
	tests := []struct {
		name         string
		optSkip      bool
		refinerSkips bool
		want         int
	}{
		{"both skip", true, true, 2},
		{"refiner does not opt in", true, false, 3},
		{"policy disabled", false, true, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validate.NewEngine([]validate.Refiner{perType("X", core.SeverityError, tt.refinerSkips)},
				validate.Options{SkipServices: tt.optSkip}, nil)
			assert.Equal(t, tt.want, e.Run(newGraph()).Len())
		})
	}
}

func TestEngine_OverridesAndExclusions(t *testing.T) {
	e := validate.NewEngine([]validate.Refiner{perType("X", core.SeverityError, false)}, validate.Options{
		SeverityOverrides: map[string]core.Severity{"X": core.SeverityInfo},
		Exclusions: map[string][]validate.Exclusion{
			"X": {func(s *spec.ObjectSpecification) bool { return s.Type() == reflect.TypeFor[customer]() }},
		},
	}, nil)

	report := e.Run(newGraph())
	require.Equal(t, 2, report.Len())
	for _, f := range report.Failures {
		assert.Equal(t, core.SeverityInfo, f.Severity)
		assert.NotContains(t, f.Type, "customer")
	}
	assert.False(t, report.HasErrors())
}

func TestEngine_PanicRecovery(t *testing.T) {
	logger, buf := testutil.NewCaptureLogger()

	boom := validate.Wrap(validate.Def{
		ID:       "BOOM",
		Name:     "boom",
		Severity: core.SeverityWarning,
		Check: func(*validate.Context) []core.ValidationFailure {
			panic("kaput")
		},
	})
	e := validate.NewEngine([]validate.Refiner{boom, perType("OK", core.SeverityError, false)}, validate.Options{}, logger)

	report := e.Run(newGraph())
	require.Equal(t, 4, report.Len())
	assert.Equal(t, "BOOM", report.Failures[0].RuleID)
	assert.Equal(t, core.SeverityError, report.Failures[0].Severity)
	assert.Contains(t, report.Failures[0].Message, "refiner boom panicked: kaput")
	assert.Len(t, report.ByRule("OK"), 3)
	assert.Contains(t, buf.String(), "refiner panicked")
}

func TestContext_MemberFailure(t *testing.T) {
	g := newGraph()
	inv := g.specs[reflect.TypeFor[invoice]()]
	inv.AddFacet(facet.Marker(facet.LogicalTypeName, "sales.Invoice"))

	r := validate.Wrap(validate.Def{
		ID:       "M",
		Severity: core.SeverityWarning,
		Check: func(ctx *validate.Context) []core.ValidationFailure {
			return []core.ValidationFailure{ctx.MemberFailure(inv, core.MemberID(inv.CanonicalName(), "Number"), "bad", "x")}
		},
	})
	report := validate.NewEngine([]validate.Refiner{r}, validate.Options{}, nil).Run(g)
	require.Equal(t, 1, report.Len())

	f := report.Failures[0]
	assert.Equal(t, "sales.Invoice", f.Type)
	assert.Equal(t, "Number", f.Member.MemberName)
	assert.Equal(t, []string{"x"}, f.Related)
}

func TestGetInfo(t *testing.T) {
	info := validate.GetInfo(perType("MV99", core.SeverityWarning, true))
	assert.Equal(t, validate.Info{
		ID:           "MV99",
		Name:         "per-type",
		Description:  "one finding per type",
		Severity:     "warning",
		SkipServices: true,
	}, info)

	empty := validate.Wrap(validate.Def{ID: "E"})
	assert.Nil(t, empty.Check(&validate.Context{}))
}
