package refiners_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/facet"
	"github.com/leapstack-labs/leapmeta/pkg/factory"
	"github.com/leapstack-labs/leapmeta/pkg/introspect"
	"github.com/leapstack-labs/leapmeta/pkg/loader"
	"github.com/leapstack-labs/leapmeta/pkg/model"
	"github.com/leapstack-labs/leapmeta/pkg/validate/refiners"
)

type Ticket struct {
	_     struct{} `meta:"logicalType=support.Ticket"`
	Title string
}

type LegacyTicket struct {
	_     struct{} `meta:"logicalType=support.Ticket"`
	Title string
}

type Queue struct {
	Name string
}

type Comment struct {
	Ticket *Ticket `meta:"parent"`
	Queue  *Queue  `meta:"parent"`
	Body   string
}

type Thread struct {
	Comment
	Root *Comment `meta:"parent"`
}

type Inherited struct {
	Comment
}

type Draft struct {
	Body string
}

func (*Draft) HideSubject() bool { return false }
func (*Draft) HideBody() string  { return "" }

type Flagged struct {
	Status string `meta:"hidden,choices=Open|Closed"`
}

func (*Flagged) HideStatus() bool        { return false }
func (*Flagged) ChoicesStatus() []string { return []string{"Open", "Closed"} }

type NotifierService struct{}

func (*NotifierService) HideNothing() bool { return true }

type Loop1 struct{ *Loop2 }

type Loop2 struct{ *Loop1 }

func build(t *testing.T, cfg model.Config, types ...any) *core.Report {
	t.Helper()
	handles := make([]reflect.Type, len(types))
	for i, v := range types {
		handles[i] = reflect.TypeOf(v)
	}
	l := loader.New(model.Default(cfg), introspect.NewReflectProvider(), loader.Options{})
	report, err := l.BuildUnit(handles...)
	require.NoError(t, err)
	return report
}

func TestLogicalTypeUniqueness(t *testing.T) {
	t.Run("single type", func(t *testing.T) {
		report := build(t, model.Config{}, Ticket{})
		assert.Empty(t, report.ByRule("MV01"))
	})

	t.Run("shared name", func(t *testing.T) {
		report := build(t, model.Config{}, Ticket{}, LegacyTicket{})
		failures := report.ByRule("MV01")
		require.Len(t, failures, 1)

		f := failures[0]
		assert.Equal(t, core.SeverityError, f.Severity)
		assert.Equal(t, "support.Ticket", f.Type)
		assert.Contains(t, f.Message, core.CanonicalName(reflect.TypeFor[Ticket]()))
		assert.Contains(t, f.Message, core.CanonicalName(reflect.TypeFor[LegacyTicket]()))
		assert.Len(t, f.Related, 2)
	})
}

func TestAmbiguousParent(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  int
	}{
		{"two local candidates", Comment{}, 1},
		{"local wins over inherited", Thread{}, 0},
		{"two inherited candidates", Inherited{}, 1},
		{"single parent", Queue{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := build(t, model.Config{}, tt.value)
			typeName := core.CanonicalName(reflect.TypeOf(tt.value))
			var got []core.ValidationFailure
			for _, f := range report.ByRule("MV02") {
				if f.Type == typeName {
					got = append(got, f)
				}
			}
			assert.Len(t, got, tt.want)
		})
	}
}

func TestOrphanedMethod(t *testing.T) {
	t.Run("reported when enabled", func(t *testing.T) {
		report := build(t, model.Config{Orphans: true, SkipServices: true}, Draft{}, NotifierService{})
		failures := report.ByRule("MV03")
		require.Len(t, failures, 2, "services are skipped")

		names := []string{failures[0].Member.MemberName, failures[1].Member.MemberName}
		assert.ElementsMatch(t, []string{"HideSubject", "HideBody"}, names)
		assert.Equal(t, core.SeverityWarning, failures[0].Severity)
	})

	t.Run("silent when disabled", func(t *testing.T) {
		report := build(t, model.Config{Orphans: false}, Draft{})
		assert.Empty(t, report.ByRule("MV03"))
	})

	t.Run("services included when not skipped", func(t *testing.T) {
		report := build(t, model.Config{Orphans: true, SkipServices: false}, NotifierService{})
		assert.Len(t, report.ByRule("MV03"), 1)
	})
}

func TestMarkerConventionOverlap(t *testing.T) {
	report := build(t, model.Config{}, Flagged{})
	failures := report.ByRule("MV04")
	require.Len(t, failures, 2)
	assert.Equal(t, "Status", failures[0].Member.MemberName)
	assert.Contains(t, failures[0].Message, "hidden declared by marker")
	assert.Contains(t, failures[1].Message, "choices declared by marker")
}

func TestFacetConflict(t *testing.T) {
	dissent := factory.Wrap(factory.Def{
		ID:       "dissent",
		Features: core.Features(core.FeatureObject),
		Process: func(ctx *factory.Context) {
			ctx.AddFacet(facet.Marker(facet.LogicalTypeName, "helpdesk.Ticket"))
		},
	})
	m := model.Default(model.Config{}, model.WithContributors(dissent))
	l := loader.New(m, introspect.NewReflectProvider(), loader.Options{})
	report, err := l.BuildUnit(reflect.TypeFor[Ticket]())
	require.NoError(t, err)

	failures := report.ByRule("MV05")
	require.Len(t, failures, 1)
	assert.Equal(t, "support.Ticket", failures[0].Type, "first registered facet is kept")
	assert.Equal(t, []string{"logical-type", "dissent"}, failures[0].Related)
	assert.Equal(t, core.SeverityWarning, failures[0].Severity)
}

func TestSupertypeCycle(t *testing.T) {
	report := build(t, model.Config{}, Loop1{}, Loop2{})
	failures := report.ByRule("MV06")
	require.Len(t, failures, 1)
	assert.Contains(t, failures[0].Message, "supertype cycle")
	assert.Len(t, failures[0].Related, 2)
}

func TestBuiltin(t *testing.T) {
	var ids []string
	for _, r := range refiners.Builtin() {
		ids = append(ids, r.ID())
	}
	assert.Equal(t, []string{"MV01", "MV02", "MV03", "MV04", "MV05", "MV06"}, ids)
}
