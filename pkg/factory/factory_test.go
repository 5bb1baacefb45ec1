package factory_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/facet"
	"github.com/leapstack-labs/leapmeta/pkg/factory"
	"github.com/leapstack-labs/leapmeta/pkg/introspect"
	"github.com/leapstack-labs/leapmeta/pkg/spec"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"FirstName", "First Name"},
		{"invoiceID", "Invoice ID"},
		{"HTTPServer", "HTTP Server"},
		{"unit_price", "Unit Price"},
		{"Line2Total", "Line 2 Total"},
		{"Number", "Number"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, factory.DisplayName(tt.in))
		})
	}
}

func TestHasConventionPrefix(t *testing.T) {
	prefixes := []string{"Hide", "Choices", "Default"}
	tests := []struct {
		name string
		want bool
	}{
		{"HideNotes", true},
		{"Choices0Approve", true},
		{"Hidelight", false},
		{"Hide", false},
		{"DefaultStatus", true},
		{"Approve", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, factory.HasConventionPrefix(tt.name, prefixes))
		})
	}
}

func TestMethodPool(t *testing.T) {
	pool := factory.NewMethodPool([]introspect.MethodDescriptor{
		{Name: "Approve"},
		{Name: "HideNotes"},
		{Name: "ValidateNumber"},
	})

	_, ok := pool.Find("HideNotes")
	assert.True(t, ok)

	pool.Remove("HideNotes")
	_, ok = pool.Find("HideNotes")
	assert.False(t, ok)
	assert.True(t, pool.Removed("HideNotes"))

	remaining := pool.Remaining()
	require.Len(t, remaining, 2)
	assert.Equal(t, "Approve", remaining[0].Name)

	withPrefix := pool.WithPrefix([]string{"Hide", "Validate"})
	require.Len(t, withPrefix, 1)
	assert.Equal(t, "ValidateNumber", withPrefix[0].Name)

	var nilPool *factory.MethodPool
	_, ok = nilPool.Find("Approve")
	assert.False(t, ok)
	assert.Nil(t, nilPool.Remaining())
	nilPool.Remove("Approve")
}

func TestWrapAndInfo(t *testing.T) {
	called := false
	c := factory.Wrap(factory.Def{
		ID:          "hidden-convention",
		Description: "Hides members",
		Features:    core.FeaturesMembers,
		Prefixes:    []string{"Hide"},
		Process:     func(*factory.Context) { called = true },
	})

	c.Process(&factory.Context{})
	assert.True(t, called)

	info := factory.GetInfo(c)
	assert.Equal(t, factory.Info{
		ID:          "hidden-convention",
		Description: "Hides members",
		Features:    "property|collection|action",
		Prefixes:    []string{"Hide"},
	}, info)
	assert.Equal(t, []string{"Hide"}, factory.PrefixesOf(c))

	factory.Wrap(factory.Def{ID: "noop"}).Process(&factory.Context{})
}

type ledger struct{}

type resolver map[reflect.Type]*spec.ObjectSpecification

func (r resolver) Specification(t reflect.Type) (*spec.ObjectSpecification, bool) {
	s, ok := r[t]
	return s, ok
}

func newContext(t *testing.T) (*factory.Context, *spec.ObjectSpecification) {
	t.Helper()
	desc := &introspect.TypeDescriptor{
		Type:    reflect.TypeFor[ledger](),
		Name:    "ledger",
		Markers: introspect.Markers{"named": "General Ledger"},
	}
	s := spec.New(desc, resolver{})
	return &factory.Context{Phase: core.PhaseClass, Feature: core.FeatureObject, Type: desc, Spec: s}, s
}

func TestContext_Holders(t *testing.T) {
	ctx, s := newContext(t)
	bound := ctx.Bind("named", nil)

	assert.Equal(t, "named", bound.Contributor())
	assert.Empty(t, ctx.Contributor(), "bind copies")
	assert.Equal(t, "ledger", bound.Name())
	assert.Equal(t, "General Ledger", bound.Markers()["named"])
	assert.Equal(t, reflect.TypeFor[ledger](), bound.ValueType())
	assert.Same(t, s.Holder, bound.Holder())

	assert.Equal(t, facet.Added, bound.AddFacet(facet.Marker(facet.Named, "General Ledger")))
	f, ok := s.Facet(facet.Named)
	require.True(t, ok)
	assert.Equal(t, "named", f.Source())

	member := spec.NewMember(s, introspect.MemberDescriptor{
		Name:    "Post",
		Feature: core.FeatureAction,
		Type:    reflect.TypeFor[error](),
		Params:  []introspect.ParamDescriptor{{Index: 0, Name: "amount", Type: reflect.TypeFor[int]()}},
	})
	memberCtx := *bound
	memberCtx.Member = member
	assert.Same(t, member.Holder, memberCtx.Holder())
	assert.Same(t, s.Holder, memberCtx.ClassHolder())
	assert.Equal(t, "Post", memberCtx.Name())
	assert.Empty(t, memberCtx.Markers())
	assert.Equal(t, core.MemberID(s.CanonicalName(), "Post"), memberCtx.Identifier())

	paramCtx := memberCtx
	paramCtx.Param, _ = member.Parameter(0)
	assert.Equal(t, "amount", paramCtx.Name())
	assert.Equal(t, reflect.TypeFor[int](), paramCtx.ValueType())
}

func TestContext_LoadNestedWithoutLoader(t *testing.T) {
	ctx, _ := newContext(t)
	_, err := ctx.LoadNested(reflect.TypeFor[ledger]())
	assert.ErrorContains(t, err, "no loader bound")
}

func TestContext_DecodeOptions(t *testing.T) {
	type opts struct {
		MaxLength int    `koanf:"max_length"`
		Mode      string `koanf:"mode"`
	}

	ctx, _ := newContext(t)
	bound := ctx.Bind("config-defaults", factory.Options{
		"config-defaults": {"max_length": "120"},
	})
	assert.True(t, bound.HasOptions())

	got := opts{Mode: "keep"}
	require.NoError(t, bound.DecodeOptions(&got))
	assert.Equal(t, opts{MaxLength: 120, Mode: "keep"}, got)

	unbound := ctx.Bind("other", nil)
	assert.False(t, unbound.HasOptions())
	require.NoError(t, unbound.DecodeOptions(&got))

	bad := ctx.Bind("config-defaults", factory.Options{"config-defaults": {"max_length": "lots"}})
	assert.ErrorContains(t, bad.DecodeOptions(&opts{}), "options for config-defaults")
}
