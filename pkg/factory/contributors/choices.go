package contributors

import (
	"reflect"

	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/facet"
	"github.com/leapstack-labs/leapmeta/pkg/factory"
	"github.com/leapstack-labs/leapmeta/pkg/introspect"
)

// Choices offers a closed set of values from the choices=a|b marker, a
// ChoicesFoo() method for properties, or a ChoicesNFoo() method for the
// N-th parameter of action Foo.
var Choices = factory.Wrap(factory.Def{
	ID:          "choices",
	Description: "Closed value set from the choices= marker or a ChoicesFoo() method",
	Features:    core.Features(core.FeatureProperty, core.FeatureParameter),
	Prefixes:    []string{PrefixChoices},
	Process: func(ctx *factory.Context) {
		if values, ok := ctx.Markers().List("choices"); ok && len(values) > 0 {
			ctx.AddFacet(facet.Marker(facet.Choices, facet.ChoicesValue{Values: values}))
		}
		if name, ok := consume(ctx, PrefixChoices, func(m introspect.MethodDescriptor) bool {
			return noParams(m) && returnsKind(m, reflect.Slice, reflect.Array)
		}); ok {
			ctx.AddFacet(facet.Convention(facet.Choices, facet.ChoicesValue{Method: name}))
		}
	},
})

// Default supplies a default value from the default= marker, a DefaultFoo()
// method for properties, or a DefaultNFoo() method for parameters. The
// method result must be assignable to the value type.
var Default = factory.Wrap(factory.Def{
	ID:          "default",
	Description: "Default value from the default= marker or a DefaultFoo() method",
	Features:    core.Features(core.FeatureProperty, core.FeatureParameter),
	Prefixes:    []string{PrefixDefault},
	Process: func(ctx *factory.Context) {
		if v, ok := ctx.Markers().Get("default"); ok {
			ctx.AddFacet(facet.Marker(facet.Default, facet.DefaultValue{Value: v}))
		}
		want := ctx.ValueType()
		if want == nil {
			return
		}
		if name, ok := consume(ctx, PrefixDefault, func(m introspect.MethodDescriptor) bool {
			return noParams(m) && m.Returns(want)
		}); ok {
			ctx.AddFacet(facet.Convention(facet.Default, facet.DefaultValue{Method: name}))
		}
	},
})

// Validate recognizes ValidateFoo methods. For a property the method takes
// the proposed value; for an action it takes the action's parameters. It
// returns a reason string or an error.
var Validate = factory.Wrap(factory.Def{
	ID:          "validate",
	Description: "Validation through a ValidateFoo method",
	Features:    core.Features(core.FeatureProperty, core.FeatureAction),
	Prefixes:    []string{PrefixValidate},
	Process: func(ctx *factory.Context) {
		var params []reflect.Type
		switch ctx.Feature {
		case core.FeatureProperty:
			params = []reflect.Type{ctx.ValueType()}
		case core.FeatureAction:
			for _, p := range ctx.Member.Parameters() {
				params = append(params, p.Type())
			}
		}
		if name, ok := consume(ctx, PrefixValidate, func(m introspect.MethodDescriptor) bool {
			return m.ParamsMatch(params) && returnsReason(m)
		}); ok {
			ctx.AddFacet(facet.Convention(facet.Validate, facet.ValidateValue{Method: name}))
		}
	},
})
