package contributors

import (
	"reflect"

	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/facet"
	"github.com/leapstack-labs/leapmeta/pkg/factory"
	"github.com/leapstack-labs/leapmeta/pkg/introspect"
)

// Hidden hides members through the hidden marker or a HideFoo() bool method.
var Hidden = factory.Wrap(factory.Def{
	ID:          "hidden",
	Description: "Visibility from the hidden marker or a HideFoo() bool method",
	Features:    core.FeaturesMembers,
	Prefixes:    []string{PrefixHide},
	Process: func(ctx *factory.Context) {
		if ctx.Markers().Has("hidden") {
			ctx.AddFacet(facet.Marker(facet.Hidden, facet.HiddenValue{Always: true}))
		}
		if name, ok := consume(ctx, PrefixHide, func(m introspect.MethodDescriptor) bool {
			return noParams(m) && returnsKind(m, reflect.Bool)
		}); ok {
			ctx.AddFacet(facet.Convention(facet.Hidden, facet.HiddenValue{Method: name}))
		}
	},
})

// Disabled disables members through the disabled marker or a DisableFoo()
// method returning a reason string, an error or a bool.
var Disabled = factory.Wrap(factory.Def{
	ID:          "disabled",
	Description: "Usability from the disabled marker or a DisableFoo() method",
	Features:    core.FeaturesMembers,
	Prefixes:    []string{PrefixDisable},
	Process: func(ctx *factory.Context) {
		if reason, ok := ctx.Markers().Get("disabled"); ok {
			ctx.AddFacet(facet.Marker(facet.Disabled, facet.DisabledValue{Always: true, Reason: reason}))
		}
		if name, ok := consume(ctx, PrefixDisable, func(m introspect.MethodDescriptor) bool {
			return noParams(m) && (returnsReason(m) || returnsKind(m, reflect.Bool))
		}); ok {
			ctx.AddFacet(facet.Convention(facet.Disabled, facet.DisabledValue{Method: name}))
		}
	},
})
