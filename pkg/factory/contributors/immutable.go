package contributors

import (
	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/facet"
	"github.com/leapstack-labs/leapmeta/pkg/factory"
)

// Immutable marks the whole type read-only from the immutable marker.
// The marker value, if any, is the reason shown to users.
var Immutable = factory.Wrap(factory.Def{
	ID:          "immutable",
	Description: "Read-only type from the immutable marker",
	Features:    core.Features(core.FeatureObject),
	Process: func(ctx *factory.Context) {
		if reason, ok := ctx.Markers().Get("immutable"); ok {
			if reason == "" {
				reason = "Immutable"
			}
			ctx.AddFacet(facet.Marker(facet.Immutable, facet.ImmutableValue{Reason: reason}))
		}
	},
})

// ImmutableMembers disables the properties and collections of an immutable
// type. It consults the class facet attached during the class pass.
var ImmutableMembers = factory.Wrap(factory.Def{
	ID:          "immutable-members",
	Description: "Disables properties and collections of immutable types",
	Features:    core.Features(core.FeatureProperty, core.FeatureCollection),
	Process: func(ctx *factory.Context) {
		im, ok := facet.Lookup[facet.ImmutableValue](ctx.ClassHolder(), facet.Immutable)
		if !ok {
			return
		}
		ctx.AddFacet(facet.Derived(facet.Disabled, facet.DisabledValue{Always: true, Reason: im.Reason}))
	},
})
