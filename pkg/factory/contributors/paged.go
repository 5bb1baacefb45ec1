package contributors

import (
	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/facet"
	"github.com/leapstack-labs/leapmeta/pkg/factory"
)

// Paged reads the page size of a type or collection from the paged= marker.
var Paged = factory.Wrap(factory.Def{
	ID:          "paged",
	Description: "Page size from the paged= marker",
	Features:    core.Features(core.FeatureObject, core.FeatureCollection),
	Process: func(ctx *factory.Context) {
		n, ok, err := ctx.Markers().Int("paged")
		switch {
		case err != nil:
			ctx.Logger.Warn("invalid paged marker", "holder", ctx.Identifier().String(), "error", err)
		case ok && n > 0:
			ctx.AddFacet(facet.Marker(facet.Paged, n))
		}
	},
})

// MemberOrder reads the explicit position of a member from the order= marker.
var MemberOrder = factory.Wrap(factory.Def{
	ID:          "member-order",
	Description: "Explicit member position from the order= marker",
	Features:    core.FeaturesMembers,
	Process: func(ctx *factory.Context) {
		n, ok, err := ctx.Markers().Int("order")
		switch {
		case err != nil:
			ctx.Logger.Warn("invalid order marker", "holder", ctx.Identifier().String(), "error", err)
		case ok:
			ctx.AddFacet(facet.Marker(facet.MemberOrder, n))
		}
	},
})
