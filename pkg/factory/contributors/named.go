package contributors

import (
	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/facet"
	"github.com/leapstack-labs/leapmeta/pkg/factory"
)

// NamedMarker reads the display name from the named= marker.
var NamedMarker = factory.Wrap(factory.Def{
	ID:          "named-marker",
	Description: "Display name from the named= marker",
	Features:    core.FeaturesAll,
	Process: func(ctx *factory.Context) {
		if v, ok := ctx.Markers().Get("named"); ok && v != "" {
			ctx.AddFacet(facet.Marker(facet.Named, v))
		}
	},
})

// NamedConvention derives the display name from the Go identifier.
var NamedConvention = factory.Wrap(factory.Def{
	ID:          "named-convention",
	Description: "Display name derived from the Go identifier, e.g. FirstName becomes First Name",
	Features:    core.FeaturesAll,
	Process: func(ctx *factory.Context) {
		if name := factory.DisplayName(ctx.Name()); name != "" {
			ctx.AddFacet(facet.Convention(facet.Named, name))
		}
	},
})

// DescribedAsMarker reads a description from the describedAs= marker.
var DescribedAsMarker = factory.Wrap(factory.Def{
	ID:          "described-as-marker",
	Description: "Description from the describedAs= marker",
	Features:    core.FeaturesAll,
	Process: func(ctx *factory.Context) {
		if v, ok := ctx.Markers().Get("describedAs"); ok && v != "" {
			ctx.AddFacet(facet.Marker(facet.DescribedAs, v))
		}
	},
})
