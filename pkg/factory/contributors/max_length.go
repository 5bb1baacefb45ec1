package contributors

import (
	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/facet"
	"github.com/leapstack-labs/leapmeta/pkg/factory"
)

// MaxLength reads the maxLength= marker.
var MaxLength = factory.Wrap(factory.Def{
	ID:          "max-length",
	Description: "Maximum length from the maxLength= marker",
	Features:    core.Features(core.FeatureProperty, core.FeatureParameter),
	Process: func(ctx *factory.Context) {
		n, ok, err := ctx.Markers().Int("maxLength")
		switch {
		case err != nil:
			ctx.Logger.Warn("invalid maxLength marker", "holder", ctx.Identifier().String(), "error", err)
		case ok && n >= 0:
			ctx.AddFacet(facet.Marker(facet.MaxLength, n))
		}
	},
})
