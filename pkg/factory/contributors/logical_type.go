package contributors

import (
	"strings"

	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/facet"
	"github.com/leapstack-labs/leapmeta/pkg/factory"
)

// LogicalType names the type for bookmarks and reverse lookup. The
// logicalType= marker wins over the canonical Go name.
var LogicalType = factory.Wrap(factory.Def{
	ID:          "logical-type",
	Description: "Logical type name from the logicalType= marker or the canonical Go name",
	Features:    core.Features(core.FeatureObject),
	Process: func(ctx *factory.Context) {
		if v, ok := ctx.Markers().Get("logicalType"); ok {
			if v == "" || strings.Contains(v, ":") {
				ctx.Logger.Warn("ignoring invalid logical type name", "type", ctx.Type.CanonicalName(), "name", v)
			} else {
				ctx.AddFacet(facet.Marker(facet.LogicalTypeName, v))
			}
		}
		ctx.AddFacet(facet.Convention(facet.LogicalTypeName, ctx.Type.CanonicalName()))
	},
})
