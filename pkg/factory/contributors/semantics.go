package contributors

import (
	"strings"

	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/facet"
	"github.com/leapstack-labs/leapmeta/pkg/factory"
)

var safePrefixes = []string{"Get", "Find", "List", "Lookup", "Count"}

// ActionSemantics reads the semantics= marker. Query-style names such as
// FindByNumber are inferred safe.
var ActionSemantics = factory.Wrap(factory.Def{
	ID:          "action-semantics",
	Description: "Action side effects from the semantics= marker or a query-style name",
	Features:    core.Features(core.FeatureAction),
	Process: func(ctx *factory.Context) {
		if v, ok := ctx.Markers().Get("semantics"); ok {
			if s, valid := facet.ParseSemantics(strings.ToLower(v)); valid {
				ctx.AddFacet(facet.Marker(facet.ActionSemantics, s))
			} else {
				ctx.Logger.Warn("unknown action semantics", "holder", ctx.Identifier().String(), "semantics", v)
			}
		}
		if factory.HasConventionPrefix(ctx.Name(), safePrefixes) {
			ctx.AddFacet(facet.New(facet.ActionSemantics, facet.SemanticsSafe, facet.WithOrigin(facet.OriginInferred)))
		}
	},
})
