package contributors

import (
	"slices"

	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/facet"
	"github.com/leapstack-labs/leapmeta/pkg/factory"
)

// NavigableParent records the property marked parent. Local candidates
// come first; inherited ones only decide when no local one exists.
var NavigableParent = factory.Wrap(factory.Def{
	ID:          "navigable-parent",
	Description: "Parent navigation from the parent marker on a property",
	Features:    core.Features(core.FeatureObject),
	Process: func(ctx *factory.Context) {
		var local, inherited []string
		for _, f := range ctx.Type.Fields {
			if f.Feature != core.FeatureProperty || !f.Markers.Has("parent") {
				continue
			}
			if f.Inherited {
				inherited = append(inherited, f.Name)
			} else {
				local = append(local, f.Name)
			}
		}
		if len(local)+len(inherited) == 0 {
			return
		}

		candidates := slices.Concat(local, inherited)
		ctx.AddFacet(facet.Marker(facet.NavigableParent, facet.ParentValue{
			Field:      candidates[0],
			Candidates: candidates,
			Local:      len(local),
		}))
	},
})
