package contributors

import (
	"reflect"

	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/facet"
	"github.com/leapstack-labs/leapmeta/pkg/factory"
)

// TypeOf loads the specification of the type a member refers to: the
// property type, the collection element or the action result. The related
// spec may still be a placeholder; only its type handle is recorded.
var TypeOf = factory.Wrap(factory.Def{
	ID:          "type-of",
	Description: "Referenced type of properties, collection elements and action results",
	Features:    core.FeaturesMembers,
	Process: func(ctx *factory.Context) {
		desc := ctx.Member.Descriptor()
		var t reflect.Type
		switch ctx.Feature {
		case core.FeatureCollection:
			t = desc.Element
		default:
			t = desc.Type
		}
		if t = core.Normalize(t); t == nil {
			return
		}
		if ctx.Feature == core.FeatureAction {
			switch t.Kind() {
			case reflect.Slice, reflect.Array, reflect.Map:
				t = core.Normalize(t.Elem())
			}
		}

		// Construction errors are kept by the loader and abort the build.
		related, err := ctx.LoadNested(t)
		if err != nil {
			return
		}
		ctx.AddFacet(facet.New(facet.TypeOf, related.Type(),
			facet.WithOrigin(facet.OriginInferred), facet.WithEqual(facet.IdentityEqual)))
	},
})
