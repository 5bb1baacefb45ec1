package contributors

import (
	"reflect"

	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/facet"
	"github.com/leapstack-labs/leapmeta/pkg/factory"
)

// Mandatory decides whether a value is required. The optional and required
// markers are explicit; otherwise nillable types are inferred optional.
var Mandatory = factory.Wrap(factory.Def{
	ID:          "mandatory",
	Description: "Optionality from the optional/required markers or a nillable type",
	Features:    core.Features(core.FeatureProperty, core.FeatureParameter),
	Process: func(ctx *factory.Context) {
		m := ctx.Markers()
		if m.Has("optional") {
			ctx.AddFacet(facet.Marker(facet.Mandatory, false))
		}
		if m.Has("required") {
			ctx.AddFacet(facet.Marker(facet.Mandatory, true))
		}

		t := ctx.ValueType()
		if t == nil {
			return
		}
		ctx.AddFacet(facet.New(facet.Mandatory, !nillable(t), facet.WithOrigin(facet.OriginInferred)))
	},
})

func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map:
		return true
	default:
		return false
	}
}
