// Package factory defines the contract for facet contributors ("facet
// factories") and the processing context they receive.
//
// A contributor declares which feature types it applies to and is invoked by
// the construction protocol once per matching class, member or parameter:
//
//	var namedMarker = factory.Def{
//		ID:          "named-marker",
//		Description: "Display name from the named= marker",
//		Features:    core.FeaturesAll,
//		Process: func(ctx *factory.Context) {
//			if v, ok := ctx.Markers().Get("named"); ok {
//				ctx.AddFacet(facet.Marker(facet.Named, v))
//			}
//		},
//	}
//
// Contributors that recognize naming-convention methods (DisableFoo, HideFoo)
// implement Prefixed so the protocol knows those methods are not actions,
// and remove the methods they consume from the MethodPool.
package factory
