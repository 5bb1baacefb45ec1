package contributors

import (
	"strings"

	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/facet"
	"github.com/leapstack-labs/leapmeta/pkg/factory"
)

// NatureOptions configures the type-name suffixes that mark service types.
type NatureOptions struct {
	ServiceSuffixes []string `koanf:"service_suffixes"`
}

var defaultServiceSuffixes = []string{"Service", "Repository"}

// Nature classifies the type as entity, view model, service or value.
var Nature = factory.Wrap(factory.Def{
	ID:          "nature",
	Description: "Object nature from the nature= marker or a service-like type name",
	Features:    core.Features(core.FeatureObject),
	Process: func(ctx *factory.Context) {
		if v, ok := ctx.Markers().Get("nature"); ok {
			if n, valid := facet.ParseNature(strings.ToLower(v)); valid {
				ctx.AddFacet(facet.Marker(facet.ObjectNature, n))
			} else {
				ctx.Logger.Warn("unknown nature", "type", ctx.Type.CanonicalName(), "nature", v)
			}
		}

		var opts NatureOptions
		if err := ctx.DecodeOptions(&opts); err != nil {
			ctx.Logger.Warn("invalid options", "error", err)
		}
		if len(opts.ServiceSuffixes) == 0 {
			opts.ServiceSuffixes = defaultServiceSuffixes
		}
		for _, suffix := range opts.ServiceSuffixes {
			if suffix != "" && strings.HasSuffix(ctx.Type.Name, suffix) {
				ctx.AddFacet(facet.Convention(facet.ObjectNature, facet.NatureService))
				return
			}
		}
	},
})
