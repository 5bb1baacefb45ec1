package contributors

import (
	"reflect"

	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/facet"
	"github.com/leapstack-labs/leapmeta/pkg/factory"
)

// DefaultPageSize is the page size used when none is configured.
const DefaultPageSize = 25

// DefaultsOptions configures ConfigDefaults. MaxLength 0 means unlimited.
type DefaultsOptions struct {
	MaxLength int `koanf:"max_length"`
	PageSize  int `koanf:"page_size"`
}

// ConfigDefaults attaches fallback facets so every holder answers the common
// questions. Any real contribution displaces them.
var ConfigDefaults = factory.Wrap(factory.Def{
	ID:          "config-defaults",
	Description: "Fallback name, description, length, paging and semantics from configuration",
	Features:    core.FeaturesAll,
	Process:     processDefaults,
})

func processDefaults(ctx *factory.Context) {
	opts := DefaultsOptions{PageSize: DefaultPageSize}
	if err := ctx.DecodeOptions(&opts); err != nil {
		ctx.Logger.Warn("invalid options, using built-in defaults", "error", err)
		opts = DefaultsOptions{PageSize: DefaultPageSize}
	}

	ctx.AddFacet(facet.Fallback(facet.Named, ctx.Name()))
	ctx.AddFacet(facet.Fallback(facet.DescribedAs, ""))

	switch ctx.Feature {
	case core.FeatureObject, core.FeatureCollection:
		ctx.AddFacet(facet.Fallback(facet.Paged, opts.PageSize))
	case core.FeatureProperty, core.FeatureParameter:
		if t := core.Normalize(ctx.ValueType()); t != nil && t.Kind() == reflect.String {
			ctx.AddFacet(facet.Fallback(facet.MaxLength, opts.MaxLength))
		}
	case core.FeatureAction:
		ctx.AddFacet(facet.Fallback(facet.ActionSemantics, facet.SemanticsNonIdempotent))
	}
}
