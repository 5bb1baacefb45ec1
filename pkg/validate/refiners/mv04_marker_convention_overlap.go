package refiners

import (
	"fmt"

	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/facet"
	"github.com/leapstack-labs/leapmeta/pkg/validate"
)

var overlapKinds = []facet.Kind{facet.Hidden, facet.Disabled, facet.Choices}

// MarkerConventionOverlap reports members where a marker and a convention
// method both declare the same facet with different values.
var MarkerConventionOverlap = validate.Wrap(validate.Def{
	ID:          "MV04",
	Name:        "marker-convention-overlap",
	Description: "A marker and a convention method must not declare incompatible facets on one member",
	Severity:    core.SeverityError,
	Check: func(ctx *validate.Context) []core.ValidationFailure {
		var failures []core.ValidationFailure
		for _, s := range ctx.Specs() {
			for _, h := range holders(s) {
				for _, kind := range overlapKinds {
					marker, convention := byOrigin(h.Contributions(kind))
					if marker == nil || convention == nil || marker.SemanticEquals(convention) {
						continue
					}
					failures = append(failures, ctx.MemberFailure(s, h.Identifier(),
						fmt.Sprintf("%s declared by marker (%v) and by convention (%v)", kind, marker.Value(), convention.Value())))
				}
			}
		}
		return failures
	},
})

func byOrigin(contributions []facet.Contribution) (marker, convention *facet.Facet) {
	for _, c := range contributions {
		switch c.Facet.Origin() {
		case facet.OriginMarker:
			if marker == nil {
				marker = c.Facet
			}
		case facet.OriginConvention:
			if convention == nil {
				convention = c.Facet
			}
		}
	}
	return marker, convention
}
