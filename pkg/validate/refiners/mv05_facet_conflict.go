package refiners

import (
	"fmt"

	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/facet"
	"github.com/leapstack-labs/leapmeta/pkg/spec"
	"github.com/leapstack-labs/leapmeta/pkg/validate"
)

// FacetConflict reports equal-precedence contributions with different
// values. The first-registered facet was kept.
var FacetConflict = validate.Wrap(validate.Def{
	ID:          "MV05",
	Name:        "facet-conflict",
	Description: "Contributions of equal precedence must agree",
	Severity:    core.SeverityWarning,
	Check: func(ctx *validate.Context) []core.ValidationFailure {
		var failures []core.ValidationFailure
		for _, s := range ctx.Specs() {
			for _, h := range holders(s) {
				for _, c := range h.Conflicts() {
					failures = append(failures, ctx.MemberFailure(s, c.Holder,
						fmt.Sprintf("conflicting %s at %s precedence: kept %v from %s, rejected %v from %s",
							c.Kind, c.Kept.Precedence(), c.Kept.Value(), c.Kept.Source(), c.Rejected.Value(), c.Rejected.Source()),
						c.Kept.Source(), c.Rejected.Source()))
				}
			}
		}
		return failures
	},
})

// holders returns the class holder followed by every member and parameter
// holder in member order.
func holders(s *spec.ObjectSpecification) []*facet.Holder {
	out := []*facet.Holder{s.Holder}
	for _, m := range s.Members() {
		out = append(out, m.Holder)
		for _, p := range m.Parameters() {
			out = append(out, p.Holder)
		}
	}
	return out
}
