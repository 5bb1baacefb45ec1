package refiners

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/facet"
	"github.com/leapstack-labs/leapmeta/pkg/validate"
)

// AmbiguousParent reports types with more than one equally-ranked parent
// candidate. Inherited candidates are ignored when a local one exists.
var AmbiguousParent = validate.Wrap(validate.Def{
	ID:           "MV02",
	Name:         "ambiguous-navigable-parent",
	Description:  "At most one property per type may be marked as the navigable parent",
	Severity:     core.SeverityError,
	SkipServices: true,
	Check: func(ctx *validate.Context) []core.ValidationFailure {
		var failures []core.ValidationFailure
		for _, s := range ctx.Specs() {
			p, ok := facet.Lookup[facet.ParentValue](s.Holder, facet.NavigableParent)
			if !ok || !p.Ambiguous() {
				continue
			}
			candidates := p.Candidates
			if p.Local > 0 {
				candidates = candidates[:p.Local]
			}
			failures = append(failures, ctx.Failure(s,
				fmt.Sprintf("ambiguous navigable parent: %s", strings.Join(candidates, ", ")),
				candidates...))
		}
		return failures
	},
})
