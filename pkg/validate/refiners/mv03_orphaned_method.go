package refiners

import (
	"fmt"

	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/validate"
)

// OrphanedMethod reports convention methods, such as HideTotal, whose
// member does not exist or whose signature does not fit it. It only runs
// when orphan validation is enabled.
var OrphanedMethod = validate.Wrap(validate.Def{
	ID:           "MV03",
	Name:         "orphaned-convention-method",
	Description:  "Every convention method must govern an existing member",
	Severity:     core.SeverityWarning,
	SkipServices: true,
	Check: func(ctx *validate.Context) []core.ValidationFailure {
		if !ctx.Options.Orphans {
			return nil
		}
		var failures []core.ValidationFailure
		for _, s := range ctx.Specs() {
			for _, name := range s.Orphans() {
				failures = append(failures, ctx.MemberFailure(s,
					core.MemberID(s.CanonicalName(), name),
					fmt.Sprintf("convention method %s matches no member", name)))
			}
		}
		return failures
	},
})
