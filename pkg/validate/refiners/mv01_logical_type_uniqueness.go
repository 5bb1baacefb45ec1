package refiners

import (
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/spec"
	"github.com/leapstack-labs/leapmeta/pkg/validate"
)

// LogicalTypeUniqueness reports logical type names shared by distinct types.
var LogicalTypeUniqueness = validate.Wrap(validate.Def{
	ID:          "MV01",
	Name:        "logical-type-uniqueness",
	Description: "Two distinct types must not share a logical type name",
	Severity:    core.SeverityError,
	Check:       checkLogicalTypeUniqueness,
})

func checkLogicalTypeUniqueness(ctx *validate.Context) []core.ValidationFailure {
	byName := make(map[string][]*spec.ObjectSpecification)
	var names []string
	for _, s := range ctx.Specs() {
		name := s.LogicalType().Name()
		if _, seen := byName[name]; !seen {
			names = append(names, name)
		}
		byName[name] = append(byName[name], s)
	}
	slices.Sort(names)

	var failures []core.ValidationFailure
	for _, name := range names {
		specs := byName[name]
		if len(specs) < 2 {
			continue
		}
		types := make([]string, len(specs))
		for i, s := range specs {
			types[i] = s.CanonicalName()
		}
		slices.Sort(types)

		failures = append(failures, ctx.Failure(specs[0],
			fmt.Sprintf("logical type name %q is shared by %d types: %s", name, len(types), strings.Join(types, ", ")),
			types...))
	}
	return failures
}
