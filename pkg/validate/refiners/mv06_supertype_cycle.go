package refiners

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/spec"
	"github.com/leapstack-labs/leapmeta/pkg/validate"
)

// SupertypeCycle reports types that embed each other through pointers.
var SupertypeCycle = validate.Wrap(validate.Def{
	ID:          "MV06",
	Name:        "supertype-cycle",
	Description: "The embedded supertype hierarchy must be acyclic",
	Severity:    core.SeverityError,
	Check: func(ctx *validate.Context) []core.ValidationFailure {
		h, selfEmbedding := spec.BuildHierarchy(ctx.Graph.Specifications())

		var failures []core.ValidationFailure
		for _, name := range selfEmbedding {
			if n, ok := h.Node(name); ok && !ctx.Excluded(n.Data) {
				failures = append(failures, ctx.Failure(n.Data, "type embeds itself", name))
			}
		}
		if cyclic, path := h.HasCycle(); cyclic {
			if n, ok := h.Node(path[0]); ok && !ctx.Excluded(n.Data) {
				failures = append(failures, ctx.Failure(n.Data,
					fmt.Sprintf("supertype cycle: %s", strings.Join(path, " -> ")),
					path[:len(path)-1]...))
			}
		}
		return failures
	},
})
