package spec

import (
	"github.com/leapstack-labs/leapmeta/internal/dag"
	"github.com/leapstack-labs/leapmeta/pkg/core"
)

// Hierarchy is the supertype graph over a set of specifications, keyed by
// canonical type name.
type Hierarchy = dag.Graph[*ObjectSpecification]

// BuildHierarchy links each specification to its embedded supertypes.
// Supertypes outside specs are skipped. It also returns the canonical names
// of types that embed themselves, which the graph cannot hold as edges.
func BuildHierarchy(specs []*ObjectSpecification) (*Hierarchy, []string) {
	g := dag.NewGraph[*ObjectSpecification]()
	for _, s := range specs {
		g.AddNode(s.CanonicalName(), s)
	}

	var selfEmbedding []string
	for _, s := range specs {
		for _, st := range s.SupertypeTypes() {
			super := core.CanonicalName(st)
			if _, ok := g.Node(super); !ok {
				continue
			}
			if super == s.CanonicalName() {
				selfEmbedding = append(selfEmbedding, super)
				continue
			}
			_ = g.AddEdge(super, s.CanonicalName())
		}
	}
	return g, selfEmbedding
}
