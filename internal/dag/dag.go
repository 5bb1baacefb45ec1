// Package dag provides the type hierarchy graph used for supertype ordering
// and cycle detection. Nodes are keyed by canonical type name; an edge runs
// from a supertype to the type that embeds it.
package dag

import (
	"fmt"
	"slices"
)

// Node is one type in the hierarchy.
type Node[T any] struct {
	ID   string
	Data T
}

// Graph is a directed graph of types. It tolerates cycles; HasCycle and
// TopologicalSort report them.
type Graph[T any] struct {
	nodes    map[string]*Node[T]
	subtypes map[string][]string // supertype -> embedding types
	supers   map[string][]string // type -> embedded supertypes
}

// NewGraph creates an empty graph.
func NewGraph[T any]() *Graph[T] {
	g := &Graph[T]{}
	g.Clear()
	return g
}

// Clear removes all nodes and edges.
func (g *Graph[T]) Clear() {
	g.nodes = make(map[string]*Node[T])
	g.subtypes = make(map[string][]string)
	g.supers = make(map[string][]string)
}

// AddNode adds a node, replacing the data of an existing one.
func (g *Graph[T]) AddNode(id string, data T) {
	if n, ok := g.nodes[id]; ok {
		n.Data = data
		return
	}
	g.nodes[id] = &Node[T]{ID: id, Data: data}
}

// AddEdge records that sub embeds super. Both nodes must exist. A type that
// embeds itself is reported as a self-loop error and no edge is added.
func (g *Graph[T]) AddEdge(super, sub string) error {
	if _, ok := g.nodes[super]; !ok {
		return fmt.Errorf("supertype %q is not in the graph", super)
	}
	if _, ok := g.nodes[sub]; !ok {
		return fmt.Errorf("type %q is not in the graph", sub)
	}
	if super == sub {
		return fmt.Errorf("self-loop detected: %s", super)
	}
	if !slices.Contains(g.subtypes[super], sub) {
		g.subtypes[super] = append(g.subtypes[super], sub)
	}
	if !slices.Contains(g.supers[sub], super) {
		g.supers[sub] = append(g.supers[sub], super)
	}
	return nil
}

// Node returns a node by ID.
func (g *Graph[T]) Node(id string) (*Node[T], bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Supertypes returns the direct supertypes of a type.
func (g *Graph[T]) Supertypes(id string) []string {
	return slices.Clone(g.supers[id])
}

// Subtypes returns the types that directly embed id.
func (g *Graph[T]) Subtypes(id string) []string {
	return slices.Clone(g.subtypes[id])
}

// Nodes returns every node sorted by ID.
func (g *Graph[T]) Nodes() []*Node[T] {
	out := make([]*Node[T], 0, len(g.nodes))
	for _, id := range g.sortedIDs() {
		out = append(out, g.nodes[id])
	}
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph[T]) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of supertype edges.
func (g *Graph[T]) EdgeCount() int {
	count := 0
	for _, subs := range g.subtypes {
		count += len(subs)
	}
	return count
}

// HasCycle reports whether the graph contains a cycle and returns one cycle
// path, first node repeated at the end. Nodes are visited in ID order so the
// reported path is deterministic.
func (g *Graph[T]) HasCycle() (bool, []string) {
	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	var stack []string
	var cycle []string

	var dfs func(id string) bool
	dfs = func(id string) bool {
		visited[id] = true
		onStack[id] = true
		stack = append(stack, id)

		for _, next := range g.subtypes[id] {
			if onStack[next] {
				start := slices.Index(stack, next)
				cycle = append(slices.Clone(stack[start:]), next)
				return true
			}
			if !visited[next] && dfs(next) {
				return true
			}
		}

		stack = stack[:len(stack)-1]
		onStack[id] = false
		return false
	}

	for _, id := range g.sortedIDs() {
		if !visited[id] && dfs(id) {
			return true, cycle
		}
	}
	return false, nil
}

// TopologicalSort returns IDs with supertypes before the types embedding
// them, ties broken by ID.
func (g *Graph[T]) TopologicalSort() ([]string, error) {
	if cyclic, path := g.HasCycle(); cyclic {
		return nil, fmt.Errorf("cycle detected: %v", path)
	}

	visited := make(map[string]bool)
	result := make([]string, 0, len(g.nodes))

	var visit func(id string)
	visit = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true
		supers := slices.Clone(g.supers[id])
		slices.Sort(supers)
		for _, s := range supers {
			visit(s)
		}
		result = append(result, id)
	}

	for _, id := range g.sortedIDs() {
		visit(id)
	}
	return result, nil
}

// Depths groups IDs by hierarchy depth. Depth 0 holds types that embed no
// supertype.
func (g *Graph[T]) Depths() ([][]string, error) {
	if cyclic, path := g.HasCycle(); cyclic {
		return nil, fmt.Errorf("cycle detected: %v", path)
	}

	depth := make(map[string]int, len(g.nodes))
	var depthOf func(id string) int
	depthOf = func(id string) int {
		if d, ok := depth[id]; ok {
			return d
		}
		d := 0
		for _, s := range g.supers[id] {
			d = max(d, depthOf(s)+1)
		}
		depth[id] = d
		return d
	}

	var levels [][]string
	for _, id := range g.sortedIDs() {
		d := depthOf(id)
		for len(levels) <= d {
			levels = append(levels, nil)
		}
		levels[d] = append(levels[d], id)
	}
	return levels, nil
}

// Ancestors returns every direct or indirect supertype of id, sorted.
func (g *Graph[T]) Ancestors(id string) []string {
	return g.reach(id, g.supers)
}

// Descendants returns every type that directly or indirectly embeds id, sorted.
func (g *Graph[T]) Descendants(id string) []string {
	return g.reach(id, g.subtypes)
}

func (g *Graph[T]) reach(id string, edges map[string][]string) []string {
	seen := make(map[string]bool)
	var walk func(string)
	walk = func(cur string) {
		for _, next := range edges[cur] {
			if !seen[next] {
				seen[next] = true
				walk(next)
			}
		}
	}
	walk(id)
	delete(seen, id)

	out := make([]string, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// Roots returns the types that embed no supertype, sorted.
func (g *Graph[T]) Roots() []string {
	var roots []string
	for _, id := range g.sortedIDs() {
		if len(g.supers[id]) == 0 {
			roots = append(roots, id)
		}
	}
	return roots
}

func (g *Graph[T]) sortedIDs() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
