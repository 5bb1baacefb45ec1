// Package facet provides the smallest attachable unit of metamodel behavior
// and the holder that resolves competing contributions.
//
// # Precedence
//
// Every facet carries a Precedence drawn from an ordered set:
//
//	Fallback < Low < Default < High
//
// Holder.AddFacet resolves a candidate against the facet of the same kind
// already stored:
//   - strictly higher precedence replaces the stored facet
//   - strictly lower precedence is discarded
//   - equal precedence and semantically equal values are a redundant no-op
//   - equal precedence and different values keep the first-registered facet
//     and record a Conflict for the validation pass
//
// Fallback facets are produced by default-producing contributors and are
// displaced by any real contribution. Use Facet.IsFallback or
// Holder.IsExplicit to tell "configured" from "defaulted".
//
// # Reading facets
//
//	name, ok := facet.Lookup[string](holder, facet.Named)
//	if f, ok := holder.Facet(facet.MaxLength); ok && !f.IsFallback() { ... }
package facet
