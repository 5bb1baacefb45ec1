// Package spec holds the metamodel graph nodes: one ObjectSpecification per
// type, owning its ObjectMembers and their Parameters. Every node embeds a
// facet.Holder.
//
// Cross references between specifications (supertypes, capabilities,
// property and element types) are stored as type handles and resolved late
// through a Resolver, the loader's arena. Mutually referencing types
// therefore never hold direct pointers to each other.
package spec
