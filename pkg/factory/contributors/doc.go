// Package contributors provides the built-in facet contributors.
//
// Each contributor reads one kind of evidence. Markers produce High
// precedence facets, naming conventions Default, facets derived from the
// class Low, and configuration defaults Fallback. Builtin returns them in
// registry order.
package contributors
