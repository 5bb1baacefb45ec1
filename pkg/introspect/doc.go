// Package introspect is the boundary between leapmeta and Go's reflection
// facility. A Provider turns a type handle into a TypeDescriptor listing the
// declared members, their signatures and their declarative markers.
//
// # Markers
//
// Declarative markers are read from `meta` struct tags:
//
//	type Invoice struct {
//		_        struct{} `meta:"named=Sales Invoice,logicalType=app.Invoice"`
//		Number   string   `meta:"maxLength=20,order=1"`
//		Customer *Customer `meta:"parent"`
//	}
//
// The blank field carries type-level markers. Methods cannot carry tags, so a
// type may describe its actions by implementing MethodMarkers:
//
//	func (Invoice) MethodMarkers() map[string]string {
//		return map[string]string{"Approve": "semantics=idempotent,params=approver"}
//	}
//
// Values are comma separated; use `\,` for a literal comma. Keys without a
// value are flags.
package introspect
