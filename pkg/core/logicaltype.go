package core

import (
	"hash/maphash"
	"reflect"
	"strings"
)

// LogicalType pairs a logical name with the Go type it stands for.
//
// Equality, hashing and map keys use the type handle only. The logical name
// is informational: two LogicalType values for the same type are equal even
// when their names differ. Global uniqueness of logical names is checked by
// validation, not enforced here.
type LogicalType struct {
	name string
	typ  reflect.Type
}

// NewLogicalType creates a LogicalType. Pointer types are normalized to
// their element type.
func NewLogicalType(name string, t reflect.Type) LogicalType {
	return LogicalType{name: name, typ: Normalize(t)}
}

// Name returns the logical name. Falls back to the canonical type name when
// no logical name was assigned.
func (l LogicalType) Name() string {
	if l.name != "" {
		return l.name
	}
	return CanonicalName(l.typ)
}

// Type returns the corresponding type handle.
func (l LogicalType) Type() reflect.Type {
	return l.typ
}

// IsZero reports whether the value has no type handle.
func (l LogicalType) IsZero() bool {
	return l.typ == nil
}

// Equal reports whether both values refer to the same type handle.
func (l LogicalType) Equal(other LogicalType) bool {
	return l.typ == other.typ
}

// Hash returns a hash of the type handle, stable for the given seed.
// Distinct types sharing a canonical name hash apart.
func (l LogicalType) Hash(seed maphash.Seed) uint64 {
	return maphash.Comparable(seed, l.typ)
}

// Key returns the comparable map key for this logical type.
func (l LogicalType) Key() reflect.Type {
	return l.typ
}

// Compare orders by canonical type name.
func (l LogicalType) Compare(other LogicalType) int {
	return strings.Compare(CanonicalName(l.typ), CanonicalName(other.typ))
}

// String returns "name (pkg.Type)".
func (l LogicalType) String() string {
	return l.Name() + " (" + CanonicalName(l.typ) + ")"
}

// Normalize strips pointer indirections from t.
func Normalize(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// CanonicalName returns "pkgpath.Name" for named types and t.String()
// otherwise. A nil type yields "<nil>".
func CanonicalName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	t = Normalize(t)
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}
