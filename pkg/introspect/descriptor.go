package introspect

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapmeta/pkg/core"
)

// ErrNotIntrospectable is returned for type handles outside the supported set.
var ErrNotIntrospectable = errors.New("type is not introspectable")

// Provider describes types. Implementations must be pure: the same handle
// always yields an equivalent descriptor.
type Provider interface {
	Describe(t reflect.Type) (*TypeDescriptor, error)
}

// TypeDescriptor is the raw shape of one type as seen by the provider.
type TypeDescriptor struct {
	Type         reflect.Type
	Name         string // Simple Go name, e.g. "Invoice"
	Markers      Markers
	Fields       []MemberDescriptor // Properties and collections, declaration order
	Methods      []MethodDescriptor // Exported methods, candidates for actions and conventions
	Supertypes   []reflect.Type
	Capabilities []reflect.Type
	Abstract     bool // Interface types
}

// CanonicalName returns the package-qualified type name.
func (d *TypeDescriptor) CanonicalName() string {
	return core.CanonicalName(d.Type)
}

// Method returns the method with the given name.
func (d *TypeDescriptor) Method(name string) (MethodDescriptor, bool) {
	for _, m := range d.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return MethodDescriptor{}, false
}

// Field returns the field member with the given name.
func (d *TypeDescriptor) Field(name string) (MemberDescriptor, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return MemberDescriptor{}, false
}

// MemberDescriptor describes one property, collection or action.
type MemberDescriptor struct {
	Name      string
	Feature   core.FeatureType
	Type      reflect.Type // Field type, or the first result of an action
	Element   reflect.Type // Element type of a collection
	Params    []ParamDescriptor
	Markers   Markers
	Index     int  // Declaration order within the type
	Inherited bool // Promoted from an embedded supertype
}

// ParamDescriptor describes one action parameter.
type ParamDescriptor struct {
	Index   int
	Name    string
	Type    reflect.Type
	Markers Markers
}

// MethodDescriptor describes one exported method.
type MethodDescriptor struct {
	Name      string
	Params    []reflect.Type // Receiver excluded
	Results   []reflect.Type
	Markers   Markers
	Index     int
	Inherited bool
}

// NumParams returns the number of parameters.
func (m MethodDescriptor) NumParams() int {
	return len(m.Params)
}

// ParamsMatch reports whether the method takes exactly the given parameter types.
func (m MethodDescriptor) ParamsMatch(types []reflect.Type) bool {
	if len(m.Params) != len(types) {
		return false
	}
	for i := range types {
		if m.Params[i] != types[i] {
			return false
		}
	}
	return true
}

// Returns reports whether the method has exactly one result assignable to t.
func (m MethodDescriptor) Returns(t reflect.Type) bool {
	return len(m.Results) == 1 && m.Results[0].AssignableTo(t)
}

// Result returns the first result type, or nil when the method returns nothing.
func (m MethodDescriptor) Result() reflect.Type {
	if len(m.Results) == 0 {
		return nil
	}
	return m.Results[0]
}

// AsAction converts the method into an action member descriptor. Parameter
// names come from the "params" marker, falling back to argN. Markers keyed
// "argN.key" are moved onto the N-th parameter.
func (m MethodDescriptor) AsAction() MemberDescriptor {
	names, _ := m.Markers.List("params")
	params := make([]ParamDescriptor, len(m.Params))
	for i, pt := range m.Params {
		name := ""
		if i < len(names) {
			name = names[i]
		}
		if name == "" {
			name = "arg" + strconv.Itoa(i)
		}
		params[i] = ParamDescriptor{Index: i, Name: name, Type: pt, Markers: Markers{}}
	}

	own := Markers{}
	for k, v := range m.Markers {
		prefix, key, found := strings.Cut(k, ".")
		if found && strings.HasPrefix(prefix, "arg") {
			if i, err := strconv.Atoi(strings.TrimPrefix(prefix, "arg")); err == nil && i >= 0 && i < len(params) {
				params[i].Markers[key] = v
				continue
			}
		}
		own[k] = v
	}

	return MemberDescriptor{
		Name:      m.Name,
		Feature:   core.FeatureAction,
		Type:      m.Result(),
		Params:    params,
		Markers:   own,
		Index:     m.Index,
		Inherited: m.Inherited,
	}
}
