package spec

import (
	"reflect"
	"slices"

	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/facet"
	"github.com/leapstack-labs/leapmeta/pkg/introspect"
)

// ObjectMember is a property, collection or action of a declaring specification.
type ObjectMember struct {
	*facet.Holder

	owner      reflect.Type
	resolver   Resolver
	descriptor introspect.MemberDescriptor
	params     []*Parameter
}

// NewMember creates a member of the given owner specification. Actions get
// one Parameter per declared parameter.
func NewMember(owner *ObjectSpecification, desc introspect.MemberDescriptor) *ObjectMember {
	className := owner.CanonicalName()
	m := &ObjectMember{
		Holder:     facet.NewHolder(core.MemberID(className, desc.Name), desc.Feature),
		owner:      owner.typ,
		resolver:   owner.resolver,
		descriptor: desc,
	}
	for _, p := range desc.Params {
		m.params = append(m.params, &Parameter{
			Holder:     facet.NewHolder(core.ParamID(className, desc.Name, p.Index), core.FeatureParameter),
			action:     m,
			descriptor: p,
		})
	}
	return m
}

// Name returns the Go member name.
func (m *ObjectMember) Name() string { return m.descriptor.Name }

// Feature returns property, collection or action.
func (m *ObjectMember) Feature() core.FeatureType { return m.descriptor.Feature }

// Descriptor returns the raw member descriptor.
func (m *ObjectMember) Descriptor() introspect.MemberDescriptor { return m.descriptor }

// DisplayName returns the Named facet value, falling back to the Go name.
func (m *ObjectMember) DisplayName() string {
	if name, ok := facet.Lookup[string](m.Holder, facet.Named); ok && name != "" {
		return name
	}
	return m.descriptor.Name
}

// Parameters returns the action parameters in order.
func (m *ObjectMember) Parameters() []*Parameter {
	return slices.Clone(m.params)
}

// Parameter returns the i-th parameter.
func (m *ObjectMember) Parameter(i int) (*Parameter, bool) {
	if i < 0 || i >= len(m.params) {
		return nil, false
	}
	return m.params[i], true
}

// DeclaringSpec resolves the owning specification.
func (m *ObjectMember) DeclaringSpec() (*ObjectSpecification, bool) {
	return m.resolver.Specification(m.owner)
}

// ElementType returns the TypeOf facet value, or the declared type.
func (m *ObjectMember) ElementType() reflect.Type {
	if t, ok := facet.Lookup[reflect.Type](m.Holder, facet.TypeOf); ok {
		return t
	}
	if m.descriptor.Element != nil {
		return core.Normalize(m.descriptor.Element)
	}
	return core.Normalize(m.descriptor.Type)
}

// ElementSpec resolves the specification of the element type, if known.
func (m *ObjectMember) ElementSpec() (*ObjectSpecification, bool) {
	t := m.ElementType()
	if t == nil {
		return nil, false
	}
	return m.resolver.Specification(t)
}

// Parameter is one parameter of an action.
type Parameter struct {
	*facet.Holder

	action     *ObjectMember
	descriptor introspect.ParamDescriptor
}

// Index returns the parameter position.
func (p *Parameter) Index() int { return p.descriptor.Index }

// Name returns the parameter name from markers or argN.
func (p *Parameter) Name() string { return p.descriptor.Name }

// Type returns the declared parameter type.
func (p *Parameter) Type() reflect.Type { return p.descriptor.Type }

// Descriptor returns the raw parameter descriptor.
func (p *Parameter) Descriptor() introspect.ParamDescriptor { return p.descriptor }

// Action returns the owning action.
func (p *Parameter) Action() *ObjectMember { return p.action }
