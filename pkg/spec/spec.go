package spec

import (
	"cmp"
	"reflect"
	"slices"
	"sync/atomic"

	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/facet"
	"github.com/leapstack-labs/leapmeta/pkg/introspect"
)

// Resolver looks up specifications by type handle. Lookups never trigger
// construction; a type still being built is returned as-is.
type Resolver interface {
	Specification(t reflect.Type) (*ObjectSpecification, bool)
}

// State is the lifecycle state of a specification.
type State int32

// Lifecycle states.
const (
	// StateIntrospecting marks a placeholder whose construction passes are running.
	StateIntrospecting State = iota
	// StateBuilt marks a specification whose passes have all completed.
	StateBuilt
)

// String returns the state name.
func (s State) String() string {
	if s == StateBuilt {
		return "built"
	}
	return "introspecting"
}

// ObjectSpecification is the metamodel node for one type.
type ObjectSpecification struct {
	*facet.Holder

	typ        reflect.Type
	descriptor *introspect.TypeDescriptor
	resolver   Resolver
	state      atomic.Int32

	members []*ObjectMember
	orphans []string
}

// New creates a placeholder specification for a described type.
func New(desc *introspect.TypeDescriptor, resolver Resolver) *ObjectSpecification {
	return &ObjectSpecification{
		Holder:     facet.NewHolder(core.ClassID(core.CanonicalName(desc.Type)), core.FeatureObject),
		typ:        desc.Type,
		descriptor: desc,
		resolver:   resolver,
	}
}

// Type returns the corresponding type handle.
func (s *ObjectSpecification) Type() reflect.Type { return s.typ }

// Descriptor returns the raw descriptor the specification was built from.
func (s *ObjectSpecification) Descriptor() *introspect.TypeDescriptor { return s.descriptor }

// CanonicalName returns the package-qualified Go type name.
func (s *ObjectSpecification) CanonicalName() string { return core.CanonicalName(s.typ) }

// LogicalType returns the (logical name, type) identity of the specification.
// The name comes from the LogicalTypeName facet when present.
func (s *ObjectSpecification) LogicalType() core.LogicalType {
	name, _ := facet.Lookup[string](s.Holder, facet.LogicalTypeName)
	return core.NewLogicalType(name, s.typ)
}

// Name returns the display name, falling back to the Go type name.
func (s *ObjectSpecification) Name() string {
	if name, ok := facet.Lookup[string](s.Holder, facet.Named); ok && name != "" {
		return name
	}
	return s.descriptor.Name
}

// Nature returns the object nature, NatureEntity when none was attached.
func (s *ObjectSpecification) Nature() facet.Nature {
	if n, ok := facet.Lookup[facet.Nature](s.Holder, facet.ObjectNature); ok {
		return n
	}
	return facet.NatureEntity
}

// IsService reports whether the type is infrastructure rather than domain.
func (s *ObjectSpecification) IsService() bool {
	return s.Nature() == facet.NatureService
}

// IsAbstract reports whether the type is an interface.
func (s *ObjectSpecification) IsAbstract() bool { return s.descriptor.Abstract }

// State returns the lifecycle state.
func (s *ObjectSpecification) State() State { return State(s.state.Load()) }

// IsBuilt reports whether all construction passes have completed.
func (s *ObjectSpecification) IsBuilt() bool { return s.State() == StateBuilt }

// MarkBuilt records the completion of all construction passes.
func (s *ObjectSpecification) MarkBuilt() { s.state.Store(int32(StateBuilt)) }

// AddMember appends a member. Only the construction protocol calls this.
func (s *ObjectSpecification) AddMember(m *ObjectMember) {
	s.members = append(s.members, m)
}

// SortMembers orders members by explicit MemberOrder first, then fields
// before actions, then declaration index, then name.
func (s *ObjectSpecification) SortMembers() {
	slices.SortStableFunc(s.members, func(a, b *ObjectMember) int {
		oa, okA := facet.Lookup[int](a.Holder, facet.MemberOrder)
		ob, okB := facet.Lookup[int](b.Holder, facet.MemberOrder)
		switch {
		case okA && okB && oa != ob:
			return cmp.Compare(oa, ob)
		case okA && !okB:
			return -1
		case okB && !okA:
			return 1
		}
		if c := cmp.Compare(group(a), group(b)); c != 0 {
			return c
		}
		if c := cmp.Compare(a.descriptor.Index, b.descriptor.Index); c != 0 {
			return c
		}
		return cmp.Compare(a.Name(), b.Name())
	})
}

// group puts fields, which share one declaration index space, before actions.
func group(m *ObjectMember) int {
	if m.Feature() == core.FeatureAction {
		return 1
	}
	return 0
}

// Members returns all members in resolved order.
func (s *ObjectSpecification) Members() []*ObjectMember {
	return slices.Clone(s.members)
}

// Member returns the member with the given name.
func (s *ObjectSpecification) Member(name string) (*ObjectMember, bool) {
	for _, m := range s.members {
		if m.Name() == name {
			return m, true
		}
	}
	return nil, false
}

// Properties returns the property members.
func (s *ObjectSpecification) Properties() []*ObjectMember {
	return s.membersOf(core.FeatureProperty)
}

// Collections returns the collection members.
func (s *ObjectSpecification) Collections() []*ObjectMember {
	return s.membersOf(core.FeatureCollection)
}

// Actions returns the action members.
func (s *ObjectSpecification) Actions() []*ObjectMember {
	return s.membersOf(core.FeatureAction)
}

func (s *ObjectSpecification) membersOf(f core.FeatureType) []*ObjectMember {
	var out []*ObjectMember
	for _, m := range s.members {
		if m.Feature() == f {
			out = append(out, m)
		}
	}
	return out
}

// SupertypeTypes returns the type handles of embedded supertypes.
func (s *ObjectSpecification) SupertypeTypes() []reflect.Type {
	return slices.Clone(s.descriptor.Supertypes)
}

// Supertypes resolves the supertype specifications known to the arena.
func (s *ObjectSpecification) Supertypes() []*ObjectSpecification {
	return s.resolveAll(s.descriptor.Supertypes)
}

// CapabilityTypes returns the type handles of implemented capabilities.
func (s *ObjectSpecification) CapabilityTypes() []reflect.Type {
	return slices.Clone(s.descriptor.Capabilities)
}

// Capabilities resolves the capability specifications known to the arena.
func (s *ObjectSpecification) Capabilities() []*ObjectSpecification {
	return s.resolveAll(s.descriptor.Capabilities)
}

func (s *ObjectSpecification) resolveAll(types []reflect.Type) []*ObjectSpecification {
	var out []*ObjectSpecification
	for _, t := range types {
		if r, ok := s.resolver.Specification(t); ok {
			out = append(out, r)
		}
	}
	return out
}

// SetOrphans records convention methods that matched no member.
func (s *ObjectSpecification) SetOrphans(names []string) {
	s.orphans = slices.Clone(names)
}

// Orphans returns convention methods that matched no member.
func (s *ObjectSpecification) Orphans() []string {
	return slices.Clone(s.orphans)
}

// String returns the logical type rendering.
func (s *ObjectSpecification) String() string {
	return s.LogicalType().String()
}
