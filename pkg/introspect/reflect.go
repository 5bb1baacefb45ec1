package introspect

import (
	"bytes"
	"fmt"
	"math/big"
	"net/netip"
	"net/url"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/leapstack-labs/leapmeta/pkg/core"
)

// MethodMarkers lets a type attach declarative markers to its methods.
// It is called on a zero value, so it must not depend on state.
type MethodMarkers interface {
	MethodMarkers() map[string]string
}

var (
	methodMarkersType = reflect.TypeFor[MethodMarkers]()
	bytesType         = reflect.TypeFor[[]byte]()
)

// ignoredMethods are never offered as actions or convention methods.
var ignoredMethods = map[string]bool{
	"MethodMarkers": true,
	"String":        true,
	"GoString":      true,
	"Error":         true,
	"MarshalJSON":   true,
	"UnmarshalJSON": true,
	"MarshalText":   true,
	"UnmarshalText": true,
}

// ReflectProvider describes struct and interface types using package reflect.
type ReflectProvider struct {
	capabilities []reflect.Type
	valueTypes   map[reflect.Type]bool
}

// ReflectOption configures a ReflectProvider.
type ReflectOption func(*ReflectProvider)

// WithCapabilities registers interface types reported as capabilities of the
// types that implement them.
func WithCapabilities(types ...reflect.Type) ReflectOption {
	return func(p *ReflectProvider) {
		for _, t := range types {
			if t != nil && t.Kind() == reflect.Interface {
				p.capabilities = append(p.capabilities, t)
			}
		}
	}
}

// WithValueTypes marks struct types as values that are never introspected.
func WithValueTypes(types ...reflect.Type) ReflectOption {
	return func(p *ReflectProvider) {
		for _, t := range types {
			p.valueTypes[core.Normalize(t)] = true
		}
	}
}

// stdValueTypes are standard library structs that are never domain types.
var stdValueTypes = []reflect.Type{
	reflect.TypeFor[time.Time](),
	reflect.TypeFor[time.Location](),
	reflect.TypeFor[url.URL](),
	reflect.TypeFor[url.Userinfo](),
	reflect.TypeFor[netip.Addr](),
	reflect.TypeFor[netip.Prefix](),
	reflect.TypeFor[big.Int](),
	reflect.TypeFor[big.Float](),
	reflect.TypeFor[big.Rat](),
	reflect.TypeFor[regexp.Regexp](),
	reflect.TypeFor[bytes.Buffer](),
	reflect.TypeFor[strings.Builder](),
	reflect.TypeFor[sync.Mutex](),
	reflect.TypeFor[sync.RWMutex](),
	reflect.TypeFor[sync.WaitGroup](),
	reflect.TypeFor[sync.Once](),
}

// NewReflectProvider creates a provider. Common standard library structs,
// such as time.Time, url.URL and sync.Mutex, are always value types.
func NewReflectProvider(opts ...ReflectOption) *ReflectProvider {
	p := &ReflectProvider{valueTypes: make(map[reflect.Type]bool, len(stdValueTypes))}
	for _, t := range stdValueTypes {
		p.valueTypes[t] = true
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Introspectable reports whether Describe accepts the type. Only named
// struct and interface types declared in a package qualify, so builtins
// such as error are rejected.
func (p *ReflectProvider) Introspectable(t reflect.Type) bool {
	t = core.Normalize(t)
	if t == nil || p.valueTypes[t] || t.PkgPath() == "" {
		return false
	}
	return t.Kind() == reflect.Struct || t.Kind() == reflect.Interface
}

// Describe implements Provider.
func (p *ReflectProvider) Describe(t reflect.Type) (*TypeDescriptor, error) {
	t = core.Normalize(t)
	if t == nil {
		return nil, fmt.Errorf("describe: nil type handle")
	}
	if !p.Introspectable(t) {
		return nil, fmt.Errorf("%s: %w", core.CanonicalName(t), ErrNotIntrospectable)
	}

	desc := &TypeDescriptor{
		Type:     t,
		Name:     t.Name(),
		Markers:  Markers{},
		Abstract: t.Kind() == reflect.Interface,
	}

	if t.Kind() == reflect.Struct {
		if err := p.describeFields(t, desc); err != nil {
			return nil, err
		}
	}

	methodMarkers, err := readMethodMarkers(t)
	if err != nil {
		return nil, err
	}
	p.describeMethods(t, desc, methodMarkers)

	for _, c := range p.capabilities {
		if c != t && (t.Implements(c) || reflect.PointerTo(t).Implements(c)) {
			desc.Capabilities = append(desc.Capabilities, c)
		}
	}

	return desc, nil
}

func (p *ReflectProvider) describeFields(t reflect.Type, desc *TypeDescriptor) error {
	index := 0
	for _, sf := range reflect.VisibleFields(t) {
		tag := sf.Tag.Get(TagKey)

		// Blank field carries type-level markers.
		if sf.Name == "_" && len(sf.Index) == 1 {
			m, err := ParseMarkers(tag)
			if err != nil {
				return fmt.Errorf("%s: type markers: %w", core.CanonicalName(t), err)
			}
			for k, v := range m {
				desc.Markers[k] = v
			}
			continue
		}

		if sf.Anonymous {
			et := core.Normalize(sf.Type)
			if len(sf.Index) == 1 && et.Kind() == reflect.Struct && !p.valueTypes[et] {
				desc.Supertypes = append(desc.Supertypes, et)
			}
			continue
		}
		if !sf.IsExported() || sf.Name == "_" {
			continue
		}

		markers, err := ParseMarkers(tag)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", core.CanonicalName(t), sf.Name, err)
		}

		member := MemberDescriptor{
			Name:      sf.Name,
			Feature:   core.FeatureProperty,
			Type:      sf.Type,
			Markers:   markers,
			Index:     index,
			Inherited: len(sf.Index) > 1,
		}
		if elem, ok := collectionElement(sf.Type); ok {
			member.Feature = core.FeatureCollection
			member.Element = elem
		}
		desc.Fields = append(desc.Fields, member)
		index++
	}
	return nil
}

func (p *ReflectProvider) describeMethods(t reflect.Type, desc *TypeDescriptor, markers map[string]Markers) {
	// Interfaces list their own method set; structs use the pointer method
	// set so pointer receivers are included.
	set := t
	receiver := 0
	if t.Kind() != reflect.Interface {
		set = reflect.PointerTo(t)
		receiver = 1
	}

	index := 0
	for i := 0; i < set.NumMethod(); i++ {
		m := set.Method(i)
		if !m.IsExported() || ignoredMethods[m.Name] || p.promotedFromValue(t, m.Name) {
			continue
		}
		mt := m.Type
		md := MethodDescriptor{
			Name:      m.Name,
			Markers:   markers[m.Name],
			Index:     index,
			Inherited: promoted(desc.Supertypes, m.Name),
		}
		if md.Markers == nil {
			md.Markers = Markers{}
		}
		for j := receiver; j < mt.NumIn(); j++ {
			md.Params = append(md.Params, mt.In(j))
		}
		for j := 0; j < mt.NumOut(); j++ {
			md.Results = append(md.Results, mt.Out(j))
		}
		desc.Methods = append(desc.Methods, md)
		index++
	}
}

// readMethodMarkers calls MethodMarkers on a zero value when implemented.
func readMethodMarkers(t reflect.Type) (map[string]Markers, error) {
	if t.Kind() == reflect.Interface || !reflect.PointerTo(t).Implements(methodMarkersType) {
		return nil, nil
	}
	mm, _ := reflect.New(t).Interface().(MethodMarkers)
	raw := mm.MethodMarkers()

	out := make(map[string]Markers, len(raw))
	for name, tag := range raw {
		m, err := ParseMarkers(tag)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", core.CanonicalName(t), name, err)
		}
		out[name] = m
	}
	return out, nil
}

// promotedFromValue reports whether the named method comes from an embedded
// value type, such as Lock from an embedded sync.Mutex.
func (p *ReflectProvider) promotedFromValue(t reflect.Type, name string) bool {
	if t.Kind() != reflect.Struct {
		return false
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.Anonymous || !p.valueTypes[core.Normalize(sf.Type)] {
			continue
		}
		if _, ok := reflect.PointerTo(core.Normalize(sf.Type)).MethodByName(name); ok {
			return true
		}
	}
	return false
}

// promoted reports whether any supertype declares the named method.
func promoted(supertypes []reflect.Type, name string) bool {
	for _, st := range supertypes {
		if _, ok := reflect.PointerTo(st).MethodByName(name); ok {
			return true
		}
	}
	return false
}

// collectionElement returns the element type of slice, array and map fields.
// Byte slices are treated as scalar values.
func collectionElement(t reflect.Type) (reflect.Type, bool) {
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		if t == bytesType {
			return nil, false
		}
		return t.Elem(), true
	case reflect.Map:
		return t.Elem(), true
	default:
		return nil, false
	}
}
