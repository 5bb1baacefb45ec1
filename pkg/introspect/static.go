package introspect

import (
	"fmt"
	"reflect"

	"github.com/leapstack-labs/leapmeta/pkg/core"
)

// StaticProvider serves hand-built descriptors. It is useful when type
// shapes come from somewhere other than reflection, and in tests.
type StaticProvider struct {
	descriptors map[reflect.Type]*TypeDescriptor
}

// NewStaticProvider creates a provider serving the given descriptors.
func NewStaticProvider(descs ...*TypeDescriptor) *StaticProvider {
	p := &StaticProvider{descriptors: make(map[reflect.Type]*TypeDescriptor, len(descs))}
	for _, d := range descs {
		p.Add(d)
	}
	return p
}

// Add registers or replaces a descriptor.
func (p *StaticProvider) Add(d *TypeDescriptor) {
	d.Type = core.Normalize(d.Type)
	if d.Markers == nil {
		d.Markers = Markers{}
	}
	p.descriptors[d.Type] = d
}

// Describe implements Provider.
func (p *StaticProvider) Describe(t reflect.Type) (*TypeDescriptor, error) {
	t = core.Normalize(t)
	if t == nil {
		return nil, fmt.Errorf("describe: nil type handle")
	}
	d, ok := p.descriptors[t]
	if !ok {
		return nil, fmt.Errorf("%s: %w", core.CanonicalName(t), ErrNotIntrospectable)
	}
	return d, nil
}
