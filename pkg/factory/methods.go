package factory

import (
	"strings"

	"github.com/leapstack-labs/leapmeta/pkg/introspect"
)

// MethodPool tracks the methods of one type that have not yet been consumed
// by a contributor. Removed methods are no longer offered as actions.
type MethodPool struct {
	methods []introspect.MethodDescriptor
	removed map[string]bool
}

// NewMethodPool creates a pool over the given methods.
func NewMethodPool(methods []introspect.MethodDescriptor) *MethodPool {
	return &MethodPool{
		methods: methods,
		removed: make(map[string]bool),
	}
}

// Find returns the named method if it is still in the pool.
func (p *MethodPool) Find(name string) (introspect.MethodDescriptor, bool) {
	if p == nil || p.removed[name] {
		return introspect.MethodDescriptor{}, false
	}
	for _, m := range p.methods {
		if m.Name == name {
			return m, true
		}
	}
	return introspect.MethodDescriptor{}, false
}

// Remove withdraws the named method from further consideration.
func (p *MethodPool) Remove(name string) {
	if p != nil {
		p.removed[name] = true
	}
}

// Removed reports whether the named method has been consumed.
func (p *MethodPool) Removed(name string) bool {
	return p != nil && p.removed[name]
}

// Remaining returns the methods still in the pool, in declaration order.
func (p *MethodPool) Remaining() []introspect.MethodDescriptor {
	if p == nil {
		return nil
	}
	var out []introspect.MethodDescriptor
	for _, m := range p.methods {
		if !p.removed[m.Name] {
			out = append(out, m)
		}
	}
	return out
}

// WithPrefix returns the remaining methods whose names start with any prefix
// followed by an upper-case letter or digit.
func (p *MethodPool) WithPrefix(prefixes []string) []introspect.MethodDescriptor {
	var out []introspect.MethodDescriptor
	for _, m := range p.Remaining() {
		if HasConventionPrefix(m.Name, prefixes) {
			out = append(out, m)
		}
	}
	return out
}

// HasConventionPrefix reports whether name is prefix+Suffix for any prefix,
// where Suffix is non-empty and does not start with a lower-case letter.
func HasConventionPrefix(name string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if rest, ok := strings.CutPrefix(name, prefix); ok && rest != "" {
			if c := rest[0]; c < 'a' || c > 'z' {
				return true
			}
		}
	}
	return false
}
