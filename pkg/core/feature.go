package core

import "strings"

// FeatureType is the closed set of things a facet can be attached to.
type FeatureType int

// Feature types.
const (
	FeatureObject FeatureType = iota
	FeatureProperty
	FeatureCollection
	FeatureAction
	FeatureParameter
)

// String returns the lower-case name of the feature type.
func (f FeatureType) String() string {
	switch f {
	case FeatureObject:
		return "object"
	case FeatureProperty:
		return "property"
	case FeatureCollection:
		return "collection"
	case FeatureAction:
		return "action"
	case FeatureParameter:
		return "parameter"
	default:
		return "unknown"
	}
}

// IsMember reports whether f is a property, collection or action.
func (f FeatureType) IsMember() bool {
	return f == FeatureProperty || f == FeatureCollection || f == FeatureAction
}

// Phase returns the construction pass in which features of this type are processed.
func (f FeatureType) Phase() Phase {
	switch f {
	case FeatureObject:
		return PhaseClass
	case FeatureParameter:
		return PhaseParameter
	default:
		return PhaseMember
	}
}

// FeatureSet is a selector over feature types that contributors test against.
type FeatureSet uint8

// Common selectors.
const (
	FeaturesNone FeatureSet = 0
	FeaturesAll  FeatureSet = 1<<FeatureObject | 1<<FeatureProperty | 1<<FeatureCollection |
		1<<FeatureAction | 1<<FeatureParameter
	FeaturesMembers      FeatureSet = 1<<FeatureProperty | 1<<FeatureCollection | 1<<FeatureAction
	FeaturesAssociations FeatureSet = 1<<FeatureProperty | 1<<FeatureCollection
)

// Features builds a selector from the given feature types.
func Features(types ...FeatureType) FeatureSet {
	var s FeatureSet
	for _, t := range types {
		s |= 1 << t
	}
	return s
}

// Has reports whether the selector matches f.
func (s FeatureSet) Has(f FeatureType) bool {
	return s&(1<<f) != 0
}

// Types lists the selected feature types in declaration order.
func (s FeatureSet) Types() []FeatureType {
	var out []FeatureType
	for f := FeatureObject; f <= FeatureParameter; f++ {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// String renders the selector as "object|property|...".
func (s FeatureSet) String() string {
	if s == FeaturesAll {
		return "all"
	}
	types := s.Types()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, "|")
}

// Phase is one pass of the construction protocol.
type Phase int

// Construction phases, in the order they run for a type.
const (
	PhaseClass Phase = iota
	PhaseMember
	PhaseParameter
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseClass:
		return "class"
	case PhaseMember:
		return "member"
	case PhaseParameter:
		return "parameter"
	default:
		return "unknown"
	}
}
