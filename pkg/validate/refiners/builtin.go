package refiners

import "github.com/leapstack-labs/leapmeta/pkg/validate"

// Builtin returns the built-in refiners in registration order.
func Builtin() []validate.Refiner {
	return []validate.Refiner{
		LogicalTypeUniqueness,
		AmbiguousParent,
		OrphanedMethod,
		MarkerConventionOverlap,
		FacetConflict,
		SupertypeCycle,
	}
}
