package contributors

import "github.com/leapstack-labs/leapmeta/pkg/factory"

// Builtin returns the built-in contributors in registry order. Within one
// precedence level, earlier contributors win conflicts.
func Builtin() []factory.Contributor {
	return []factory.Contributor{
		NamedMarker,
		NamedConvention,
		DescribedAsMarker,
		LogicalType,
		Nature,
		Immutable,
		NavigableParent,
		Paged,
		MemberOrder,
		ImmutableMembers,
		Hidden,
		Disabled,
		Mandatory,
		MaxLength,
		Choices,
		Default,
		Validate,
		ActionSemantics,
		TypeOf,
		ConfigDefaults,
	}
}
