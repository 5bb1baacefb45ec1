package facet

// =============================================================================
// Facet kinds
// =============================================================================

// Built-in facet kinds.
const (
	Named           Kind = "named"            // string
	DescribedAs     Kind = "described_as"     // string
	LogicalTypeName Kind = "logical_type"     // string
	ObjectNature    Kind = "nature"           // Nature
	Immutable       Kind = "immutable"        // ImmutableValue
	NavigableParent Kind = "navigable_parent" // ParentValue
	Mandatory       Kind = "mandatory"        // bool
	MaxLength       Kind = "max_length"       // int, 0 means unlimited
	Hidden          Kind = "hidden"           // HiddenValue
	Disabled        Kind = "disabled"         // DisabledValue
	Choices         Kind = "choices"          // ChoicesValue
	Default         Kind = "default"          // DefaultValue
	Validate        Kind = "validate"         // ValidateValue
	ActionSemantics Kind = "semantics"        // Semantics
	TypeOf          Kind = "type_of"          // reflect.Type
	Paged           Kind = "paged"            // int
	MemberOrder     Kind = "member_order"     // int
)

// Nature classifies what a type is for.
type Nature string

// Object natures.
const (
	NatureEntity    Nature = "entity"
	NatureViewModel Nature = "viewmodel"
	NatureService   Nature = "service"
	NatureValue     Nature = "value"
)

// ParseNature converts a string to a Nature.
func ParseNature(s string) (Nature, bool) {
	switch n := Nature(s); n {
	case NatureEntity, NatureViewModel, NatureService, NatureValue:
		return n, true
	default:
		return "", false
	}
}

// Semantics describes the side effects of invoking an action.
type Semantics string

// Action semantics.
const (
	SemanticsSafe          Semantics = "safe"
	SemanticsIdempotent    Semantics = "idempotent"
	SemanticsNonIdempotent Semantics = "non-idempotent"
)

// ParseSemantics converts a string to Semantics.
func ParseSemantics(s string) (Semantics, bool) {
	switch v := Semantics(s); v {
	case SemanticsSafe, SemanticsIdempotent, SemanticsNonIdempotent:
		return v, true
	default:
		return "", false
	}
}

// ImmutableValue marks a whole type as read-only.
type ImmutableValue struct {
	Reason string
}

// ParentValue names the field that navigates to the parent object.
// Candidates lists every field that offered itself, local first.
type ParentValue struct {
	Field      string
	Candidates []string
	Local      int // Number of candidates declared directly on the type
}

// Ambiguous reports whether more than one equally-ranked candidate exists.
// Inherited candidates only count when no local candidate exists.
func (p ParentValue) Ambiguous() bool {
	if p.Local > 0 {
		return p.Local > 1
	}
	return len(p.Candidates) > 1
}

// HiddenValue hides a member, either always or through a convention method.
type HiddenValue struct {
	Always bool
	Method string
}

// DisabledValue disables a member, either always or through a convention method.
type DisabledValue struct {
	Always bool
	Reason string
	Method string
}

// ChoicesValue offers a closed set of values, either listed or computed.
type ChoicesValue struct {
	Values []string
	Method string
}

// DefaultValue supplies a default, either literal or computed.
type DefaultValue struct {
	Value  string
	Method string
}

// ValidateValue names the convention method that validates proposed values.
type ValidateValue struct {
	Method string
}
