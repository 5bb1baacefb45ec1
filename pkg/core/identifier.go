package core

import (
	"cmp"
	"fmt"
)

// NoParam marks an Identifier that does not address a parameter.
const NoParam = -1

// Identifier is an immutable key for a class, a member of a class, or a
// parameter of a member. It never carries display text.
type Identifier struct {
	ClassName  string
	MemberName string
	ParamIndex int
}

// ClassID returns the identifier of a class.
func ClassID(className string) Identifier {
	return Identifier{ClassName: className, ParamIndex: NoParam}
}

// MemberID returns the identifier of a member of a class.
func MemberID(className, memberName string) Identifier {
	return Identifier{ClassName: className, MemberName: memberName, ParamIndex: NoParam}
}

// ParamID returns the identifier of the index-th parameter of a member.
func ParamID(className, memberName string, index int) Identifier {
	return Identifier{ClassName: className, MemberName: memberName, ParamIndex: index}
}

// IsClass reports whether the identifier addresses a class.
func (id Identifier) IsClass() bool {
	return id.MemberName == ""
}

// IsParam reports whether the identifier addresses a parameter.
func (id Identifier) IsParam() bool {
	return id.ParamIndex > NoParam
}

// Member returns the identifier of the member owning this parameter,
// or id itself when it does not address a parameter.
func (id Identifier) Member() Identifier {
	return MemberID(id.ClassName, id.MemberName)
}

// Compare orders identifiers by class name, member name, then parameter index.
func (id Identifier) Compare(other Identifier) int {
	if c := cmp.Compare(id.ClassName, other.ClassName); c != 0 {
		return c
	}
	if c := cmp.Compare(id.MemberName, other.MemberName); c != 0 {
		return c
	}
	return cmp.Compare(id.ParamIndex, other.ParamIndex)
}

// String renders the identifier as Class, Class#member or Class#member[i].
func (id Identifier) String() string {
	switch {
	case id.IsClass():
		return id.ClassName
	case id.IsParam():
		return fmt.Sprintf("%s#%s[%d]", id.ClassName, id.MemberName, id.ParamIndex)
	default:
		return id.ClassName + "#" + id.MemberName
	}
}
