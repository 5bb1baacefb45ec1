package bookmark

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/leapmeta/pkg/spec"
)

// ErrUnknownType is returned when no specification has the bookmark's name.
var ErrUnknownType = errors.New("unknown logical type")

// Lookup finds specifications by logical type name. The loader implements it.
type Lookup interface {
	LookupByLogicalName(name string) (*spec.ObjectSpecification, bool)
}

// For encodes a bookmark for an instance of the specification's type.
func For(s *spec.ObjectSpecification, id string) (string, error) {
	return Encode(s.LogicalType().Name(), id)
}

// Resolve decodes a bookmark and looks up the specification it names.
func Resolve(l Lookup, s string) (*spec.ObjectSpecification, Bookmark, error) {
	b, err := Decode(s)
	if err != nil {
		return nil, Bookmark{}, err
	}
	found, ok := l.LookupByLogicalName(b.LogicalName)
	if !ok {
		return nil, b, fmt.Errorf("%w: %s", ErrUnknownType, b.LogicalName)
	}
	return found, b, nil
}
