// Package bookmark marshals object identity as "logicalName:instanceID".
//
// The logical name is a LogicalType name and must not contain ':'. The
// instance ID is an opaque URL-safe token without a raw ':'. Decode splits
// on the first ':', so Encode and Decode are exact inverses.
package bookmark

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// Separator joins the logical name and the instance ID.
const Separator = ":"

var (
	// ErrInvalidName is returned for an empty logical name or one containing ':'.
	ErrInvalidName = errors.New("invalid logical type name")

	// ErrInvalidID is returned for an empty or non URL-safe instance ID.
	ErrInvalidID = errors.New("invalid instance id")

	// ErrMalformed is returned by Decode when the separator is missing.
	ErrMalformed = errors.New("malformed bookmark")
)

// Bookmark is a decoded identity.
type Bookmark struct {
	LogicalName string `json:"logical_name" yaml:"logical_name"`
	InstanceID  string `json:"instance_id" yaml:"instance_id"`
}

// String returns the encoded form, or "" when the bookmark is invalid.
func (b Bookmark) String() string {
	s, err := Encode(b.LogicalName, b.InstanceID)
	if err != nil {
		return ""
	}
	return s
}

// Encode joins a logical name and an instance ID.
func Encode(name, id string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	if err := checkID(id); err != nil {
		return "", err
	}
	return name + Separator + id, nil
}

// Decode splits an encoded bookmark on the first ':'.
func Decode(s string) (Bookmark, error) {
	name, id, found := strings.Cut(s, Separator)
	if !found {
		return Bookmark{}, fmt.Errorf("%w: %q has no separator", ErrMalformed, s)
	}
	if err := checkName(name); err != nil {
		return Bookmark{}, err
	}
	if err := checkID(id); err != nil {
		return Bookmark{}, err
	}
	return Bookmark{LogicalName: name, InstanceID: id}, nil
}

// NewInstanceID builds a deterministic opaque ID from key parts, for
// example the primary key columns of a row.
func NewInstanceID(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = url.PathEscape(p)
	}
	return base64.RawURLEncoding.EncodeToString([]byte(strings.Join(escaped, "/")))
}

// InstanceParts reverses NewInstanceID.
func InstanceParts(id string) ([]string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidID, err)
	}
	parts := strings.Split(string(raw), "/")
	for i, p := range parts {
		if parts[i], err = url.PathUnescape(p); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidID, err)
		}
	}
	return parts, nil
}

// NewTransientID returns a random ID for objects that are not persisted yet.
func NewTransientID() string {
	return uuid.NewString()
}

func checkName(name string) error {
	if name == "" || strings.Contains(name, Separator) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// checkID accepts unreserved URL characters plus percent escapes.
func checkID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty", ErrInvalidID)
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		case c == '-' || c == '_' || c == '.' || c == '~':
		case c == '%' && i+2 < len(id) && isHex(id[i+1]) && isHex(id[i+2]):
			i += 2
		default:
			return fmt.Errorf("%w: %q contains %q", ErrInvalidID, id, c)
		}
	}
	return nil
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}
