package facet

import "strings"

// Precedence ranks competing contributions for the same facet kind.
type Precedence int

// Precedence levels, lowest first.
const (
	// PrecedenceFallback marks a defaulted facet that any real contribution displaces.
	PrecedenceFallback Precedence = iota
	// PrecedenceLow is used for facets derived from other facets (e.g. class-level).
	PrecedenceLow
	// PrecedenceDefault is used for naming conventions and inferred facets.
	PrecedenceDefault
	// PrecedenceHigh is used for explicit declarative markers.
	PrecedenceHigh
)

// String returns the lower-case name of the precedence.
func (p Precedence) String() string {
	switch p {
	case PrecedenceFallback:
		return "fallback"
	case PrecedenceLow:
		return "low"
	case PrecedenceDefault:
		return "default"
	case PrecedenceHigh:
		return "high"
	default:
		return "unknown"
	}
}

// ParsePrecedence converts a string to a Precedence value.
func ParsePrecedence(s string) (Precedence, bool) {
	switch strings.ToLower(s) {
	case "fallback":
		return PrecedenceFallback, true
	case "low":
		return PrecedenceLow, true
	case "default":
		return PrecedenceDefault, true
	case "high":
		return PrecedenceHigh, true
	default:
		return PrecedenceDefault, false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Precedence) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Origin records what kind of evidence produced a facet.
type Origin int

// Evidence origins.
const (
	OriginUnknown Origin = iota
	OriginMarker
	OriginConvention
	OriginInferred
	OriginDerived
	OriginConfig
)

// String returns the lower-case name of the origin.
func (o Origin) String() string {
	switch o {
	case OriginMarker:
		return "marker"
	case OriginConvention:
		return "convention"
	case OriginInferred:
		return "inferred"
	case OriginDerived:
		return "derived"
	case OriginConfig:
		return "config"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Origin) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}
