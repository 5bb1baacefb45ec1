package introspect

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// TagKey is the struct tag key holding declarative markers.
const TagKey = "meta"

// Markers holds parsed declarative markers. Flags map to the empty string.
type Markers map[string]string

// ParseMarkers parses a marker list such as "named=Sales Invoice,hidden".
func ParseMarkers(s string) (Markers, error) {
	m := Markers{}
	s = strings.TrimSpace(s)
	if s == "" {
		return m, nil
	}

	for _, part := range splitEscaped(s, ',') {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("marker %q has no key", part)
		}
		if _, dup := m[key]; dup {
			return nil, fmt.Errorf("marker %q declared twice", key)
		}
		m[key] = strings.TrimSpace(value)
	}
	return m, nil
}

// splitEscaped splits s on sep, honoring backslash escapes of sep.
func splitEscaped(s string, sep byte) []string {
	var parts []string
	var cur strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) && s[i+1] == sep {
			cur.WriteByte(sep)
			i++
			continue
		}
		if c == sep {
			parts = append(parts, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteByte(c)
	}
	return append(parts, cur.String())
}

// Has reports whether the marker is present, with or without a value.
func (m Markers) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// Get returns the marker value.
func (m Markers) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Int returns the marker value parsed as an int.
func (m Markers) Int(key string) (int, bool, error) {
	v, ok := m[key]
	if !ok {
		return 0, false, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, true, fmt.Errorf("marker %s: %w", key, err)
	}
	return n, true, nil
}

// List returns the marker value split on '|'.
func (m Markers) List(key string) ([]string, bool) {
	v, ok := m[key]
	if !ok {
		return nil, false
	}
	if v == "" {
		return []string{}, true
	}
	items := strings.Split(v, "|")
	for i := range items {
		items[i] = strings.TrimSpace(items[i])
	}
	return items, true
}

// Keys returns the marker keys in sorted order.
func (m Markers) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
