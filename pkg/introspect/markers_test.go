package introspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMarkers(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Markers
		wantErr string
	}{
		{name: "empty", in: "", want: Markers{}},
		{name: "flag", in: "hidden", want: Markers{"hidden": ""}},
		{name: "pairs", in: "named=Sales Invoice, maxLength=20", want: Markers{"named": "Sales Invoice", "maxLength": "20"}},
		{name: "escaped comma", in: `describedAs=Net\, before tax`, want: Markers{"describedAs": "Net, before tax"}},
		{name: "equals in value", in: "default=a=b", want: Markers{"default": "a=b"}},
		{name: "skips blanks", in: "parent,,mandatory", want: Markers{"parent": "", "mandatory": ""}},
		{name: "missing key", in: "=x", wantErr: "has no key"},
		{name: "duplicate", in: "hidden,hidden", wantErr: "declared twice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMarkers(tt.in)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMarkers_Accessors(t *testing.T) {
	m := Markers{"maxLength": "20", "choices": "EUR| USD |GBP", "bad": "x", "flag": ""}

	n, ok, err := m.Int("maxLength")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 20, n)

	_, ok, err = m.Int("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = m.Int("bad")
	assert.True(t, ok)
	assert.Error(t, err)

	list, ok := m.List("choices")
	assert.True(t, ok)
	assert.Equal(t, []string{"EUR", "USD", "GBP"}, list)

	list, ok = m.List("flag")
	assert.True(t, ok)
	assert.Empty(t, list)

	assert.True(t, m.Has("flag"))
	assert.Equal(t, []string{"bad", "choices", "flag", "maxLength"}, m.Keys())
}
