package commands

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leapmeta/internal/cli/testutil"
	"github.com/leapstack-labs/leapmeta/internal/state"
	"github.com/leapstack-labs/leapmeta/pkg/bookmark"
	"github.com/leapstack-labs/leapmeta/pkg/loader"
)

func TestNewContributorsCommand(t *testing.T) {
	cmd := NewContributorsCommand()

	assert.Equal(t, "contributors [id]", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Example)
	for _, flag := range []string{"refiners", "verbose", "format"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestContributorsCommand_List(t *testing.T) {
	out, _, err := testutil.Run(t, NewContributorsCommand(), testutil.TestConfig(t))
	require.NoError(t, err)

	testutil.AssertNoANSI(t, out)
	testutil.AssertValidMarkdown(t, out)
	assert.Contains(t, out, "# Programming Model")
	assert.Contains(t, out, "**named-marker**")
	assert.Contains(t, out, "**MV01** - logical-type-uniqueness (`error`)")
}

func TestContributorsCommand_JSON(t *testing.T) {
	cfg := testutil.TestConfig(t)
	cfg.Model.DisabledRefiners = []string{"MV03"}
	cfg.Model.SeverityOverrides = map[string]string{"MV05": "error"}

	out, _, err := testutil.Run(t, NewContributorsCommand(), cfg, "--refiners", "--format", "json")
	require.NoError(t, err)

	var listing ModelListing
	require.NoError(t, json.Unmarshal([]byte(out), &listing))
	assert.Empty(t, listing.Contributors)
	require.Len(t, listing.Refiners, 6)

	byID := map[string]RefinerEntry{}
	for _, r := range listing.Refiners {
		byID[r.ID] = r
	}
	assert.False(t, byID["MV03"].Enabled)
	assert.Equal(t, "warning", byID["MV05"].Severity)
	assert.Equal(t, "error", byID["MV05"].Effective)
}

func TestContributorsCommand_Show(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		want    []string
		wantErr bool
	}{
		{name: "contributor", id: "hidden", want: []string{"# hidden", "Hide"}},
		{name: "refiner by id", id: "MV06", want: []string{"# MV06 - supertype-cycle"}},
		{name: "refiner lower case", id: "mv02", want: []string{"ambiguous-navigable-parent"}},
		{name: "unknown", id: "nope", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := testutil.Run(t, NewContributorsCommand(), testutil.TestConfig(t), tt.id)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "not found")
				return
			}
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestContributorsCommand_BadSeverity(t *testing.T) {
	cfg := testutil.TestConfig(t)
	cfg.Model.SeverityOverrides = map[string]string{"MV01": "fatal"}

	_, _, err := testutil.Run(t, NewContributorsCommand(), cfg)
	require.Error(t, err)
}

func TestInspectCommand_List(t *testing.T) {
	out, _, err := testutil.Run(t, NewInspectCommand(), testutil.TestConfig(t))
	require.NoError(t, err)

	testutil.AssertValidMarkdown(t, out)
	assert.Contains(t, out, "# Specifications")
	assert.Contains(t, out, "sales.Invoice")
	assert.Contains(t, out, "Sales Invoice")

	// Supertypes are listed before the types that embed them.
	audited := strings.Index(out, "demo.Audited")
	invoice := strings.Index(out, "sales.Invoice")
	require.NotEqual(t, -1, audited)
	assert.Less(t, audited, invoice)
}

func TestInspectCommand_Type(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "by logical name",
			args: []string{"sales.Invoice"},
			want: []string{"# Sales Invoice", "named-marker", "Sales Invoice", "ChoicesStatus"},
		},
		{
			name: "by go name",
			args: []string{"InvoiceService"},
			want: []string{"**Nature:** service", "FindInvoice"},
		},
		{
			name: "with contributions",
			args: []string{"Invoice", "--contributions"},
			want: []string{"Outcome", "discarded"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := testutil.Run(t, NewInspectCommand(), testutil.TestConfig(t), tt.args...)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestInspectCommand_YAML(t *testing.T) {
	out, _, err := testutil.Run(t, NewInspectCommand(), testutil.TestConfig(t), "Customer", "--format", "yaml")
	require.NoError(t, err)

	var d SpecDetail
	require.NoError(t, yaml.Unmarshal([]byte(out), &d))
	assert.Equal(t, "entity", d.Nature)
	assert.Equal(t, []string{"github.com/leapstack-labs/leapmeta/internal/demo.Audited"}, d.Supertypes)
	require.NotEmpty(t, d.Holders)
	assert.Equal(t, "object", d.Holders[0].Feature)
}

func TestInspectCommand_Subtypes(t *testing.T) {
	out, _, err := testutil.Run(t, NewInspectCommand(), testutil.TestConfig(t), "Audited", "--format", "json")
	require.NoError(t, err)

	var d SpecDetail
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Contains(t, d.Subtypes, "sales.Invoice")
	assert.Empty(t, d.Supertypes)
}

func TestInspectCommand_UnknownType(t *testing.T) {
	_, _, err := testutil.Run(t, NewInspectCommand(), testutil.TestConfig(t), "Nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `type "Nope" not found`)
}

func TestValidateCommand_CleanBuildIsRecorded(t *testing.T) {
	cfg := testutil.TestConfig(t)
	cfg.Validation.Strict = true

	out, _, err := testutil.Run(t, NewValidateCommand(), cfg, "--format", "json")
	require.NoError(t, err)

	var report ReportOutput
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.Clean)
	assert.Empty(t, report.Failures)
	assert.Equal(t, 7, report.Types)

	out, _, err = testutil.Run(t, NewHistoryCommand(), cfg, "--format", "json")
	require.NoError(t, err)
	var snaps []state.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snaps))
	require.Len(t, snaps, 1)
	assert.Equal(t, report.Snapshot, snaps[0].ID)
	assert.True(t, snaps[0].Strict)
}

func TestValidateCommand_StrictFailure(t *testing.T) {
	cfg := testutil.TestConfig(t)
	cfg.Validation.Strict = true

	out, _, err := testutil.Run(t, NewValidateCommand(), cfg, "--legacy")
	require.Error(t, err)
	assert.ErrorIs(t, err, loader.ErrValidationFailed)
	assert.Contains(t, out, "MV01")
	assert.Contains(t, out, "HideDiscount")

	// The failed build is still recorded.
	out, _, err = testutil.Run(t, NewHistoryCommand(), cfg, "--format", "json")
	require.NoError(t, err)
	var snaps []state.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snaps))
	require.Len(t, snaps, 1)
	assert.Equal(t, 2, snaps[0].ErrorCount)
	assert.Equal(t, 3, snaps[0].FailureCount)
}

func TestValidateCommand_NonStrictFindingsSucceed(t *testing.T) {
	cfg := testutil.TestConfig(t)
	cfg.Model.SeverityOverrides = map[string]string{"MV03": "info"}

	out, _, err := testutil.Run(t, NewValidateCommand(), cfg, "--no-save", "--legacy")
	require.NoError(t, err)
	assert.Contains(t, out, "# Validation Report")
	assert.Contains(t, out, "3 finding(s)")
	assert.Contains(t, out, "**MV03** `info`")
}

func TestBookmarkCommand_RoundTrip(t *testing.T) {
	cfg := testutil.TestConfig(t)

	out, _, err := testutil.Run(t, NewBookmarkCommand(), cfg, "encode", "Invoice", "INV-001", "rev 2")
	require.NoError(t, err)
	encoded := strings.TrimSpace(out)
	assert.True(t, strings.HasPrefix(encoded, "sales.Invoice:"), encoded)

	out, _, err = testutil.Run(t, NewBookmarkCommand(), cfg, "decode", encoded, "--format", "json")
	require.NoError(t, err)
	var decoded BookmarkOutput
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "sales.Invoice", decoded.LogicalName)
	assert.Equal(t, "github.com/leapstack-labs/leapmeta/internal/demo.Invoice", decoded.Type)
	assert.Equal(t, []string{"INV-001", "rev 2"}, decoded.Keys)
}

func TestBookmarkCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
		msg  string
	}{
		{name: "missing key", args: []string{"encode", "Invoice"}, msg: "at least one key"},
		{name: "unknown type", args: []string{"encode", "Nope", "1"}, msg: "not found"},
		{name: "malformed", args: []string{"decode", "no-separator"}, want: bookmark.ErrMalformed},
		{name: "unknown logical name", args: []string{"decode", "other.Thing:abc"}, want: bookmark.ErrUnknownType},
		{name: "bad id", args: []string{"decode", "sales.Invoice:a/b"}, want: bookmark.ErrInvalidID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := testutil.Run(t, NewBookmarkCommand(), testutil.TestConfig(t), tt.args...)
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestBookmarkCommand_Transient(t *testing.T) {
	out, _, err := testutil.Run(t, NewBookmarkCommand(), testutil.TestConfig(t), "encode", "Customer", "--transient", "--format", "yaml")
	require.NoError(t, err)

	var b BookmarkOutput
	require.NoError(t, yaml.Unmarshal([]byte(out), &b))
	assert.Len(t, b.InstanceID, 36)
	assert.Empty(t, b.Keys)
}

func TestHistoryCommand(t *testing.T) {
	cfg := testutil.TestConfig(t)

	out, _, err := testutil.Run(t, NewHistoryCommand(), cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "No build snapshots recorded")

	for range 2 {
		_, _, err = testutil.Run(t, NewValidateCommand(), cfg, "--format", "json")
		require.NoError(t, err)
	}

	out, _, err = testutil.Run(t, NewHistoryCommand(), cfg, "--format", "json")
	require.NoError(t, err)
	var snaps []state.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snaps))
	require.Len(t, snaps, 2)

	out, _, err = testutil.Run(t, NewHistoryCommand(), cfg, snaps[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, "# Snapshot "+snaps[0].ID)
	assert.Contains(t, out, "sales.Invoice")

	_, _, err = testutil.Run(t, NewHistoryCommand(), cfg, "missing")
	assert.ErrorIs(t, err, state.ErrSnapshotNotFound)
}
