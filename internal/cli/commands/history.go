package commands

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapmeta/internal/cli/output"
	"github.com/leapstack-labs/leapmeta/internal/state"
)

// HistoryOptions holds options for the history command.
type HistoryOptions struct {
	Limit  int
	Format string
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	opts := &HistoryOptions{}
	cmd := &cobra.Command{
		Use:   "history [snapshot-id]",
		Short: "List recorded build snapshots",
		Long: `List the build snapshots recorded by validate, most recent first.

With a snapshot id, show the per-type fingerprints and the failures of
that build. Comparing fingerprints between two snapshots shows which
types changed their facets.`,
		Example: `  # Last ten builds
  leapmeta history --limit 10

  # One build in detail
  leapmeta history 3f0c9a7e-...`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd).WithFormat(cmd, opts.Format)
			store, err := cmdCtx.OpenStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if len(args) > 0 {
				snap, err := store.GetSnapshot(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return showSnapshot(cmdCtx.Renderer, snap)
			}

			snaps, err := store.ListSnapshots(cmd.Context(), opts.Limit)
			if err != nil {
				return err
			}
			return listSnapshots(cmdCtx.Renderer, snaps)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "Maximum number of snapshots, 0 for all")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json, yaml")

	return cmd
}

func listSnapshots(r *output.Renderer, snaps []state.Snapshot) error {
	if snaps == nil {
		snaps = []state.Snapshot{}
	}
	if ok, err := r.Structured(snaps); ok {
		return err
	}
	if len(snaps) == 0 {
		r.Println("No build snapshots recorded")
		return nil
	}

	rows := make([][]string, len(snaps))
	for i, s := range snaps {
		rows[i] = []string{
			s.ID,
			s.CreatedAt.Local().Format(time.DateTime),
			strconv.Itoa(s.TypeCount),
			strconv.Itoa(s.FailureCount),
			strconv.Itoa(s.ErrorCount),
			strconv.FormatBool(s.Strict),
		}
	}
	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println("# Build History")
		r.Println("")
	}
	r.Table([]string{"Snapshot", "Created", "Types", "Failures", "Errors", "Strict"}, rows)
	return nil
}

func showSnapshot(r *output.Renderer, snap *state.Snapshot) error {
	if ok, err := r.Structured(snap); ok {
		return err
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		r.Printf("# Snapshot %s\n\n", snap.ID)
		r.Printf("**Created:** %s | **Types:** %d | **Failures:** %d\n\n",
			snap.CreatedAt.Local().Format(time.DateTime), snap.TypeCount, snap.FailureCount)
	} else {
		styles := r.Styles()
		r.Println("")
		r.Println(styles.Header1.Render("Snapshot " + snap.ID))
		r.Printf("  %s: %s\n", styles.Bold.Render("Created"), snap.CreatedAt.Local().Format(time.DateTime))
		r.Println("")
	}

	rows := make([][]string, len(snap.Types))
	for i, t := range snap.Types {
		rows[i] = []string{t.Name, strconv.Itoa(t.Members), strconv.Itoa(t.Facets), t.Fingerprint}
	}
	r.Table([]string{"Type", "Members", "Facets", "Fingerprint"}, rows)

	if len(snap.Failures) > 0 {
		r.Println("")
		for _, f := range snap.Failures {
			r.Printf("- %s %s %s: %s\n", f.RuleID, f.Severity, failureSubject(f), f.Message)
		}
	}
	return nil
}
