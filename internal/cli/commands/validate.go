package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapmeta/internal/cli/output"
	"github.com/leapstack-labs/leapmeta/internal/state"
	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/loader"
)

// ValidateOptions holds options for the validate command.
type ValidateOptions struct {
	NoSave bool   // Skip recording a build snapshot
	Legacy bool   // Include the legacy types
	Format string // Output format
}

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	opts := &ValidateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Build the domain and report validation findings",
		Long: `Build the bundled invoicing domain, run every enabled refiner and print
the report. Each run is recorded in the state database unless --no-save
is given.

In strict mode (--strict or validation.strict) any finding makes the
command exit with a non-zero status.`,
		Example: `  # Validate and record a snapshot
  leapmeta validate

  # Fail on any finding
  leapmeta validate --strict

  # Machine-readable report
  leapmeta validate --format json --no-save

  # See what findings look like
  leapmeta validate --legacy`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd).WithFormat(cmd, opts.Format)
			l, report, buildErr := cmdCtx.Build(opts.Legacy)
			if l == nil {
				return buildErr
			}
			if buildErr != nil && !errors.Is(buildErr, loader.ErrValidationFailed) {
				return buildErr
			}

			snap := state.NewSnapshot(l.Specifications(), report, cmdCtx.Cfg.Validation.Strict)
			if !opts.NoSave {
				if err := saveSnapshot(cmd, cmdCtx, snap); err != nil {
					return err
				}
			}

			if err := renderReport(cmdCtx.Renderer, snap, report); err != nil {
				return err
			}
			return buildErr
		},
	}

	cmd.Flags().BoolVar(&opts.NoSave, "no-save", false, "Do not record a build snapshot")
	cmd.Flags().BoolVar(&opts.Legacy, "legacy", false, "Include the legacy types, which carry known modelling mistakes")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json, yaml")

	return cmd
}

func saveSnapshot(cmd *cobra.Command, cmdCtx *CommandContext, snap *state.Snapshot) error {
	store, err := cmdCtx.OpenStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.SaveSnapshot(cmd.Context(), snap); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	cmdCtx.Logger.Debug("snapshot saved", "id", snap.ID, "path", store.Path())
	return nil
}

// ReportOutput is the structured output of the validate command.
type ReportOutput struct {
	Snapshot string                   `json:"snapshot" yaml:"snapshot"`
	Types    int                      `json:"types" yaml:"types"`
	Clean    bool                     `json:"clean" yaml:"clean"`
	Failures []core.ValidationFailure `json:"failures" yaml:"failures"`
}

func renderReport(r *output.Renderer, snap *state.Snapshot, report *core.Report) error {
	out := ReportOutput{
		Snapshot: snap.ID,
		Types:    snap.TypeCount,
		Clean:    report.Empty(),
		Failures: []core.ValidationFailure{},
	}
	if report != nil {
		out.Failures = append(out.Failures, report.Failures...)
	}
	if ok, err := r.Structured(out); ok {
		return err
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println("# Validation Report")
		r.Println("")
		r.Printf("Built %d types, %d finding(s).\n\n", out.Types, len(out.Failures))
		for _, f := range out.Failures {
			r.Printf("- **%s** `%s` %s: %s\n", f.RuleID, f.Severity, failureSubject(f), f.Message)
		}
		if len(out.Failures) > 0 {
			r.Println("")
		}
		return nil
	}

	styles := r.Styles()
	r.Println("")
	if out.Clean {
		r.Println(styles.Success.Render(fmt.Sprintf("Built %d types, no findings", out.Types)))
		r.Println("")
		return nil
	}
	r.Println(styles.Header1.Render(fmt.Sprintf("Built %d types, %d finding(s)", out.Types, len(out.Failures))))
	r.Println("")
	for _, f := range out.Failures {
		r.Printf("  %s  %s  %s\n",
			getSeverityStyle(styles, f.Severity).Render(fmt.Sprintf("%-7s", f.Severity)),
			styles.Muted.Render(f.RuleID),
			styles.Bold.Render(failureSubject(f)),
		)
		r.Println("      " + f.Message)
	}
	r.Println("")
	return nil
}

func failureSubject(f core.ValidationFailure) string {
	if f.Member.MemberName != "" {
		return f.Member.String()
	}
	return f.Type
}
