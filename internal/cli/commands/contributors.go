package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapmeta/internal/cli/output"
	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/factory"
	"github.com/leapstack-labs/leapmeta/pkg/model"
	"github.com/leapstack-labs/leapmeta/pkg/validate"
)

// ContributorsOptions holds options for the contributors command.
type ContributorsOptions struct {
	Refiners bool   // Only list refiners
	Verbose  bool   // Show descriptions
	Format   string // Output format
}

// NewContributorsCommand creates the contributors command.
func NewContributorsCommand() *cobra.Command {
	opts := &ContributorsOptions{}
	cmd := &cobra.Command{
		Use:   "contributors [id]",
		Short: "List facet contributors and validation refiners",
		Long: `List the facet contributors and validation refiners of the programming model.

Contributors run in registration order during construction. Refiners run
once the build unit is complete. Disabled entries and severity overrides
from the configuration are shown.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON/YAML: Machine-readable format`,
		Example: `  # List everything
  leapmeta contributors

  # Show one contributor or refiner
  leapmeta contributors named-marker
  leapmeta contributors MV01

  # Only refiners, as JSON
  leapmeta contributors --refiners --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd).WithFormat(cmd, opts.Format)
			m, err := cmdCtx.Model()
			if err != nil {
				return err
			}
			listing := newModelListing(m)
			if len(args) > 0 {
				return showEntry(cmdCtx.Renderer, listing, args[0])
			}
			if opts.Refiners {
				listing.Contributors = nil
			}
			return listModel(cmdCtx.Renderer, listing, opts.Verbose)
		},
	}

	cmd.Flags().BoolVar(&opts.Refiners, "refiners", false, "Only list refiners")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "V", false, "Show descriptions")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json, yaml")

	return cmd
}

// ContributorEntry is one contributor in registration order.
type ContributorEntry struct {
	factory.Info `yaml:",inline"`
	Order        int  `json:"order" yaml:"order"`
	Enabled      bool `json:"enabled" yaml:"enabled"`
}

// RefinerEntry is one refiner with its effective severity.
type RefinerEntry struct {
	validate.Info `yaml:",inline"`
	Effective     string `json:"effective_severity" yaml:"effective_severity"`
	Enabled       bool   `json:"enabled" yaml:"enabled"`
}

// ModelListing is the structured output of the contributors command.
type ModelListing struct {
	Contributors []ContributorEntry `json:"contributors,omitempty" yaml:"contributors,omitempty"`
	Refiners     []RefinerEntry     `json:"refiners" yaml:"refiners"`
}

func newModelListing(m *model.ProgrammingModel) ModelListing {
	var l ModelListing
	for i, c := range m.AllContributors() {
		l.Contributors = append(l.Contributors, ContributorEntry{
			Info:    factory.GetInfo(c),
			Order:   i + 1,
			Enabled: m.ContributorEnabled(c.ID()),
		})
	}
	for _, r := range m.AllRefiners() {
		l.Refiners = append(l.Refiners, RefinerEntry{
			Info:      validate.GetInfo(r),
			Effective: m.Severity(r).String(),
			Enabled:   m.RefinerEnabled(r.ID()),
		})
	}
	return l
}

func listModel(r *output.Renderer, l ModelListing, verbose bool) error {
	if ok, err := r.Structured(l); ok {
		return err
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		return listModelMarkdown(r, l, verbose)
	}
	return listModelText(r, l, verbose)
}

// listModelText outputs the model in styled text format.
func listModelText(r *output.Renderer, l ModelListing, verbose bool) error {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("Programming Model (%d contributors, %d refiners)", len(l.Contributors), len(l.Refiners))))
	r.Println("")

	if len(l.Contributors) > 0 {
		r.Println(styles.Header2.Render("Contributors"))
		r.Println("")
		for _, c := range l.Contributors {
			line := fmt.Sprintf("  %2d  %s  %s", c.Order, c.ID, styles.Muted.Render(c.Features))
			if !c.Enabled {
				line += " " + styles.Warning.Render("(disabled)")
			}
			r.Println(line)
			if verbose {
				r.Println(styles.Muted.Render("        " + c.Description))
			}
		}
		r.Println("")
	}

	r.Println(styles.Header2.Render("Refiners"))
	r.Println("")
	for _, ref := range l.Refiners {
		sev, _ := core.ParseSeverity(ref.Effective)
		line := fmt.Sprintf("  %s  %s - %s", styles.Muted.Render(ref.ID), ref.Name, getSeverityStyle(styles, sev).Render(ref.Effective))
		if !ref.Enabled {
			line += " " + styles.Warning.Render("(disabled)")
		}
		r.Println(line)
		if verbose {
			r.Println(styles.Muted.Render("        " + ref.Description))
		}
	}

	r.Println("")
	r.Println(styles.Muted.Render("Use 'leapmeta contributors <id>' for details"))
	r.Println("")
	return nil
}

// listModelMarkdown outputs the model in markdown format.
func listModelMarkdown(r *output.Renderer, l ModelListing, verbose bool) error {
	r.Println("# Programming Model")
	r.Println("")

	if len(l.Contributors) > 0 {
		r.Println("## Contributors")
		r.Println("")
		for _, c := range l.Contributors {
			line := fmt.Sprintf("%d. **%s** (`%s`)", c.Order, c.ID, c.Features)
			if !c.Enabled {
				line += " - disabled"
			}
			r.Println(line)
			if verbose {
				r.Println("   " + c.Description)
			}
		}
		r.Println("")
	}

	r.Println("## Refiners")
	r.Println("")
	for _, ref := range l.Refiners {
		line := fmt.Sprintf("- **%s** - %s (`%s`)", ref.ID, ref.Name, ref.Effective)
		if !ref.Enabled {
			line += " - disabled"
		}
		r.Println(line)
		if verbose {
			r.Println("  " + ref.Description)
		}
	}
	r.Println("")
	return nil
}

func showEntry(r *output.Renderer, l ModelListing, id string) error {
	for _, c := range l.Contributors {
		if c.ID == id {
			return showContributor(r, c)
		}
	}
	for _, ref := range l.Refiners {
		if strings.EqualFold(ref.ID, id) || ref.Name == id {
			return showRefiner(r, ref)
		}
	}
	return fmt.Errorf("contributor or refiner %q not found", id)
}

func showContributor(r *output.Renderer, c ContributorEntry) error {
	if ok, err := r.Structured(c); ok {
		return err
	}

	prefixes := "-"
	if len(c.Prefixes) > 0 {
		prefixes = strings.Join(c.Prefixes, ", ")
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		r.Printf("# %s\n\n", c.ID)
		r.Printf("**Order:** %d | **Features:** `%s` | **Enabled:** %t\n\n", c.Order, c.Features, c.Enabled)
		r.Println(c.Description)
		r.Println("")
		r.Printf("Convention prefixes: %s\n", prefixes)
		return nil
	}

	styles := r.Styles()
	r.Println("")
	r.Println(styles.Header1.Render(c.ID))
	r.Println("")
	r.Printf("  %s: %d\n", styles.Bold.Render("Order"), c.Order)
	r.Printf("  %s: %s\n", styles.Bold.Render("Features"), c.Features)
	r.Printf("  %s: %s\n", styles.Bold.Render("Prefixes"), prefixes)
	r.Printf("  %s: %t\n", styles.Bold.Render("Enabled"), c.Enabled)
	r.Println("")
	r.Println(styles.Bold.Render("Description"))
	r.Println("  " + c.Description)
	return nil
}

func showRefiner(r *output.Renderer, ref RefinerEntry) error {
	if ok, err := r.Structured(ref); ok {
		return err
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		r.Printf("# %s - %s\n\n", ref.ID, ref.Name)
		r.Printf("**Severity:** `%s` | **Default:** `%s` | **Skips services:** %t | **Enabled:** %t\n\n",
			ref.Effective, ref.Severity, ref.SkipServices, ref.Enabled)
		r.Println(ref.Description)
		return nil
	}

	styles := r.Styles()
	sev, _ := core.ParseSeverity(ref.Effective)
	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("%s - %s", ref.ID, ref.Name)))
	r.Println("")
	r.Printf("  %s: %s\n", styles.Bold.Render("Severity"), getSeverityStyle(styles, sev).Render(ref.Effective))
	r.Printf("  %s: %s\n", styles.Bold.Render("Default"), ref.Severity)
	r.Printf("  %s: %t\n", styles.Bold.Render("Skips services"), ref.SkipServices)
	r.Printf("  %s: %t\n", styles.Bold.Render("Enabled"), ref.Enabled)
	r.Println("")
	r.Println(styles.Bold.Render("Description"))
	r.Println("  " + ref.Description)
	return nil
}

func getSeverityStyle(styles *output.Styles, sev core.Severity) lipgloss.Style {
	switch sev {
	case core.SeverityError:
		return styles.Error
	case core.SeverityWarning:
		return styles.Warning
	case core.SeverityInfo:
		return styles.Info
	default:
		return styles.Muted
	}
}
