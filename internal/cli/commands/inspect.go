package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapmeta/internal/cli/output"
	"github.com/leapstack-labs/leapmeta/pkg/facet"
	"github.com/leapstack-labs/leapmeta/pkg/loader"
	"github.com/leapstack-labs/leapmeta/pkg/spec"
)

// InspectOptions holds options for the inspect command.
type InspectOptions struct {
	Contributions bool   // Show every offered facet, not only the stored ones
	Legacy        bool   // Include the legacy types
	Format        string // Output format
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	opts := &InspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect [type]",
		Short: "Show the specification graph",
		Long: `Build the bundled invoicing domain and show its specifications.

Without an argument every type is listed with supertypes first. With a
type, given by logical name or Go type name, its facets and members are
shown.`,
		Example: `  # List all specifications
  leapmeta inspect

  # Show one type
  leapmeta inspect sales.Invoice
  leapmeta inspect Customer

  # Show every contribution, including discarded ones
  leapmeta inspect Invoice --contributions`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd).WithFormat(cmd, opts.Format)
			l, _, err := cmdCtx.Build(opts.Legacy)
			if l == nil {
				return err
			}
			if len(args) == 0 {
				return listSpecs(cmdCtx.Renderer, l)
			}
			s, ok := findSpec(l, args[0])
			if !ok {
				return fmt.Errorf("type %q not found", args[0])
			}
			return showSpec(cmdCtx.Renderer, l.Hierarchy(), s, opts.Contributions)
		},
	}

	cmd.Flags().BoolVarP(&opts.Contributions, "contributions", "c", false, "Show every contribution per facet kind")
	cmd.Flags().BoolVar(&opts.Legacy, "legacy", false, "Include the legacy types")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json, yaml")

	return cmd
}

// findSpec resolves a logical name first, then a Go type name.
func findSpec(l *loader.Loader, name string) (*spec.ObjectSpecification, bool) {
	if s, ok := l.LookupByLogicalName(name); ok {
		return s, true
	}
	for _, s := range l.Specifications() {
		if s.Descriptor().Name == name || s.CanonicalName() == name {
			return s, true
		}
	}
	return nil, false
}

// SpecSummary is one row of the inspect listing.
type SpecSummary struct {
	LogicalName string   `json:"logical_name" yaml:"logical_name"`
	Canonical   string   `json:"canonical" yaml:"canonical"`
	Name        string   `json:"name" yaml:"name"`
	Nature      string   `json:"nature" yaml:"nature"`
	Abstract    bool     `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	Members     int      `json:"members" yaml:"members"`
	Supertypes  []string `json:"supertypes,omitempty" yaml:"supertypes,omitempty"`
}

func summarize(s *spec.ObjectSpecification) SpecSummary {
	sum := SpecSummary{
		LogicalName: s.LogicalType().Name(),
		Canonical:   s.CanonicalName(),
		Name:        s.Name(),
		Nature:      string(s.Nature()),
		Abstract:    s.IsAbstract(),
		Members:     len(s.Members()),
	}
	for _, st := range s.Supertypes() {
		sum.Supertypes = append(sum.Supertypes, st.LogicalType().Name())
	}
	return sum
}

// orderedSpecs returns supertypes before the types embedding them, falling
// back to canonical order when the hierarchy has a cycle.
func orderedSpecs(l *loader.Loader) []*spec.ObjectSpecification {
	h := l.Hierarchy()
	ids, err := h.TopologicalSort()
	if err != nil {
		return l.Specifications()
	}
	out := make([]*spec.ObjectSpecification, 0, len(ids))
	for _, id := range ids {
		if n, ok := h.Node(id); ok {
			out = append(out, n.Data)
		}
	}
	return out
}

func listSpecs(r *output.Renderer, l *loader.Loader) error {
	specs := orderedSpecs(l)
	summaries := make([]SpecSummary, len(specs))
	for i, s := range specs {
		summaries[i] = summarize(s)
	}
	if ok, err := r.Structured(summaries); ok {
		return err
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println("# Specifications")
		r.Println("")
	} else {
		r.Println("")
		r.Println(r.Styles().Header1.Render(fmt.Sprintf("Specifications (%d)", len(specs))))
		r.Println("")
	}

	rows := make([][]string, len(summaries))
	for i, s := range summaries {
		rows[i] = []string{s.LogicalName, s.Name, s.Nature, strconv.Itoa(s.Members), strings.Join(s.Supertypes, ", ")}
	}
	r.Table([]string{"Type", "Name", "Nature", "Members", "Supertypes"}, rows)
	return nil
}

// FacetView is a stored or offered facet.
type FacetView struct {
	Kind       string `json:"kind" yaml:"kind"`
	Value      string `json:"value" yaml:"value"`
	Precedence string `json:"precedence" yaml:"precedence"`
	Origin     string `json:"origin" yaml:"origin"`
	Source     string `json:"source" yaml:"source"`
	Outcome    string `json:"outcome,omitempty" yaml:"outcome,omitempty"`
}

// HolderView lists the facets of one class, member or parameter.
type HolderView struct {
	ID      string      `json:"id" yaml:"id"`
	Feature string      `json:"feature" yaml:"feature"`
	Facets  []FacetView `json:"facets" yaml:"facets"`
}

// SpecDetail is the structured output of inspect for one type.
type SpecDetail struct {
	SpecSummary `yaml:",inline"`
	Subtypes    []string     `json:"subtypes,omitempty" yaml:"subtypes,omitempty"`
	Orphans     []string     `json:"orphans,omitempty" yaml:"orphans,omitempty"`
	Holders     []HolderView `json:"holders" yaml:"holders"`
}

func facetView(f *facet.Facet) FacetView {
	return FacetView{
		Kind:       string(f.Kind()),
		Value:      fmt.Sprintf("%+v", f.Value()),
		Precedence: f.Precedence().String(),
		Origin:     f.Origin().String(),
		Source:     f.Source(),
	}
}

func holderView(h *facet.Holder, contributions bool) HolderView {
	hv := HolderView{ID: h.Identifier().String(), Feature: h.FeatureType().String()}
	for _, f := range h.Facets() {
		if !contributions {
			hv.Facets = append(hv.Facets, facetView(f))
			continue
		}
		for _, c := range h.Contributions(f.Kind()) {
			v := facetView(c.Facet)
			v.Outcome = c.Outcome.String()
			hv.Facets = append(hv.Facets, v)
		}
	}
	return hv
}

func detail(h *spec.Hierarchy, s *spec.ObjectSpecification, contributions bool) SpecDetail {
	d := SpecDetail{SpecSummary: summarize(s), Orphans: s.Orphans()}
	for _, id := range h.Descendants(s.CanonicalName()) {
		if n, ok := h.Node(id); ok {
			d.Subtypes = append(d.Subtypes, n.Data.LogicalType().Name())
		}
	}
	d.Holders = append(d.Holders, holderView(s.Holder, contributions))
	for _, m := range s.Members() {
		d.Holders = append(d.Holders, holderView(m.Holder, contributions))
		for _, p := range m.Parameters() {
			d.Holders = append(d.Holders, holderView(p.Holder, contributions))
		}
	}
	return d
}

func showSpec(r *output.Renderer, h *spec.Hierarchy, s *spec.ObjectSpecification, contributions bool) error {
	d := detail(h, s, contributions)
	if ok, err := r.Structured(d); ok {
		return err
	}

	header := []string{"Holder", "Kind", "Value", "Precedence", "Origin", "Source"}
	if contributions {
		header = append(header, "Outcome")
	}
	var rows [][]string
	for _, h := range d.Holders {
		for _, f := range h.Facets {
			row := []string{h.ID, f.Kind, f.Value, f.Precedence, f.Origin, f.Source}
			if contributions {
				row = append(row, f.Outcome)
			}
			rows = append(rows, row)
		}
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		r.Printf("# %s\n\n", d.Name)
		r.Printf("**Type:** `%s` | **Nature:** %s | **Members:** %d\n\n", d.LogicalName, d.Nature, d.Members)
		if len(d.Orphans) > 0 {
			r.Printf("**Orphaned methods:** %s\n\n", strings.Join(d.Orphans, ", "))
		}
	} else {
		styles := r.Styles()
		r.Println("")
		r.Println(styles.Header1.Render(d.Name))
		r.Println("")
		r.Printf("  %s: %s\n", styles.Bold.Render("Type"), d.LogicalName)
		r.Printf("  %s: %s\n", styles.Bold.Render("Go type"), d.Canonical)
		r.Printf("  %s: %s\n", styles.Bold.Render("Nature"), d.Nature)
		if len(d.Supertypes) > 0 {
			r.Printf("  %s: %s\n", styles.Bold.Render("Supertypes"), strings.Join(d.Supertypes, ", "))
		}
		if len(d.Subtypes) > 0 {
			r.Printf("  %s: %s\n", styles.Bold.Render("Subtypes"), strings.Join(d.Subtypes, ", "))
		}
		if len(d.Orphans) > 0 {
			r.Printf("  %s: %s\n", styles.Warning.Render("Orphaned methods"), strings.Join(d.Orphans, ", "))
		}
		r.Println("")
	}
	r.Table(header, rows)
	return nil
}
