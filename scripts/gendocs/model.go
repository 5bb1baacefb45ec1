package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/leapmeta/pkg/factory"
	"github.com/leapstack-labs/leapmeta/pkg/factory/contributors"
	"github.com/leapstack-labs/leapmeta/pkg/validate"
	"github.com/leapstack-labs/leapmeta/pkg/validate/refiners"
)

// markerDocs lists the markers read by the built-in contributors.
var markerDocs = [][]string{
	{"named", "type, member", "Display name"},
	{"describedAs", "type, member", "Description"},
	{"logicalType", "type", "Logical type name, unique across the model"},
	{"nature", "type", "entity, viewmodel, service or value"},
	{"immutable", "type", "Marks the type read-only, value is the reason"},
	{"parent", "property", "Navigable parent of the owning type"},
	{"paged", "type, collection", "Page size"},
	{"order", "member", "Explicit member position"},
	{"hidden", "member", "Hide the member everywhere"},
	{"disabled", "member", "Disable the member, value is the reason"},
	{"optional / required", "property, parameter", "Mandatory facet"},
	{"maxLength", "property, parameter", "Maximum length of string values"},
	{"choices", "property, parameter", "Pipe separated list of allowed values"},
	{"default", "property, parameter", "Default value"},
	{"semantics", "action", "safe, idempotent or non-idempotent"},
	{"params", "action", "Pipe separated parameter names"},
	{"argN.<marker>", "action", "Marker for parameter N"},
}

// generateModelDocs generates contributor and refiner reference pages.
func generateModelDocs(outDir string) error {
	log.Printf("Generating model docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	contribs := contributors.Builtin()
	refs := refiners.Builtin()

	if err := generateModelIndex(outDir, len(contribs), len(refs)); err != nil {
		return err
	}
	log.Printf("  Generated index.md")

	if err := generateContributorsPage(outDir, contribs); err != nil {
		return err
	}
	log.Printf("  Generated contributors.md")

	if err := generateRefinersPage(outDir, refs); err != nil {
		return err
	}
	log.Printf("  Generated refiners.md")

	return nil
}

func generateModelIndex(outDir string, contribCount, refinerCount int) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Metamodel", "How leapmeta builds and checks the metamodel")
	w.GeneratedMarker()

	w.Header(1, "Metamodel")
	w.Paragraph(fmt.Sprintf("leapmeta ships **%d contributors** and **%d refiners**.", contribCount, refinerCount))

	w.BulletList([]string{
		Bold("Contributors") + ": derive facets from markers, naming conventions and configuration",
		Bold("Refiners") + ": check the finished metamodel and report failures",
	})

	w.Header(2, "Facet Precedence")
	w.Paragraph("When two contributors supply the same facet kind, the higher precedence wins. On a tie the first facet is kept and the conflict is reported.")
	w.Table(
		[]string{"Precedence", "Typical source"},
		[][]string{
			{InlineCode("fallback"), "Configuration defaults"},
			{InlineCode("low"), "Inferred from types"},
			{InlineCode("default"), "Naming conventions"},
			{InlineCode("high"), "Explicit markers"},
		},
	)

	w.Header(2, "Markers")
	w.Paragraph("Markers are declared in the `meta` struct tag. Type markers go on a blank `_ struct{}` field.")
	w.CodeBlock("go", `type Invoice struct {
	_      struct{} `+"`"+`meta:"named=Sales Invoice,logicalType=sales.Invoice"`+"`"+`
	Number string   `+"`"+`meta:"maxLength=12,required"`+"`"+`
}`)
	w.Table([]string{"Marker", "Applies to", "Meaning"}, codeFirst(markerDocs))

	w.Header(2, "Configuration")
	w.Paragraph("Contributors and refiners are configured in `leapmeta.yaml`:")
	w.CodeBlock("yaml", `model:
  disabled_contributors: [named-convention]
  disabled_refiners: [MV03]
  severity_overrides:
    MV05: error
  options:
    nature:
      service_suffixes: [Service, Repository]`)

	return os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600)
}

func generateContributorsPage(outDir string, contribs []factory.Contributor) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Contributors", "Built-in facet contributors")
	w.GeneratedMarker()

	w.Header(1, "Contributors")
	w.Paragraph("Contributors run in registry order. Within one precedence level, earlier contributors win conflicts.")

	var rows [][]string
	for _, c := range contribs {
		info := factory.GetInfo(c)
		prefixes := "-"
		if len(info.Prefixes) > 0 {
			prefixes = InlineCode(strings.Join(info.Prefixes, ", "))
		}
		rows = append(rows, []string{
			InlineCode(info.ID),
			info.Features,
			prefixes,
			cleanDescription(info.Description),
		})
	}
	w.Table([]string{"ID", "Features", "Prefixes", "Description"}, rows)

	w.Paragraph("Methods starting with a prefix owned by an enabled contributor are never treated as actions.")

	return os.WriteFile(filepath.Join(outDir, "contributors.md"), w.Bytes(), 0600)
}

func generateRefinersPage(outDir string, refs []validate.Refiner) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Refiners", "Built-in metamodel refiners")
	w.GeneratedMarker()

	w.Header(1, "Refiners")
	w.Paragraph(fmt.Sprintf("leapmeta includes %d refiners. Results are reported in registration order.", len(refs)))

	for _, r := range refs {
		writeRefinerDoc(w, validate.GetInfo(r))
	}

	return os.WriteFile(filepath.Join(outDir, "refiners.md"), w.Bytes(), 0600)
}

// writeRefinerDoc writes detailed documentation for a single refiner.
func writeRefinerDoc(w *MarkdownWriter, info validate.Info) {
	// ### MV01 - logical-type-uniqueness {#MV01}
	w.Line(fmt.Sprintf("### %s - %s {#%s}", info.ID, info.Name, info.ID))
	w.Newline()

	w.Line(fmt.Sprintf("**Severity:** %s", InlineCode(strings.ToLower(info.Severity))))
	w.Newline()

	w.Paragraph(cleanDescription(info.Description))

	if info.SkipServices {
		w.Paragraph("Services are skipped unless `validation.skip_services` is false.")
	}

	w.Line("---")
	w.Newline()
}

func codeFirst(rows [][]string) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		row := append([]string{InlineCode(r[0])}, r[1:]...)
		out = append(out, row)
	}
	return out
}
