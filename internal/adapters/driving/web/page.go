package web

import (
	"embed"
	"html/template"
	"strings"

	"github.com/custodia-labs/lapak/internal/core/domain"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTemplate = template.Must(
	template.New("page.html").
		Funcs(template.FuncMap{
			"join":      strings.Join,
			"lines":     func(s string) []string { return strings.Split(s, "\n") },
			"itemLines": itemLines,
		}).
		ParseFS(templateFS, "templates/page.html"),
)

// pageData is rendered by templates/page.html.
type pageData struct {
	Title         string
	Heading       string
	VariantsLabel string
	Example       string
	Snapshot      *domain.Snapshot
	SearchResults []domain.Product
	Answer        string
	Error         string
}

func newPageData(snapshot *domain.Snapshot) pageData {
	data := pageData{
		Title:         "Shopping Assistant",
		Heading:       "Shopping Assistant",
		VariantsLabel: "Sizes",
		Example:       "What is the shipping cost to Jakarta for 2 Baju Kemeja size M?",
		Snapshot:      snapshot,
	}
	if snapshot.Variant == domain.VariantInventory {
		data.Title = "Project Assistance"
		data.Heading = "Project Assistant"
		data.VariantsLabel = snapshot.Variant.VariantsLabel()
		data.Example = "Project A berisi barang apa saja?"
	}
	return data
}

func itemLines(items []domain.ProjectItem) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = item.Line()
	}
	return strings.Join(lines, ", ")
}
