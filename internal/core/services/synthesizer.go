package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/lapak/internal/core/domain"
)

// Static instruction paragraphs appended after the catalog blocks.
const (
	shopInstructions = "Setelah memilih warna, ukuran, dan alamat, silakan lakukan transfer sesuai total biaya."

	inventoryInstructions = "Untuk menanyakan status proyek atau barang yang dialokasikan, sebutkan nama proyek. " +
		"Stok barang yang habis tidak dapat dialokasikan ke proyek baru."
)

// SynthesizeDocuments renders a catalog snapshot into the documents stored
// in the vector index. The output is a pure function of the snapshot.
func SynthesizeDocuments(snap *domain.Snapshot) []domain.CatalogDocument {
	docs := []domain.CatalogDocument{
		{Source: domain.SourceProductInfo, Content: productText(snap.Variant, snap.Products)},
	}

	switch snap.Variant {
	case domain.VariantInventory:
		docs = append(docs,
			domain.CatalogDocument{Source: domain.SourceProjectInfo, Content: projectText(snap.Projects)},
			domain.CatalogDocument{Source: domain.SourceProjectMapping, Content: mappingText(snap.Allocations)},
			domain.CatalogDocument{Source: domain.SourceInstructions, Content: inventoryInstructions},
		)
	default:
		docs = append(docs,
			domain.CatalogDocument{Source: domain.SourceShippingInfo, Content: shippingText(snap.ShippingRates)},
			domain.CatalogDocument{Source: domain.SourceInstructions, Content: shopInstructions},
		)
	}
	return docs
}

func productText(v domain.Variant, products []domain.Product) string {
	label := v.DocumentLabel()

	lines := make([]string, len(products))
	for i, p := range products {
		lines[i] = fmt.Sprintf("%s (Kategori: %s, Harga: Rp%d, %s: %s, Stok: %s)",
			p.Name, p.Category, p.Price, label, strings.Join(p.Variants, ", "), p.StockLabel())
	}
	return "Barang yang tersedia:\n" + strings.Join(lines, "\n") + "."
}

func shippingText(rates []domain.ShippingRate) string {
	parts := make([]string, len(rates))
	for i, r := range rates {
		parts[i] = fmt.Sprintf("%s (Rp%d)", strings.ToLower(r.City), r.Fee)
	}
	return "Ongkos kirim: " + strings.Join(parts, ", ") + "."
}

func projectText(projects []domain.Project) string {
	parts := make([]string, len(projects))
	for i, p := range projects {
		parts[i] = fmt.Sprintf("%s (%s)", strings.ToLower(p.Name), p.Status)
	}
	return "Project: " + strings.Join(parts, ", ") + "."
}

func mappingText(allocations []domain.ProjectAllocation) string {
	lines := make([]string, len(allocations))
	for i, a := range allocations {
		items := make([]string, len(a.Items))
		for j, item := range a.Items {
			items[j] = item.Line()
		}
		lines[i] = a.Project + ": " + strings.Join(items, ", ")
	}
	return "Mapping barang ke proyek:\n" + strings.Join(lines, "\n")
}
