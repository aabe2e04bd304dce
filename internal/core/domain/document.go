package domain

// Source labels attached to synthesized catalog documents.
const (
	SourceProductInfo    = "product_info"
	SourceShippingInfo   = "shipping_info"
	SourceProjectInfo    = "project_info"
	SourceProjectMapping = "project_product_mapping"
	SourceInstructions   = "instructions"
)

// CatalogDocument is a natural-language block describing part of the catalog.
// It is the unit stored in the vector index.
type CatalogDocument struct {
	// Source labels which part of the catalog produced the text.
	Source string `json:"source"`

	// Content is the document text.
	Content string `json:"content"`
}

// RetrievedDocument is a catalog document returned by similarity search.
type RetrievedDocument struct {
	ID         string  `json:"id"`
	Source     string  `json:"source"`
	Content    string  `json:"content"`
	Similarity float64 `json:"similarity"`
}
