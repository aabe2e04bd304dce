package mcp

import (
	"github.com/custodia-labs/lapak/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Catalog provides product lookups, quotes and documents.
	Catalog driving.CatalogService

	// Assistant answers free-text questions. Optional: without it the
	// ask tool is not registered.
	Assistant driving.AssistantService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Catalog == nil {
		return ErrMissingCatalogService
	}
	return nil
}
