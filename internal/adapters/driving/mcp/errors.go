// Package mcp provides an MCP (Model Context Protocol) server adapter for lapak.
// It lets AI assistants query the catalog, price carts and ask the catalog assistant.
package mcp

import "errors"

// ErrMissingCatalogService is returned when the catalog service is not provided.
var ErrMissingCatalogService = errors.New("mcp: catalog service is required")
