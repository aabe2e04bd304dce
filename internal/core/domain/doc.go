// Package domain defines the core business entities for lapak.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Product, ShippingRate, Project: Catalog rows read from the store
//   - Snapshot: A point-in-time view of the whole catalog
//   - CatalogDocument: A natural-language block synthesized from a snapshot
//   - Answer: A model answer plus the fields parsed out of it
//   - Quote: A deterministic cart total
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
