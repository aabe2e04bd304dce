package domain

import "fmt"

// Product is a catalog row.
type Product struct {
	// ID is the store-assigned row identifier.
	ID int64 `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Price is the unit price in whole rupiah.
	Price int64 `json:"price"`

	// Category groups products (e.g. Pakaian, Tools).
	Category string `json:"category"`

	// Variants holds sizes (shop) or brand tags (inventory) in stored order.
	Variants []string `json:"variants"`

	// Stock is the stored stock quantity.
	Stock int `json:"stock"`
}

// InStock reports whether the product is available.
// Any non-zero stock counts as available.
func (p Product) InStock() bool {
	return p.Stock != 0
}

// StockLabel returns the Indonesian availability label.
func (p Product) StockLabel() string {
	if p.InStock() {
		return "Tersedia"
	}
	return "Habis"
}

// ShippingRate is the delivery fee to a city.
type ShippingRate struct {
	City string `json:"city"`
	Fee  int64  `json:"fee"`
}

// Project is a work order that consumes inventory.
type Project struct {
	Name   string `json:"name"`
	City   string `json:"city"`
	Agency string `json:"agency"`
	Status string `json:"status"`
}

// ProjectItem is one product allocated to a project.
type ProjectItem struct {
	Project  string `json:"project"`
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

// Line renders the allocation as "product (n pcs)".
func (i ProjectItem) Line() string {
	return fmt.Sprintf("%s (%d pcs)", i.Product, i.Quantity)
}

// ProjectAllocation groups the items allocated to one project.
type ProjectAllocation struct {
	Project string        `json:"project"`
	Items   []ProjectItem `json:"items"`
}

// Snapshot is a point-in-time view of the catalog.
// Shipping rates are populated for the shop variant, projects and
// allocations for the inventory variant.
type Snapshot struct {
	Variant       Variant             `json:"variant"`
	Products      []Product           `json:"products"`
	ShippingRates []ShippingRate      `json:"shipping_rates,omitempty"`
	Projects      []Project           `json:"projects,omitempty"`
	Allocations   []ProjectAllocation `json:"allocations,omitempty"`
}
