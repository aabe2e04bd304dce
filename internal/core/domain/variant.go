package domain

// Variant selects which catalog flavour the application runs.
type Variant string

// Available catalog variants.
const (
	// VariantShop sells sized products and quotes shipping per city.
	VariantShop Variant = "shop"

	// VariantInventory tracks branded items allocated to projects.
	VariantInventory Variant = "inventory"
)

// IsValid returns true if the variant is recognised.
func (v Variant) IsValid() bool {
	switch v {
	case VariantShop, VariantInventory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (v Variant) String() string {
	return string(v)
}

// VariantsLabel is the per-product attribute label shown to users.
// Shop products carry sizes, inventory products carry brand tags.
func (v Variant) VariantsLabel() string {
	if v == VariantInventory {
		return "Merk"
	}
	return "Ukuran"
}

// DocumentLabel is the attribute label used in synthesized catalog text.
// The inventory label stays lowercase to match the stored column name.
func (v Variant) DocumentLabel() string {
	if v == VariantInventory {
		return "merk"
	}
	return "Ukuran"
}

// Description returns a human-readable description of the variant.
func (v Variant) Description() string {
	switch v {
	case VariantShop:
		return "Shop (products and shipping rates)"
	case VariantInventory:
		return "Inventory (products, projects and allocations)"
	default:
		return "Unknown"
	}
}

// AllVariants returns all available variants.
func AllVariants() []Variant {
	return []Variant{VariantShop, VariantInventory}
}
