package domain

// Seed is the fixed data inserted into empty catalog tables.
type Seed struct {
	Products      []Product
	ShippingRates []ShippingRate
	Projects      []Project
	ProjectItems  []ProjectItem
}

// SeedFor returns the built-in seed set of a variant.
func SeedFor(v Variant) (Seed, error) {
	switch v {
	case VariantShop:
		return ShopSeed(), nil
	case VariantInventory:
		return InventorySeed(), nil
	default:
		return Seed{}, ErrUnsupportedVariant
	}
}

// ShopSeed returns the shop catalog seed.
func ShopSeed() Seed {
	return Seed{
		Products: []Product{
			{Name: "Baju Kemeja", Price: 100000, Category: "Pakaian", Variants: []string{"S", "M", "L", "XL"}, Stock: 1},
			{Name: "Celana Cino", Price: 180000, Category: "Pakaian", Variants: []string{"M", "L", "XL"}, Stock: 1},
			{Name: "Topi Kinz", Price: 50000, Category: "Aksesoris", Variants: []string{"All Size"}, Stock: 0},
		},
		ShippingRates: []ShippingRate{
			{City: "Jakarta", Fee: 20000},
			{City: "Bandung", Fee: 15000},
			{City: "Surabaya", Fee: 25000},
			{City: OutOfTownCity, Fee: 45000},
		},
	}
}

// InventorySeed returns the inventory catalog seed.
func InventorySeed() Seed {
	return Seed{
		Products: []Product{
			{Name: "Baut", Price: 100000, Category: "Tools", Variants: []string{"10"}, Stock: 1},
			{Name: "Vanbelt Mobil", Price: 180000, Category: "Tools", Variants: []string{"Innova Zenix"}, Stock: 1},
			{Name: "Hp Samsung", Price: 50000, Category: "Electronic", Variants: []string{"A06"}, Stock: 1},
		},
		Projects: []Project{
			{Name: "Project A", City: "Jakarta", Agency: "Kejagung", Status: "Finish"},
			{Name: "Project B", City: "Bogor", Agency: "Polri", Status: "Progress"},
			{Name: "Project C", City: "Bandung", Agency: "Kemhan", Status: "Pending"},
			{Name: "Project Smart Class", City: "Depok", Agency: "Unhan", Status: "Cancel"},
		},
		ProjectItems: []ProjectItem{
			{Project: "Project A", Product: "Baut", Quantity: 10},
			{Project: "Project A", Product: "Vanbelt Mobil", Quantity: 5},
			{Project: "Project B", Product: "Hp Samsung", Quantity: 2},
		},
	}
}
