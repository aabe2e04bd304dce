package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lapak/internal/core/domain"
)

// setupTestStore creates a SQLite store in a temporary directory.
func setupTestStore(t *testing.T, variant domain.Variant) (*Store, string) {
	t.Helper()

	dir := t.TempDir()
	store, err := NewStore(dir, variant)
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })

	return store, dir
}

func TestNewStore_PathPerVariant(t *testing.T) {
	shop, dir := setupTestStore(t, domain.VariantShop)
	assert.Equal(t, filepath.Join(dir, "shop.db"), shop.Path())

	inventory, err := NewStore(dir, domain.VariantInventory)
	require.NoError(t, err)
	defer inventory.Close()
	assert.Equal(t, filepath.Join(dir, "inventory.db"), inventory.Path())
}

func TestNewStore_UnsupportedVariant(t *testing.T) {
	_, err := NewStore(t.TempDir(), domain.Variant("grocery"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedVariant)
}

func TestNewStore_RecordsMigrations(t *testing.T) {
	store, dir := setupTestStore(t, domain.VariantShop)

	version, err := store.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	// Reopening does not re-run applied migrations.
	again, err := NewStore(dir, domain.VariantShop)
	require.NoError(t, err)
	defer again.Close()
	version, err = again.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestCatalogStore_ShopSeed(t *testing.T) {
	store, _ := setupTestStore(t, domain.VariantShop)
	catalog := store.CatalogStore()
	ctx := context.Background()

	require.NoError(t, catalog.Initialize(ctx, domain.ShopSeed()))

	products, err := catalog.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, domain.Product{
		ID: 1, Name: "Baju Kemeja", Price: 100000, Category: "Pakaian",
		Variants: []string{"S", "M", "L", "XL"}, Stock: 1,
	}, products[0])
	assert.False(t, products[2].InStock())

	rates, err := catalog.ListShippingRates(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ShopSeed().ShippingRates, rates)

	projects, err := catalog.ListProjects(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestCatalogStore_InventorySeed(t *testing.T) {
	store, _ := setupTestStore(t, domain.VariantInventory)
	catalog := store.CatalogStore()
	ctx := context.Background()

	require.NoError(t, catalog.Initialize(ctx, domain.InventorySeed()))

	projects, err := catalog.ListProjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.InventorySeed().Projects, projects)

	items, err := catalog.ListProjectItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.InventorySeed().ProjectItems, items)
}

func TestCatalogStore_InitializeIsIdempotent(t *testing.T) {
	store, dir := setupTestStore(t, domain.VariantInventory)
	ctx := context.Background()

	require.NoError(t, store.CatalogStore().Initialize(ctx, domain.InventorySeed()))
	require.NoError(t, store.CatalogStore().Initialize(ctx, domain.InventorySeed()))

	reopened, err := NewStore(dir, domain.VariantInventory)
	require.NoError(t, err)
	defer reopened.Close()
	require.NoError(t, reopened.CatalogStore().Initialize(ctx, domain.InventorySeed()))

	products, err := reopened.CatalogStore().ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 3)

	items, err := reopened.CatalogStore().ListProjectItems(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestCatalogStore_PerTableGuard(t *testing.T) {
	store, _ := setupTestStore(t, domain.VariantShop)
	ctx := context.Background()

	_, err := store.db.Exec("INSERT INTO shipping_rates (city, fee) VALUES ('Medan', 30000)")
	require.NoError(t, err)

	require.NoError(t, store.CatalogStore().Initialize(ctx, domain.ShopSeed()))

	rates, err := store.CatalogStore().ListShippingRates(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.ShippingRate{{City: "Medan", Fee: 30000}}, rates)

	products, err := store.CatalogStore().ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 3)
}

func TestCatalogStore_DuplicateRowsAreReturned(t *testing.T) {
	store, _ := setupTestStore(t, domain.VariantShop)
	ctx := context.Background()
	require.NoError(t, store.CatalogStore().Initialize(ctx, domain.ShopSeed()))

	_, err := store.db.Exec("INSERT INTO shipping_rates (city, fee) VALUES ('Jakarta', 99000)")
	require.NoError(t, err)

	rates, err := store.CatalogStore().ListShippingRates(ctx)
	require.NoError(t, err)
	require.Len(t, rates, 5)
	assert.Equal(t, domain.ShippingRate{City: "Jakarta", Fee: 99000}, rates[4])
}

func TestCatalogStore_UnknownAllocationFails(t *testing.T) {
	store, _ := setupTestStore(t, domain.VariantInventory)
	seed := domain.InventorySeed()
	seed.ProjectItems = append(seed.ProjectItems, domain.ProjectItem{Project: "Project Z", Product: "Baut", Quantity: 1})

	err := store.CatalogStore().Initialize(context.Background(), seed)

	assert.ErrorIs(t, err, domain.ErrNotFound)

	// The whole seed rolled back.
	products, err := store.CatalogStore().ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestSplitVariants(t *testing.T) {
	assert.Equal(t, []string{}, splitVariants(""))
	assert.Equal(t, []string{}, splitVariants("  "))
	assert.Equal(t, []string{"S", "M", "L"}, splitVariants("S, M ,L"))
	assert.Equal(t, []string{"All Size"}, splitVariants("All Size"))
}
