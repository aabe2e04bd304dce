package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/lapak/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/lapak/internal/core/domain"
	"github.com/custodia-labs/lapak/internal/core/ports/driven"
)

// variantSeparator joins size or brand tags in the variants column.
const variantSeparator = ","

// Store is a SQLite database holding one catalog variant.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) the database of a variant in dataDir.
// If dataDir is empty, defaults to ~/.lapak/data.
func NewStore(dataDir string, variant domain.Variant) (*Store, error) {
	if !variant.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedVariant, variant)
	}
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".lapak", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, variant.String()+".db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// CatalogStore returns a CatalogStore interface backed by this store.
func (s *Store) CatalogStore() driven.CatalogStore {
	return &catalogStore{store: s}
}

// SchemaVersion returns the highest applied migration version.
func (s *Store) SchemaVersion() (int, error) {
	var version int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&version); err != nil {
		return 0, fmt.Errorf("getting current version: %w", err)
	}
	return version, nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	currentVersion, err := s.SchemaVersion()
	if err != nil {
		return err
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_catalog.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.applyMigration(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) applyMigration(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(script); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// ==================== Catalog Store ====================

// catalogStore implements driven.CatalogStore.
type catalogStore struct {
	store *Store
}

var _ driven.CatalogStore = (*catalogStore)(nil)

// Initialize inserts each seed table only if that table is empty.
// Everything runs in one transaction.
func (s *catalogStore) Initialize(ctx context.Context, seed domain.Seed) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := seedTable(ctx, tx, "products", len(seed.Products), func() error {
		for _, p := range seed.Products {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO products (name, price, category, variants, stock) VALUES (?, ?, ?, ?, ?)",
				p.Name, p.Price, p.Category, strings.Join(p.Variants, variantSeparator), p.Stock)
			if err != nil {
				return fmt.Errorf("inserting product %q: %w", p.Name, err)
			}
		}
		return nil
	}); err != nil {
		return err
	}

	if err := seedTable(ctx, tx, "shipping_rates", len(seed.ShippingRates), func() error {
		for _, r := range seed.ShippingRates {
			_, err := tx.ExecContext(ctx, "INSERT INTO shipping_rates (city, fee) VALUES (?, ?)", r.City, r.Fee)
			if err != nil {
				return fmt.Errorf("inserting shipping rate %q: %w", r.City, err)
			}
		}
		return nil
	}); err != nil {
		return err
	}

	if err := seedTable(ctx, tx, "projects", len(seed.Projects), func() error {
		for _, p := range seed.Projects {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO projects (name, city, agency, status) VALUES (?, ?, ?, ?)",
				p.Name, p.City, p.Agency, p.Status)
			if err != nil {
				return fmt.Errorf("inserting project %q: %w", p.Name, err)
			}
		}
		return nil
	}); err != nil {
		return err
	}

	if err := seedTable(ctx, tx, "project_products", len(seed.ProjectItems), func() error {
		for _, item := range seed.ProjectItems {
			res, err := tx.ExecContext(ctx, `
				INSERT INTO project_products (project_id, product_id, quantity)
				SELECT p.id, b.id, ?
				FROM projects p, products b
				WHERE p.name = ? AND b.name = ?
				ORDER BY p.id, b.id
				LIMIT 1
			`, item.Quantity, item.Project, item.Product)
			if err != nil {
				return fmt.Errorf("inserting allocation %s/%s: %w", item.Project, item.Product, err)
			}
			if n, err := res.RowsAffected(); err == nil && n == 0 {
				return fmt.Errorf("inserting allocation %s/%s: %w", item.Project, item.Product, domain.ErrNotFound)
			}
		}
		return nil
	}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}
	return nil
}

// seedTable runs insert when table is empty and there is something to insert.
func seedTable(ctx context.Context, tx *sql.Tx, table string, rows int, insert func() error) error {
	if rows == 0 {
		return nil
	}
	var count int
	// Table names come from the fixed list above, never from input.
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
		return fmt.Errorf("counting %s: %w", table, err)
	}
	if count > 0 {
		return nil
	}
	return insert()
}

// ListProducts returns all products in insertion order.
func (s *catalogStore) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT id, name, price, category, variants, stock FROM products ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var p domain.Product
		var variants string
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Category, &variants, &p.Stock); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		p.Variants = splitVariants(variants)
		products = append(products, p)
	}
	return products, rows.Err()
}

// ListShippingRates returns all shipping rate rows in insertion order.
func (s *catalogStore) ListShippingRates(ctx context.Context) ([]domain.ShippingRate, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT city, fee FROM shipping_rates ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying shipping rates: %w", err)
	}
	defer rows.Close()

	rates := make([]domain.ShippingRate, 0)
	for rows.Next() {
		var r domain.ShippingRate
		if err := rows.Scan(&r.City, &r.Fee); err != nil {
			return nil, fmt.Errorf("scanning shipping rate: %w", err)
		}
		rates = append(rates, r)
	}
	return rates, rows.Err()
}

// ListProjects returns all project rows in insertion order.
func (s *catalogStore) ListProjects(ctx context.Context) ([]domain.Project, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT name, city, agency, status FROM projects ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	defer rows.Close()

	projects := make([]domain.Project, 0)
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.Name, &p.City, &p.Agency, &p.Status); err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// ListProjectItems returns the project/product join rows in insertion order.
func (s *catalogStore) ListProjectItems(ctx context.Context) ([]domain.ProjectItem, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT p.name, b.name, pp.quantity
		FROM project_products pp
		JOIN projects p ON pp.project_id = p.id
		JOIN products b ON pp.product_id = b.id
		ORDER BY pp.id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying project items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.ProjectItem, 0)
	for rows.Next() {
		var item domain.ProjectItem
		if err := rows.Scan(&item.Project, &item.Product, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scanning project item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// splitVariants splits the stored tags. An empty column yields an empty slice.
func splitVariants(stored string) []string {
	out := make([]string, 0)
	if strings.TrimSpace(stored) == "" {
		return out
	}
	for _, v := range strings.Split(stored, variantSeparator) {
		out = append(out, strings.TrimSpace(v))
	}
	return out
}
