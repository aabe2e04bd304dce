package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lapak/internal/core/domain"
)

var (
	catalogJSON   bool
	documentsJSON bool
	searchJSON    bool
	lowStockLimit int
	lowStockJSON  bool
	quoteCity     string
	quoteJSON     bool
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show the catalog",
	Long: `Prints the products of the active variant together with the shipping
rates (shop) or the project list and item mapping (inventory).

The catalog is seeded on first use; seed rows are only inserted into
empty tables.`,
	Args: cobra.NoArgs,
	RunE: runCatalog,
}

var catalogDocumentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "Print the documents indexed for retrieval",
	Args:  cobra.NoArgs,
	RunE:  runCatalogDocuments,
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search products by name",
	Long:  `Lists products whose name contains the query, ignoring case.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

var lowStockCmd = &cobra.Command{
	Use:   "lowstock",
	Short: "List products running low on stock",
	Args:  cobra.NoArgs,
	RunE:  runLowStock,
}

var quoteCmd = &cobra.Command{
	Use:   "quote name=quantity [name=quantity...]",
	Short: "Price a shopping cart",
	Long: `Prices a cart without asking the chat model.

Orders of more than 3 items get 10% off the item subtotal. With --city the
shipping fee is added; cities without a rate use the "Luar Kota" rate.

Example:
  lapak quote "Baju Kemeja=2" "Celana Cino=2" --city Jakarta`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuote,
}

func init() {
	catalogCmd.Flags().BoolVar(&catalogJSON, "json", false, "output as JSON")
	catalogDocumentsCmd.Flags().BoolVar(&documentsJSON, "json", false, "output as JSON")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output as JSON")
	lowStockCmd.Flags().IntVarP(&lowStockLimit, "threshold", "t", domain.DefaultLowStockLimit,
		"report products with stock below this value")
	lowStockCmd.Flags().BoolVar(&lowStockJSON, "json", false, "output as JSON")
	quoteCmd.Flags().StringVarP(&quoteCity, "city", "c", "", "destination city for shipping")
	quoteCmd.Flags().BoolVar(&quoteJSON, "json", false, "output as JSON")

	catalogCmd.AddCommand(catalogDocumentsCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(lowStockCmd)
	rootCmd.AddCommand(quoteCmd)
}

func runCatalog(cmd *cobra.Command, _ []string) error {
	return withServices(cmd, func(svc *Services) error {
		snapshot, err := svc.Catalog.Snapshot(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to read catalog: %w", err)
		}
		if catalogJSON {
			return printJSON(cmd, snapshot)
		}

		cmd.Printf("Catalog (%s)\n\n", snapshot.Variant.Description())
		printProducts(cmd, snapshot.Variant, snapshot.Products)

		if len(snapshot.ShippingRates) > 0 {
			cmd.Println()
			cmd.Println("Shipping rates:")
			for _, r := range snapshot.ShippingRates {
				cmd.Printf("  %-12s %s\n", r.City, domain.FormatRupiah(r.Fee))
			}
		}
		if len(snapshot.Projects) > 0 {
			cmd.Println()
			cmd.Println("Projects:")
			for _, p := range snapshot.Projects {
				cmd.Printf("  %-12s %-10s %-10s %s\n", p.Name, p.City, p.Agency, p.Status)
			}
		}
		if len(snapshot.Allocations) > 0 {
			cmd.Println()
			cmd.Println("Project items:")
			for _, a := range snapshot.Allocations {
				lines := make([]string, len(a.Items))
				for i, item := range a.Items {
					lines[i] = item.Line()
				}
				cmd.Printf("  %s: %s\n", a.Project, strings.Join(lines, ", "))
			}
		}
		return nil
	})
}

func runCatalogDocuments(cmd *cobra.Command, _ []string) error {
	return withServices(cmd, func(svc *Services) error {
		docs, err := svc.Catalog.Documents(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to synthesize documents: %w", err)
		}
		if documentsJSON {
			return printJSON(cmd, docs)
		}
		for i, doc := range docs {
			if i > 0 {
				cmd.Println()
			}
			cmd.Printf("[%s]\n%s\n", doc.Source, doc.Content)
		}
		return nil
	})
}

func runSearch(cmd *cobra.Command, args []string) error {
	return withServices(cmd, func(svc *Services) error {
		products, err := svc.Catalog.SearchProducts(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		if searchJSON {
			return printJSON(cmd, products)
		}
		if len(products) == 0 {
			cmd.Println("No products found.")
			return nil
		}
		printProducts(cmd, svc.Catalog.Variant(), products)
		return nil
	})
}

func runLowStock(cmd *cobra.Command, _ []string) error {
	return withServices(cmd, func(svc *Services) error {
		products, err := svc.Catalog.LowStock(cmd.Context(), lowStockLimit)
		if err != nil {
			return fmt.Errorf("low stock check failed: %w", err)
		}
		if lowStockJSON {
			return printJSON(cmd, products)
		}
		if len(products) == 0 {
			cmd.Printf("No products with stock below %d.\n", lowStockLimit)
			return nil
		}
		cmd.Printf("Products with stock below %d:\n", lowStockLimit)
		for _, p := range products {
			cmd.Printf("  %s (stock: %d)\n", p.Name, p.Stock)
		}
		return nil
	})
}

func runQuote(cmd *cobra.Command, args []string) error {
	items := make([]domain.CartItem, 0, len(args))
	for _, arg := range args {
		item, err := domain.ParseCartItem(arg)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	return withServices(cmd, func(svc *Services) error {
		quote, err := svc.Catalog.Quote(cmd.Context(), items, quoteCity)
		if err != nil {
			return fmt.Errorf("quote failed: %w", err)
		}
		if quoteJSON {
			return printJSON(cmd, quote)
		}

		cmd.Println("Details:")
		for _, line := range quote.Lines {
			cmd.Printf("  %s (%d x %s) = %s\n",
				line.Product, line.Quantity, domain.FormatRupiah(line.UnitPrice), domain.FormatRupiah(line.Amount))
		}
		cmd.Printf("Subtotal: %s\n", domain.FormatRupiah(quote.Subtotal))
		if quote.DiscountApplied() {
			cmd.Printf("Discount (10%%, %d items): %s\n", quote.ItemCount, formatAmount(quote.Discounted))
		}
		if quote.City != "" {
			cmd.Printf("Shipping Cost: %s (destination: %s)\n", domain.FormatRupiah(quote.ShippingFee), quote.City)
		}
		cmd.Printf("Total: %s\n", formatAmount(quote.Total))
		return nil
	})
}

func printProducts(cmd *cobra.Command, variant domain.Variant, products []domain.Product) {
	cmd.Printf("  %-16s %-11s %-11s %-20s %s\n", "Name", "Category", "Price", variant.VariantsLabel(), "Stock")
	for _, p := range products {
		cmd.Printf("  %-16s %-11s %-11s %-20s %s\n",
			p.Name, p.Category, domain.FormatRupiah(p.Price), strings.Join(p.Variants, ", "), p.StockLabel())
	}
}

// formatAmount renders a possibly fractional rupiah amount to two decimals.
func formatAmount(v float64) string {
	cents := int64(math.Round(v * 100))
	if cents%100 == 0 {
		return domain.FormatRupiah(cents / 100)
	}
	return fmt.Sprintf("%s.%02d", domain.FormatRupiah(cents/100), cents%100)
}
