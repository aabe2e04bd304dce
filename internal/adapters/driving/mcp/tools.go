package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/lapak/internal/core/domain"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question about products, prices, stock, shipping or projects"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Question   string               `json:"question"`
	Answer     string               `json:"answer"`
	Structured bool                 `json:"structured"`
	Fields     []domain.AnswerField `json:"fields,omitempty"`
	Sources    []string             `json:"sources,omitempty"`
}

// SearchProductsInput is the input schema for the search_products tool.
type SearchProductsInput struct {
	Query string `json:"query" jsonschema:"case-insensitive substring of the product name"`
}

// ProductsOutput lists catalog products.
type ProductsOutput struct {
	Products []domain.Product `json:"products"`
	Count    int              `json:"count"`
}

// QuoteInput is the input schema for the quote tool.
type QuoteInput struct {
	Items []domain.CartItem `json:"items" jsonschema:"products and quantities to price"`
	City  string            `json:"city" jsonschema:"delivery city for the shipping fee"`
}

// LowStockInput is the input schema for the low_stock tool.
type LowStockInput struct {
	Threshold int `json:"threshold,omitempty" jsonschema:"stock level below which a product is reported (default 2)"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	if s.ports.Assistant != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ask",
			Description: "Ask the catalog assistant a free-text question",
		}, s.handleAsk)
	}

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_products",
		Description: "Find products whose name contains the query",
	}, s.handleSearchProducts)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "quote",
		Description: "Price a cart including shipping and the bulk discount",
	}, s.handleQuote)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "low_stock",
		Description: "List products with stock below a threshold",
	}, s.handleLowStock)
}

func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	answer, err := s.ports.Assistant.Ask(ctx, input.Question)
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Question:   answer.Question,
		Answer:     answer.Text,
		Structured: answer.Structured,
		Fields:     answer.Fields,
	}
	for _, src := range answer.Sources {
		output.Sources = append(output.Sources, src.Source)
	}
	return nil, output, nil
}

func (s *Server) handleSearchProducts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchProductsInput,
) (*mcp.CallToolResult, ProductsOutput, error) {
	products, err := s.ports.Catalog.SearchProducts(ctx, input.Query)
	if err != nil {
		return nil, ProductsOutput{}, err
	}
	return nil, productsOutput(products), nil
}

func (s *Server) handleQuote(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QuoteInput,
) (*mcp.CallToolResult, domain.Quote, error) {
	if len(input.Items) == 0 {
		return nil, domain.Quote{}, fmt.Errorf("%w: at least one item is required", domain.ErrInvalidInput)
	}
	quote, err := s.ports.Catalog.Quote(ctx, input.Items, input.City)
	if err != nil {
		return nil, domain.Quote{}, err
	}
	return nil, *quote, nil
}

func (s *Server) handleLowStock(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LowStockInput,
) (*mcp.CallToolResult, ProductsOutput, error) {
	threshold := input.Threshold
	if threshold <= 0 {
		threshold = domain.DefaultLowStockLimit
	}

	products, err := s.ports.Catalog.LowStock(ctx, threshold)
	if err != nil {
		return nil, ProductsOutput{}, err
	}
	return nil, productsOutput(products), nil
}

func productsOutput(products []domain.Product) ProductsOutput {
	if products == nil {
		products = []domain.Product{}
	}
	return ProductsOutput{Products: products, Count: len(products)}
}
