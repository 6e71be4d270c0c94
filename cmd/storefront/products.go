package main

import (
	"fmt"
	"os"

	"github.com/ctrl-sourav/Nexus-cart/internal/catalog"
	"github.com/ctrl-sourav/Nexus-cart/internal/config"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	flagCategory string
	flagSearch   string
	flagMinPrice float64
	flagMaxPrice float64
	flagSort     string
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Browse the catalog with filters and sorting",
	RunE: func(cmd *cobra.Command, args []string) error {
		products, err := deps.catalog.Products(cmd.Context())
		if err != nil {
			return err
		}

		params := buildQueryParams(cmd, deps.cfg.Query)
		if err := params.Validate(); err != nil {
			return err
		}

		renderProducts(os.Stdout, catalog.Search(products, params))
		return nil
	},
}

// buildQueryParams seeds the price range from configuration; --min-price and
// --max-price win over it only when passed explicitly.
func buildQueryParams(cmd *cobra.Command, q config.QueryConfig) catalog.QueryParams {
	params := catalog.QueryParams{
		Category: flagCategory,
		Search:   flagSearch,
		PriceMin: decimal.NewFromInt(q.PriceMin),
		PriceMax: decimal.NewFromInt(q.PriceMax),
		Sort:     catalog.SortKey(flagSort),
	}
	if cmd.Flags().Changed("min-price") {
		params.PriceMin = decimal.NewFromFloat(flagMinPrice)
	}
	if cmd.Flags().Changed("max-price") {
		params.PriceMax = decimal.NewFromFloat(flagMaxPrice)
	}
	return params.Normalize()
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the catalog categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		categories, err := deps.catalog.Categories(cmd.Context())
		if err != nil {
			return err
		}

		for _, category := range categories {
			fmt.Println(category)
		}
		return nil
	},
}

func registerProductFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagCategory, "category", catalog.CategoryAll, "exact category, or 'all'")
	cmd.Flags().StringVar(&flagSearch, "search", "", "case-insensitive title substring")
	cmd.Flags().Float64Var(&flagMinPrice, "min-price", 0, "minimum price, inclusive (default from config)")
	cmd.Flags().Float64Var(&flagMaxPrice, "max-price", 1000, "maximum price, inclusive (default from config)")
	cmd.Flags().StringVar(&flagSort, "sort", string(catalog.SortDefault),
		"sort order: default, price-low, price-high or rating")
}

func init() {
	registerProductFlags(productsCmd)
}
