package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/ctrl-sourav/Nexus-cart/internal/catalog"
	"github.com/ctrl-sourav/Nexus-cart/internal/wishlist"

	"github.com/spf13/cobra"
)

var wishlistCmd = &cobra.Command{
	Use:   "wishlist",
	Short: "Manage the local wishlist",
}

var wishlistShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show saved products",
	RunE: func(cmd *cobra.Command, args []string) error {
		renderWishlist(os.Stdout, deps.wishlist.Items())
		return nil
	},
}

var wishlistAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Save a product (duplicates are ignored)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}

		product, err := findProduct(cmd, id)
		if err != nil {
			return err
		}

		return deps.wishlist.AddItem(cmd.Context(), wishlist.Entry{
			ID:    product.ID,
			Title: product.Title,
			Price: product.Price,
			Image: product.Image,
		})
	},
}

var wishlistRemoveCmd = &cobra.Command{
	Use:   "remove <product-id>",
	Short: "Remove a saved product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}
		return deps.wishlist.RemoveItem(cmd.Context(), id)
	},
}

var wishlistClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the wishlist",
	RunE: func(cmd *cobra.Command, args []string) error {
		return deps.wishlist.Clear(cmd.Context())
	},
}

// findProduct fetches the catalog and picks one product by id. The add
// commands need the full record because line items and wishlist entries
// carry a product snapshot, not just the id.
func findProduct(cmd *cobra.Command, id int64) (catalog.Product, error) {
	products, err := deps.catalog.Products(cmd.Context())
	if err != nil {
		return catalog.Product{}, err
	}

	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return catalog.Product{}, fmt.Errorf("product %d not found in catalog", id)
}

func init() {
	wishlistCmd.AddCommand(wishlistShowCmd)
	wishlistCmd.AddCommand(wishlistAddCmd)
	wishlistCmd.AddCommand(wishlistRemoveCmd)
	wishlistCmd.AddCommand(wishlistClearCmd)
}
