package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/ctrl-sourav/Nexus-cart/internal/cart"

	"github.com/spf13/cobra"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage the local shopping cart",
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show cart contents and total",
	RunE: func(cmd *cobra.Command, args []string) error {
		renderCart(os.Stdout, deps.cart.Items(), deps.cart.TotalPrice())
		return nil
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Add a product to the cart (repeat to raise the quantity)",
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

		return deps.cart.AddItem(cmd.Context(), cart.LineItem{
			ID:    product.ID,
			Title: product.Title,
			Price: product.Price,
			Image: product.Image,
		})
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <product-id>",
	Short: "Remove a line item from the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}
		return deps.cart.RemoveItem(cmd.Context(), id)
	},
}

var cartQtyCmd = &cobra.Command{
	Use:   "qty <product-id> <quantity>",
	Short: "Set the quantity for a line item (0 removes it)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}
		qty, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[1])
		}
		return deps.cart.UpdateQuantity(cmd.Context(), id, qty)
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		return deps.cart.Clear(cmd.Context())
	},
}

func init() {
	cartCmd.AddCommand(cartShowCmd)
	cartCmd.AddCommand(cartAddCmd)
	cartCmd.AddCommand(cartRemoveCmd)
	cartCmd.AddCommand(cartQtyCmd)
	cartCmd.AddCommand(cartClearCmd)
}
