package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/ctrl-sourav/Nexus-cart/internal/cart"
	"github.com/ctrl-sourav/Nexus-cart/internal/catalog"
	"github.com/ctrl-sourav/Nexus-cart/internal/events"
	"github.com/ctrl-sourav/Nexus-cart/internal/wishlist"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	priceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	toastStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// money rounds for display only; internal arithmetic stays exact.
func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func renderError(err error) string {
	return errStyle.Render("error: ") + err.Error()
}

func renderProducts(w io.Writer, products []catalog.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, dimStyle.Render("no products match the current filters"))
		return
	}

	for _, p := range products {
		fmt.Fprintf(w, "%4d  %s  %s\n", p.ID, titleStyle.Render(p.Title), priceStyle.Render(money(p.Price)))
		fmt.Fprintf(w, "      %s\n", dimStyle.Render(
			fmt.Sprintf("%s · %s (%d ratings)", p.Category, p.Rating.Rate.StringFixed(1), p.Rating.Count)))
	}
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("%d product(s)", len(products))))
}

func renderCart(w io.Writer, items []cart.LineItem, total decimal.Decimal) {
	if len(items) == 0 {
		fmt.Fprintln(w, dimStyle.Render("your cart is empty"))
		return
	}

	for _, item := range items {
		line := item.Price.Mul(decimal.NewFromInt(item.Quantity))
		fmt.Fprintf(w, "%4d  %s  %s × %d = %s\n",
			item.ID,
			titleStyle.Render(item.Title),
			money(item.Price),
			item.Quantity,
			priceStyle.Render(money(line)),
		)
	}
	fmt.Fprintln(w, strings.Repeat("─", 32))
	fmt.Fprintf(w, "total %s\n", priceStyle.Render(money(total)))
}

func renderWishlist(w io.Writer, items []wishlist.Entry) {
	if len(items) == 0 {
		fmt.Fprintln(w, dimStyle.Render("your wishlist is empty"))
		return
	}

	for _, entry := range items {
		fmt.Fprintf(w, "%4d  %s  %s\n", entry.ID, titleStyle.Render(entry.Title), priceStyle.Render(money(entry.Price)))
	}
}

var toastMessages = map[string]map[string]string{
	events.EntityCart: {
		"item_added":       "added to cart",
		"item_removed":     "removed from cart",
		"quantity_updated": "cart quantity updated",
		"cleared":          "cart cleared",
	},
	events.EntityWishlist: {
		"item_added":   "added to wishlist",
		"item_removed": "removed from wishlist",
		"cleared":      "wishlist cleared",
	},
	events.EntityAuth: {
		"login":  "welcome back!",
		"signup": "account created",
		"logout": "logged out",
	},
}

// toastSubscriber turns mutation events into the one-line notices the web UI
// showed as toasts.
func toastSubscriber(w io.Writer) events.Subscriber {
	return func(e events.Event) {
		if msg, ok := toastMessages[e.Entity][e.Type]; ok {
			fmt.Fprintln(w, toastStyle.Render("✓ "+msg))
		}
	}
}
