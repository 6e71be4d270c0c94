package wishlist

import "github.com/shopspring/decimal"

// Entry is one saved product reference. The wishlist is a set keyed by ID;
// there are no quantities and no ordering guarantees beyond insertion order.
type Entry struct {
	ID    int64           `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}

type snapshot struct {
	Items []Entry `json:"items"`
}
