package cart

import "github.com/shopspring/decimal"

// LineItem pairs a product reference with a quantity. The cart holds at most
// one line item per product id.
type LineItem struct {
	ID       int64           `json:"id"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Quantity int64           `json:"quantity"`
}

// snapshot is the shape persisted under the cart storage key.
type snapshot struct {
	Items []LineItem `json:"items"`
}
