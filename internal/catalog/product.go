package catalog

import "github.com/shopspring/decimal"

// Product mirrors one record from the public product source. Records are
// immutable once fetched; the query pipeline only ever reads them.
type Product struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Rating      Rating          `json:"rating"`
}

type Rating struct {
	Rate  decimal.Decimal `json:"rate"`
	Count int64           `json:"count"`
}
