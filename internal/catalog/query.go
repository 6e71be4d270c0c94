package catalog

import (
	"sort"
	"strings"

	"github.com/ctrl-sourav/Nexus-cart/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// CategoryAll matches every category.
const CategoryAll = "all"

type SortKey string

const (
	SortDefault   SortKey = "default"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
)

var defaultPriceMax = decimal.NewFromInt(1000)

// QueryParams is the transient query state the UI feeds into Search. Passed
// by value; the pipeline never holds on to it.
type QueryParams struct {
	Category string  `validate:"required"`
	Search   string
	PriceMin decimal.Decimal
	PriceMax decimal.Decimal
	Sort     SortKey `validate:"required,oneof=default price-low price-high rating"`
}

func DefaultParams() QueryParams {
	return QueryParams{
		Category: CategoryAll,
		PriceMin: decimal.Zero,
		PriceMax: defaultPriceMax,
		Sort:     SortDefault,
	}
}

// Normalize fills zero values with the UI defaults so a partially populated
// params struct behaves like the initial page state.
func (p QueryParams) Normalize() QueryParams {
	if p.Category == "" {
		p.Category = CategoryAll
	}
	if p.Sort == "" {
		p.Sort = SortDefault
	}
	if p.PriceMin.IsZero() && p.PriceMax.IsZero() {
		p.PriceMax = defaultPriceMax
	}
	return p
}

var validate = validator.New()

var ErrInvalidRange = apperror.New(apperror.CodeInvalidInput, "price range minimum exceeds maximum")

func (p QueryParams) Validate() error {
	if err := validate.Struct(p); err != nil {
		return apperror.Wrap(err, apperror.CodeInvalidInput, "invalid query parameters")
	}
	if p.PriceMin.GreaterThan(p.PriceMax) {
		return ErrInvalidRange
	}
	return nil
}

// Search applies the category, title and price filters followed by the
// requested sort, in that fixed order. It is pure: the input slice is never
// reordered or mutated and the result is always a fresh slice.
func Search(products []Product, params QueryParams) []Product {
	needle := strings.ToLower(params.Search)

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if params.Category != CategoryAll && p.Category != params.Category {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(p.Title), needle) {
			continue
		}
		if p.Price.LessThan(params.PriceMin) || p.Price.GreaterThan(params.PriceMax) {
			continue
		}
		out = append(out, p)
	}

	// SortDefault keeps fetch order, so skip sorting entirely rather than
	// trusting a zero-returning comparator.
	switch params.Sort {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price.LessThan(out[j].Price)
		})
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price.GreaterThan(out[j].Price)
		})
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Rating.Rate.GreaterThan(out[j].Rating.Rate)
		})
	}

	return out
}
