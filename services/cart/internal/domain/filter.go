package domain

import "strings"

type PriceBand string

const (
	PriceAll    PriceBand = "all"
	PriceLow    PriceBand = "low"
	PriceMedium PriceBand = "medium"
	PriceHigh   PriceBand = "high"

	CategoryAll = "all"

	lowCeiling    = 50
	mediumCeiling = 150
)

// Filter mirrors the marketplace search box, category tabs and price chips.
type Filter struct {
	Query    string
	Category string
	Price    PriceBand
}

func ParsePriceBand(s string) (PriceBand, bool) {
	switch PriceBand(strings.ToLower(strings.TrimSpace(s))) {
	case "", PriceAll:
		return PriceAll, true
	case PriceLow:
		return PriceLow, true
	case PriceMedium:
		return PriceMedium, true
	case PriceHigh:
		return PriceHigh, true
	}
	return "", false
}

// Bounds returns the price interval (lo, hi] of the band. A zero hi means no ceiling.
func (b PriceBand) Bounds() (lo, hi float64) {
	switch b {
	case PriceLow:
		return 0, lowCeiling
	case PriceMedium:
		return lowCeiling, mediumCeiling
	case PriceHigh:
		return mediumCeiling, 0
	}
	return 0, 0
}

func (b PriceBand) Contains(price float64) bool {
	switch b {
	case PriceLow:
		return price <= lowCeiling
	case PriceMedium:
		return price > lowCeiling && price <= mediumCeiling
	case PriceHigh:
		return price > mediumCeiling
	}
	return true
}

func (f Filter) Match(item CatalogItem) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(item.Name), q) &&
			!strings.Contains(strings.ToLower(item.Supplier.Name), q) {
			return false
		}
	}
	if f.Category != "" && f.Category != CategoryAll && !strings.EqualFold(f.Category, item.Category) {
		return false
	}
	return f.Price.Contains(item.Price)
}
