package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePriceBand(t *testing.T) {
	for in, want := range map[string]PriceBand{
		"": PriceAll, "all": PriceAll, "LOW": PriceLow, " medium ": PriceMedium, "high": PriceHigh,
	} {
		got, ok := ParsePriceBand(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParsePriceBand("cheap")
	assert.False(t, ok)
}

func TestPriceBand_Contains(t *testing.T) {
	tests := []struct {
		band  PriceBand
		price float64
		want  bool
	}{
		{PriceLow, 50, true},
		{PriceLow, 50.01, false},
		{PriceMedium, 50, false},
		{PriceMedium, 150, true},
		{PriceHigh, 150, false},
		{PriceHigh, 151, true},
		{PriceAll, 9999, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.band.Contains(tt.price), "%s %v", tt.band, tt.price)
	}
}

func TestFilter_Match(t *testing.T) {
	onion := CatalogItem{Name: "Red Onion", Price: 30, Category: "vegetables", Supplier: Supplier{Name: "Green Farm"}}

	assert.True(t, Filter{}.Match(onion))
	assert.True(t, Filter{Query: "onion"}.Match(onion))
	assert.True(t, Filter{Query: "green"}.Match(onion))
	assert.False(t, Filter{Query: "garlic"}.Match(onion))
	assert.True(t, Filter{Category: "all"}.Match(onion))
	assert.False(t, Filter{Category: "spices"}.Match(onion))
	assert.True(t, Filter{Price: PriceLow}.Match(onion))
	assert.False(t, Filter{Price: PriceHigh}.Match(onion))
}
