package integration

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProduct_HasSpecialPrice(t *testing.T) {
	tests := []struct {
		name   string
		promo  string
		retail string
		want   bool
	}{
		{name: "promo below retail", promo: "8.00", retail: "10.00", want: true},
		{name: "promo above retail", promo: "12.00", retail: "10.00", want: false},
		{name: "promo equals retail", promo: "10.00", retail: "10.00", want: false},
		{name: "promo unset", promo: "0", retail: "10.00", want: false},
		{name: "negative promo", promo: "-1.00", retail: "10.00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Product{
				RetailPrice: decimal.RequireFromString(tt.retail),
				PromoPrice:  decimal.RequireFromString(tt.promo),
			}
			assert.Equal(t, tt.want, p.HasSpecialPrice())
		})
	}
}

func TestProduct_InStock(t *testing.T) {
	p := &Product{Quantity: decimal.NewFromInt(3)}
	assert.True(t, p.InStock())

	p.Quantity = decimal.Zero
	assert.False(t, p.InStock())

	p.Quantity = decimal.NewFromFloat(-2)
	assert.False(t, p.InStock())
}
