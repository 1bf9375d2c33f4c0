package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCartItemSubtotal(t *testing.T) {
	item := CartItem{
		Quantity: 3,
		Product:  Product{Price: decimal.NewFromFloat(19.99)},
	}

	assert.True(t, item.Subtotal().Equal(decimal.NewFromFloat(59.97)),
		"expected 59.97, got %s", item.Subtotal())
}

func TestCartItemsTotal(t *testing.T) {
	testCases := []struct {
		name     string
		items    []CartItem
		expected string
	}{
		{
			name:     "Empty cart",
			items:    nil,
			expected: "0",
		},
		{
			name: "Single line",
			items: []CartItem{
				{Quantity: 2, Product: Product{Price: decimal.NewFromFloat(10.00)}},
			},
			expected: "20",
		},
		{
			name: "Multiple lines",
			items: []CartItem{
				{Quantity: 2, Product: Product{Price: decimal.NewFromFloat(10.00)}},
				{Quantity: 1, Product: Product{Price: decimal.NewFromFloat(5.00)}},
			},
			expected: "25",
		},
		{
			name: "Cent amounts stay exact",
			items: []CartItem{
				{Quantity: 3, Product: Product{Price: decimal.NewFromFloat(0.10)}},
			},
			expected: "0.3",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			expected, err := decimal.NewFromString(tc.expected)
			assert.NoError(t, err)
			assert.True(t, CartItemsTotal(tc.items).Equal(expected),
				"expected %s, got %s", expected, CartItemsTotal(tc.items))
		})
	}
}
