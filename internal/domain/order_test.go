package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextOrderNumber(t *testing.T) {
	tests := []struct {
		name        string
		maxExisting uint64
		expected    string
	}{
		{name: "no prior numeric order starts at 1000", maxExisting: 0, expected: "1000"},
		{name: "increments the current maximum", maxExisting: 1000, expected: "1001"},
		{name: "nth order is 999+n", maxExisting: 1041, expected: "1042"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NextOrderNumber(tt.maxExisting))
		})
	}
}

func TestOrderItem_LineTotal(t *testing.T) {
	item := OrderItem{Quantity: 3, UnitPrice: 649}
	assert.Equal(t, int64(1947), item.LineTotal())
}

func TestPaymentMethod_Label(t *testing.T) {
	assert.Equal(t, "Cash on Delivery", PaymentCOD.Label())
	assert.Equal(t, "UPI (QR)", PaymentUPI.Label())
	// Unrecognized values read as the default method.
	assert.Equal(t, "Cash on Delivery", PaymentMethod("").Label())
}
