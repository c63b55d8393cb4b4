package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateCommission(t *testing.T) {
	tests := []struct {
		name   string
		price  float64
		rate   float64
		amount float64
	}{
		{"integer result", 1000, 10, 100},
		{"rounds to cents", 80, 10, 8},
		{"fractional rate", 1500, 12.5, 187.5},
		{"rounds half up", 333, 15, 49.95},
		{"small price", 1, 10, 0.1},
		{"zero rate", 1000, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.amount, CalculateCommission(tt.price, tt.rate), 0.0001)
		})
	}
}

func TestCommission_IsPaid(t *testing.T) {
	assert.False(t, (&Commission{Status: CommissionPending}).IsPaid())
	assert.True(t, (&Commission{Status: CommissionPaid}).IsPaid())
}
