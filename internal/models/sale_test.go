package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSaleEffectiveTotal(t *testing.T) {
	stored := Sale{Quantity: 2, Price: 50, TotalAmount: 95}
	assert.Equal(t, 95.0, stored.EffectiveTotal(), "explicit total wins")

	legacy := Sale{Quantity: 2, Price: 50}
	assert.Equal(t, 100.0, legacy.EffectiveTotal(), "legacy rows fall back to quantity*price")
}
