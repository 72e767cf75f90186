package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScannedItem_Validate(t *testing.T) {
	var missing *ScannedItem
	assert.NoError(t, missing.Validate())
	assert.NoError(t, (&ScannedItem{Name: "Kite", Price: 0}).Validate())
	assert.ErrorIs(t, (&ScannedItem{Name: "Kite", Price: -1}).Validate(), ErrNegativePrice)
	assert.ErrorIs(t, (&ScannedItem{Name: "", Price: 3}).Validate(), ErrMissingName)
	assert.ErrorIs(t, (&ScannedItem{Name: " \t ", Price: 3}).Validate(), ErrMissingName)
}

func TestScannedItem_Clone(t *testing.T) {
	var missing *ScannedItem
	assert.Nil(t, missing.Clone())

	orig := &ScannedItem{Name: "Kite", Price: 18, FinancialInfo: &FinancialInfo{Term: "Want"}}
	c := orig.Clone()
	assert.Equal(t, orig, c)

	c.Price = 1
	c.FinancialInfo.Term = "Need"
	assert.Equal(t, 18, orig.Price)
	assert.Equal(t, "Want", orig.FinancialInfo.Term)
}

func TestScannedItem_Defaults(t *testing.T) {
	var missing *ScannedItem
	assert.Equal(t, PlaceholderName, missing.DisplayName())
	assert.Equal(t, 0, missing.PriceOrZero())

	blank := &ScannedItem{Name: "  ", Price: 7}
	assert.Equal(t, "Thing", blank.DisplayName())
	assert.Equal(t, 7, blank.PriceOrZero())

	assert.Equal(t, "Kite", (&ScannedItem{Name: "Kite"}).DisplayName())
}
