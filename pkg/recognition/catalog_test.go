package recognition

import (
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/nitecrawlers/pkg/item"
)

func TestEstimatePrice(t *testing.T) {
	tests := []struct {
		label    string
		price    int
		category string
	}{
		{"Running Shoe", 85, "fashion"},
		{"coffee mug", 15, "home"},
		{"Laptop", 800, "tech"},
		{"Paperback", 20, "education"},
		{"Board game", 35, "entertainment"},
		{"Fruit snack", 5, "food"},
		{"Wristwatch", 150, "fashion"},
		{"Lamp", 25, "general"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			est := EstimatePrice(tt.label)
			assert.Equal(t, tt.price, est.Price)
			assert.Equal(t, tt.category, est.Category)
		})
	}
}

func TestCatalog_Lookup(t *testing.T) {
	c := DefaultCatalog()

	tests := []struct {
		query string
		want  string
		found bool
	}{
		{"Bubble Tea", "Bubble Tea", true},
		{"bubble", "Bubble Tea", true},
		{"Headphnes", "Headphones", true}, // one edit away
		{"Comic Bok", "Comic Book", true},
		{"Telescope", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			it, ok := c.Lookup(tt.query)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				require.NotNil(t, it)
				assert.Equal(t, tt.want, it.Name)
			}
		})
	}
}

func TestCatalog_LookupReturnsCopy(t *testing.T) {
	c := DefaultCatalog()
	it, ok := c.Lookup("Bubble Tea")
	require.True(t, ok)

	it.Price = 1000
	again, _ := c.Lookup("Bubble Tea")
	assert.Equal(t, 8, again.Price)
}

func TestCatalog_CopiesLessonText(t *testing.T) {
	c := &Catalog{Items: []item.ScannedItem{{
		Name: "Kite", Price: 18, Category: "toy",
		FinancialInfo: &item.FinancialInfo{Term: "Want", SimpleDefinition: "Nice to have", KidExplanation: "Wind is free"},
	}}}

	it, ok := c.Lookup("kite")
	require.True(t, ok)
	it.FinancialInfo.Term = "Need"

	scanned, err := c.Random(rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	scanned.FinancialInfo.KidExplanation = "changed"

	assert.Equal(t, "Want", c.Items[0].FinancialInfo.Term)
	assert.Equal(t, "Wind is free", c.Items[0].FinancialInfo.KidExplanation)
}

func TestCatalog_Random(t *testing.T) {
	c := DefaultCatalog()
	rng := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 20; i++ {
		it, err := c.Random(rng)
		require.NoError(t, err)
		_, ok := c.Lookup(it.Name)
		assert.True(t, ok)
	}

	_, err := (&Catalog{}).Random(rng)
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestCatalog_Recognize(t *testing.T) {
	c := DefaultCatalog()
	ctx := context.Background()

	it, err := c.Recognize(ctx, "skateboard")
	require.NoError(t, err)
	assert.Equal(t, "New Skateboard", it.Name)
	assert.Equal(t, 120, it.Price)

	it, err = c.Recognize(ctx, "Water Bottle")
	require.NoError(t, err)
	assert.Equal(t, "Water Bottle", it.Name)
	assert.Equal(t, 15, it.Price)
	assert.Equal(t, "home", it.Category)

	_, err = c.Recognize(ctx, "   ")
	assert.Error(t, err)
}

func TestCatalog_Validate(t *testing.T) {
	assert.NoError(t, DefaultCatalog().Validate())
	assert.ErrorIs(t, (&Catalog{}).Validate(), ErrEmptyCatalog)

	bad := &Catalog{Items: []item.ScannedItem{
		{Name: "Snack", Price: 3},
		{Name: "Snack", Price: 4},
		{Name: "", Price: 1},
		{Name: "Refund", Price: -5},
		{Name: "Stock", Price: 9, FinancialInfo: &item.FinancialInfo{}},
	}}
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate name")
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "negative")
	assert.Contains(t, err.Error(), "financialInfo.term")
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"items":[{"name":"Kite","price":18,"category":"toy",
		"financialInfo":{"term":"Budget","simpleDefinition":"A plan for money","kidExplanation":"Decide before you spend"}}]}`), 0o600))

	c, err := LoadCatalog(good)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, "Budget", c.Items[0].FinancialInfo.Term)

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"items":`), 0o600))
	_, err = LoadCatalog(broken)
	assert.Error(t, err)

	_, err = LoadCatalog(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
