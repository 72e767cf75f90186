package recognition

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jwebster45206/nitecrawlers/pkg/item"
)

// maxTypoDistance is how many edits a typed name may be from a catalogue name.
const maxTypoDistance = 2

var ErrEmptyCatalog = errors.New("catalog has no items")

// Catalog is a fixed list of demo items that stands in for a camera.
type Catalog struct {
	Items []item.ScannedItem `json:"items"`
}

// Ensure Catalog implements Recognizer interface
var _ Recognizer = (*Catalog)(nil)

// DefaultCatalog is used when no catalogue file is configured.
func DefaultCatalog() *Catalog {
	return &Catalog{Items: []item.ScannedItem{
		{Name: "Cool Sneakers", Price: 85, Category: "fashion"},
		{Name: "Vintage Game", Price: 45, Category: "entertainment"},
		{Name: "Bubble Tea", Price: 8, Category: "food"},
		{Name: "Action Figure", Price: 25, Category: "toy"},
		{Name: "Headphones", Price: 60, Category: "tech"},
		{Name: "Comic Book", Price: 12, Category: "book"},
		{Name: "New Skateboard", Price: 120, Category: "sport"},
	}}
}

// LoadCatalog reads a catalogue JSON file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", path, err)
	}
	return &c, nil
}

// Validate checks every item has a unique name and a non-negative price.
func (c *Catalog) Validate() error {
	if len(c.Items) == 0 {
		return ErrEmptyCatalog
	}
	var errs []error
	seen := make(map[string]bool, len(c.Items))
	for i, it := range c.Items {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			errs = append(errs, fmt.Errorf("item %d: name is required", i))
			continue
		}
		if seen[name] {
			errs = append(errs, fmt.Errorf("item %d: duplicate name %q", i, name))
		}
		seen[name] = true
		if err := it.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("item %d (%s): %w", i, name, err))
		}
		if fi := it.FinancialInfo; fi != nil && strings.TrimSpace(fi.Term) == "" {
			errs = append(errs, fmt.Errorf("item %d (%s): financialInfo.term is required", i, name))
		}
	}
	return errors.Join(errs...)
}

// Random picks an item, simulating a camera scan.
func (c *Catalog) Random(rng *rand.Rand) (*item.ScannedItem, error) {
	if len(c.Items) == 0 {
		return nil, ErrEmptyCatalog
	}
	return c.Items[rng.IntN(len(c.Items))].Clone(), nil
}

// Lookup finds an item by exact name, then case-insensitive substring,
// then by a small edit distance.
func (c *Catalog) Lookup(name string) (*item.ScannedItem, bool) {
	q := strings.ToLower(strings.TrimSpace(name))
	if q == "" {
		return nil, false
	}

	for i := range c.Items {
		if c.Items[i].Name == name {
			return c.Items[i].Clone(), true
		}
	}
	for i := range c.Items {
		n := strings.ToLower(c.Items[i].Name)
		if strings.Contains(n, q) || strings.Contains(q, n) {
			return c.Items[i].Clone(), true
		}
	}

	best, bestDist := -1, maxTypoDistance+1
	for i := range c.Items {
		d := levenshtein.ComputeDistance(q, strings.ToLower(c.Items[i].Name))
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return nil, false
	}
	return c.Items[best].Clone(), true
}

// Recognize returns the catalogue item for label, or a heuristically
// priced item named after the label.
func (c *Catalog) Recognize(ctx context.Context, label string) (*item.ScannedItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, fmt.Errorf("label is required")
	}
	if it, ok := c.Lookup(label); ok {
		return it, nil
	}
	est := EstimatePrice(label)
	return &item.ScannedItem{Name: label, Price: est.Price, Category: est.Category}, nil
}
