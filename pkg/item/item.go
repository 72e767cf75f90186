package item

import (
	"errors"
	"strings"
)

// PlaceholderName is used when a decision is made without an item.
const PlaceholderName = "Thing"

var (
	ErrNegativePrice = errors.New("item price cannot be negative")
	ErrMissingName   = errors.New("item name is required")
)

// FinancialInfo is a short lesson attached to a recognized item.
type FinancialInfo struct {
	Term             string `json:"term"`
	SimpleDefinition string `json:"simpleDefinition"`
	KidExplanation   string `json:"kidExplanation"`
}

// ScannedItem is produced by the recognition collaborator and consumed
// once by a decision. It is never persisted directly.
type ScannedItem struct {
	Name          string         `json:"name"`
	Price         int            `json:"price"`
	Category      string         `json:"category"`
	FinancialInfo *FinancialInfo `json:"financialInfo,omitempty"`
}

// Validate rejects items that cannot be named or priced. A nil item is
// valid and stands for the placeholder.
func (i *ScannedItem) Validate() error {
	if i == nil {
		return nil
	}
	if strings.TrimSpace(i.Name) == "" {
		return ErrMissingName
	}
	if i.Price < 0 {
		return ErrNegativePrice
	}
	return nil
}

// DisplayName returns the item name, or the placeholder for a missing item.
func (i *ScannedItem) DisplayName() string {
	if i == nil || strings.TrimSpace(i.Name) == "" {
		return PlaceholderName
	}
	return i.Name
}

// Clone returns a copy that shares no memory with i.
func (i *ScannedItem) Clone() *ScannedItem {
	if i == nil {
		return nil
	}
	c := *i
	c.FinancialInfo = i.FinancialInfo.Clone()
	return &c
}

func (f *FinancialInfo) Clone() *FinancialInfo {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}

// PriceOrZero returns the price, treating a missing item as free.
func (i *ScannedItem) PriceOrZero() int {
	if i == nil {
		return 0
	}
	return i.Price
}
