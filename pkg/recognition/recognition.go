package recognition

import (
	"context"
	"strings"

	"github.com/jwebster45206/nitecrawlers/pkg/item"
)

// Recognizer turns a camera label (or typed name) into a priced item.
// Real implementations call an image labelling service; the engine only
// consumes the result.
type Recognizer interface {
	Recognize(ctx context.Context, label string) (*item.ScannedItem, error)
}

// PriceEstimate is the heuristic price and category for a label.
type PriceEstimate struct {
	Price    int
	Category string
}

type priceRule struct {
	keywords []string
	estimate PriceEstimate
}

// Checked in order; first keyword hit wins.
var priceRules = []priceRule{
	{[]string{"shoe", "sneaker"}, PriceEstimate{85, "fashion"}},
	{[]string{"cup", "mug", "bottle"}, PriceEstimate{15, "home"}},
	{[]string{"phone", "electronic", "laptop"}, PriceEstimate{800, "tech"}},
	{[]string{"book", "paper"}, PriceEstimate{20, "education"}},
	{[]string{"toy", "game"}, PriceEstimate{35, "entertainment"}},
	{[]string{"food", "snack", "fruit"}, PriceEstimate{5, "food"}},
	{[]string{"watch"}, PriceEstimate{150, "fashion"}},
}

// DefaultEstimate is used when no keyword matches.
var DefaultEstimate = PriceEstimate{Price: 25, Category: "general"}

// EstimatePrice guesses a price from keywords in the label.
func EstimatePrice(label string) PriceEstimate {
	l := strings.ToLower(label)
	for _, rule := range priceRules {
		for _, kw := range rule.keywords {
			if strings.Contains(l, kw) {
				return rule.estimate
			}
		}
	}
	return DefaultEstimate
}
