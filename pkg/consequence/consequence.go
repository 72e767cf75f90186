package consequence

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jwebster45206/nitecrawlers/pkg/item"
	"github.com/jwebster45206/nitecrawlers/pkg/profile"
)

// Action is the player's response to a scanned item.
type Action string

const (
	ActionBuy   Action = "buy"
	ActionLater Action = "later"
	ActionSkip  Action = "skip"
)

var ErrUnrecognizedAction = errors.New("unrecognized action")

// Actions lists every valid action in display order.
var Actions = []Action{ActionBuy, ActionLater, ActionSkip}

// ParseAction returns the canonical action for s.
func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	if !a.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnrecognizedAction, s)
	}
	return a, nil
}

func (a Action) Valid() bool {
	switch a {
	case ActionBuy, ActionLater, ActionSkip:
		return true
	}
	return false
}

// Kind names the message class of an outcome.
type Kind string

const (
	KindBought            Kind = "bought"
	KindInsufficientFunds Kind = "insufficient_funds"
	KindWishlisted        Kind = "wishlisted"
	KindSkipped           Kind = "skipped"
)

const (
	buyLiteracy          = -10
	insufficientLiteracy = -2
	laterLiteracy        = 5
	laterGrowth          = 1
	skipLiteracy         = 15
	skipGrowth           = 2
	savingsMultiplier    = 4 // projected monthly savings if the skip is repeated weekly
	daysPerDecision      = 1
)

// Outcome is the delta produced by a decision. It is applied by the caller.
type Outcome struct {
	Kind              Kind               `json:"kind"`
	Message           string             `json:"message"`
	MoneyDelta        int                `json:"money_delta"`
	LiteracyDelta     int                `json:"literacy_delta"`
	GrowthDelta       int                `json:"growth_delta"`
	DaysDelta         int                `json:"days_delta"`
	SavingsPrediction int                `json:"savings_prediction"`
	StatsDelta        profile.Statistics `json:"stats_delta"`
}

// Decide maps an action on an item to an outcome. It never mutates p.
// A nil item is treated as a free placeholder.
func Decide(action Action, it *item.ScannedItem, p profile.PlayerProfile) (Outcome, error) {
	price := it.PriceOrZero()
	name := it.DisplayName()

	out := Outcome{DaysDelta: daysPerDecision}

	switch action {
	case ActionBuy:
		if p.Money >= price {
			out.Kind = KindBought
			out.MoneyDelta = -price
			out.LiteracyDelta = buyLiteracy
			out.Message = fmt.Sprintf("You bought the %s. It's cool, but your wallet (and XP) took a hit!", name)
			out.StatsDelta = profile.Statistics{WantsBought: 1, TotalSpent: price}
		} else {
			out.Kind = KindInsufficientFunds
			out.LiteracyDelta = insufficientLiteracy
			out.Message = fmt.Sprintf("You don't have enough money for the %s.", name)
		}

	case ActionLater:
		out.Kind = KindWishlisted
		out.LiteracyDelta = laterLiteracy
		out.GrowthDelta = laterGrowth
		out.Message = fmt.Sprintf("Smart move! Putting the %s on your wishlist gives you time to think.", name)
		out.StatsDelta = profile.Statistics{SavedForLater: 1}

	case ActionSkip:
		out.Kind = KindSkipped
		out.LiteracyDelta = skipLiteracy
		out.GrowthDelta = skipGrowth
		out.SavingsPrediction = price * savingsMultiplier
		out.Message = fmt.Sprintf("Super saver! By skipping the %s, you kept $%d in your pocket!", name, price)
		out.StatsDelta = profile.Statistics{Skipped: 1, TotalSaved: price}

	default:
		return Outcome{}, fmt.Errorf("%w: %q", ErrUnrecognizedAction, action)
	}

	return out, nil
}
