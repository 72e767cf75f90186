package services

import (
	"context"

	"github.com/jwebster45206/nitecrawlers/pkg/consequence"
)

// AdviceRequest describes a completed decision to the advice provider.
type AdviceRequest struct {
	Action           consequence.Action
	ItemName         string
	Price            int
	ResultingBalance int
}

// AdviceService defines the interface for the external advice provider
type AdviceService interface {
	// GetAdvice returns a short tip for the decision. Any error means the
	// caller should fall back to FallbackTip.
	GetAdvice(ctx context.Context, req AdviceRequest) (string, error)
}

var fallbackTips = map[consequence.Action]string{
	consequence.ActionBuy:   "Buying things for fun lowers your savings power. Try to save up for bigger goals!",
	consequence.ActionLater: "Waiting gives you time to decide if you *really* need it.",
	consequence.ActionSkip:  "By saying 'No' today, you kept cash for something better tomorrow!",
}

// FallbackTip returns the fixed local tip for an action.
func FallbackTip(action consequence.Action) string {
	if tip, ok := fallbackTips[action]; ok {
		return tip
	}
	return fallbackTips[consequence.ActionSkip]
}

// wireAction maps an action to the phrase the provider expects.
func wireAction(action consequence.Action) string {
	switch action {
	case consequence.ActionLater:
		return "saving for later"
	case consequence.ActionSkip:
		return "skipping"
	default:
		return "buying"
	}
}
