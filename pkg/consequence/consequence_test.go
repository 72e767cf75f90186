package consequence

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/nitecrawlers/pkg/item"
	"github.com/jwebster45206/nitecrawlers/pkg/profile"
)

func startingProfile() profile.PlayerProfile {
	return profile.PlayerProfile{Money: 50, Literacy: 30, GrowthStage: 1, Day: 1}
}

func TestDecide_Table(t *testing.T) {
	bubbleTea := &item.ScannedItem{Name: "Bubble Tea", Price: 8, Category: "food"}
	sneakers := &item.ScannedItem{Name: "Cool Sneakers", Price: 85, Category: "fashion"}

	tests := []struct {
		name       string
		action     Action
		item       *item.ScannedItem
		kind       Kind
		money      int
		literacy   int
		growth     int
		savings    int
		statsDelta profile.Statistics
	}{
		{
			name: "buy affordable", action: ActionBuy, item: bubbleTea,
			kind: KindBought, money: -8, literacy: -10,
			statsDelta: profile.Statistics{WantsBought: 1, TotalSpent: 8},
		},
		{
			name: "buy exact balance", action: ActionBuy, item: &item.ScannedItem{Name: "Game", Price: 50},
			kind: KindBought, money: -50, literacy: -10,
			statsDelta: profile.Statistics{WantsBought: 1, TotalSpent: 50},
		},
		{
			name: "buy insufficient funds", action: ActionBuy, item: sneakers,
			kind: KindInsufficientFunds, literacy: -2,
		},
		{
			name: "later", action: ActionLater, item: sneakers,
			kind: KindWishlisted, literacy: 5, growth: 1,
			statsDelta: profile.Statistics{SavedForLater: 1},
		},
		{
			name: "skip", action: ActionSkip, item: bubbleTea,
			kind: KindSkipped, literacy: 15, growth: 2, savings: 32,
			statsDelta: profile.Statistics{Skipped: 1, TotalSaved: 8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Decide(tt.action, tt.item, startingProfile())
			require.NoError(t, err)

			assert.Equal(t, tt.kind, out.Kind)
			assert.Equal(t, tt.money, out.MoneyDelta)
			assert.Equal(t, tt.literacy, out.LiteracyDelta)
			assert.Equal(t, tt.growth, out.GrowthDelta)
			assert.Equal(t, 1, out.DaysDelta, "every action advances one day")
			assert.Equal(t, tt.savings, out.SavingsPrediction)
			assert.Equal(t, tt.statsDelta, out.StatsDelta)
			assert.Contains(t, out.Message, tt.item.Name)
		})
	}
}

func TestDecide_DoesNotMutateProfile(t *testing.T) {
	p := startingProfile()
	before := p

	_, err := Decide(ActionBuy, &item.ScannedItem{Name: "Comic Book", Price: 12}, p)
	require.NoError(t, err)

	assert.Equal(t, before, p)
}

func TestDecide_NilItem(t *testing.T) {
	out, err := Decide(ActionSkip, nil, startingProfile())
	require.NoError(t, err)

	assert.Equal(t, 0, out.SavingsPrediction)
	assert.Equal(t, profile.Statistics{Skipped: 1}, out.StatsDelta)
	assert.Contains(t, out.Message, item.PlaceholderName)

	out, err = Decide(ActionBuy, nil, profile.PlayerProfile{Money: 0})
	require.NoError(t, err)
	assert.Equal(t, KindBought, out.Kind, "a free placeholder is always affordable")
	assert.Equal(t, 0, out.MoneyDelta)
}

func TestDecide_UnrecognizedAction(t *testing.T) {
	_, err := Decide(Action("steal"), &item.ScannedItem{Name: "Watch", Price: 150}, startingProfile())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnrecognizedAction))
}

func TestParseAction(t *testing.T) {
	for _, s := range []string{"buy", " LATER ", "Skip"} {
		a, err := ParseAction(s)
		require.NoError(t, err, s)
		assert.True(t, a.Valid())
	}

	_, err := ParseAction("scan")
	assert.ErrorIs(t, err, ErrUnrecognizedAction)

	_, err = ParseAction("")
	assert.ErrorIs(t, err, ErrUnrecognizedAction)
}
