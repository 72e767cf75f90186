package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/nitecrawlers/pkg/consequence"
)

func TestLedger_AppendKeepsOrder(t *testing.T) {
	l := New()
	l.Append(1, consequence.ActionSkip, "Bubble Tea", 0, 50)
	l.Append(2, consequence.ActionBuy, "Comic Book", -12, 38)

	txs := l.Entries()
	require.Len(t, txs, 2)
	assert.Equal(t, Transaction{Day: 1, Action: consequence.ActionSkip, ItemName: "Bubble Tea", AmountDelta: 0, BalanceAfter: 50}, txs[0])
	assert.Equal(t, "Comic Book", txs[1].ItemName)
	assert.Equal(t, -12, txs[1].AmountDelta)
}

func TestLedger_EntriesAreImmutable(t *testing.T) {
	l := New()
	l.Append(1, consequence.ActionLater, "Headphones", 0, 50)

	txs := l.Entries()
	txs[0].BalanceAfter = 999

	assert.Equal(t, 50, l.Entries()[0].BalanceAfter)
}

func TestRestore(t *testing.T) {
	l := Restore([]Transaction{{Day: 3, Action: consequence.ActionBuy, ItemName: "Watch", AmountDelta: -150, BalanceAfter: 0}})
	l.Append(4, consequence.ActionSkip, "Snack", 0, 0)

	assert.Equal(t, 2, l.Len())
	assert.Equal(t, 3, l.Entries()[0].Day)
}
