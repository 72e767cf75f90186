package ledger

import "github.com/jwebster45206/nitecrawlers/pkg/consequence"

// Transaction is one completed decision.
type Transaction struct {
	Day          int                `json:"day"` // day the action happened on
	Action       consequence.Action `json:"action"`
	ItemName     string             `json:"item_name"`
	AmountDelta  int                `json:"amount_delta"`
	BalanceAfter int                `json:"balance_after"`
}

// Ledger is an append-only record of decisions.
type Ledger struct {
	txs []Transaction
}

func New() *Ledger {
	return &Ledger{txs: make([]Transaction, 0)}
}

// Restore rebuilds a ledger from persisted transactions.
func Restore(txs []Transaction) *Ledger {
	l := New()
	l.txs = append(l.txs, txs...)
	return l
}

// Append records a decision and returns the stored transaction.
func (l *Ledger) Append(day int, action consequence.Action, itemName string, amountDelta, balanceAfter int) Transaction {
	tx := Transaction{
		Day:          day,
		Action:       action,
		ItemName:     itemName,
		AmountDelta:  amountDelta,
		BalanceAfter: balanceAfter,
	}
	l.txs = append(l.txs, tx)
	return tx
}

// Entries returns a copy of all transactions in insertion order.
func (l *Ledger) Entries() []Transaction {
	out := make([]Transaction, len(l.txs))
	copy(out, l.txs)
	return out
}

func (l *Ledger) Len() int {
	return len(l.txs)
}
