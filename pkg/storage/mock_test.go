package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/nitecrawlers/pkg/consequence"
	"github.com/jwebster45206/nitecrawlers/pkg/dictionary"
	"github.com/jwebster45206/nitecrawlers/pkg/item"
	"github.com/jwebster45206/nitecrawlers/pkg/ledger"
	"github.com/jwebster45206/nitecrawlers/pkg/profile"
)

func TestMockStorage_LoadEmptyReturnsDefaults(t *testing.T) {
	m := NewMockStorage()

	snap := m.Load(context.Background())
	require.NotNil(t, snap)
	assert.Equal(t, profile.Default(), snap.Profile)
	assert.True(t, snap.Stats.IsZero())
	assert.Empty(t, snap.Dictionary)
	assert.Empty(t, snap.Transactions)
}

func TestMockStorage_SaveAndLoad(t *testing.T) {
	m := NewMockStorage()
	ctx := context.Background()

	snap := DefaultSnapshot()
	snap.Profile.Money = 42
	snap.Transactions = append(snap.Transactions, ledger.Transaction{Day: 1, Action: consequence.ActionBuy, ItemName: "Snack", AmountDelta: -8, BalanceAfter: 42})

	require.NoError(t, m.Save(ctx, snap))
	assert.Equal(t, 1, m.SaveCount())

	// Mutating the caller's copy must not leak into storage
	snap.Transactions[0].BalanceAfter = 0

	loaded := m.Load(ctx)
	assert.Equal(t, 42, loaded.Profile.Money)
	assert.Equal(t, 42, loaded.Transactions[0].BalanceAfter)
}

func TestSnapshot_CloneIsDeep(t *testing.T) {
	snap := DefaultSnapshot()
	snap.Dictionary = []dictionary.Entry{{ID: "1", Name: "Kite", FinancialInfo: &item.FinancialInfo{Term: "Want"}}}

	c := snap.Clone()
	c.Dictionary[0].FinancialInfo.Term = "Need"
	c.Dictionary[0].Name = "Lamp"

	assert.Equal(t, "Want", snap.Dictionary[0].FinancialInfo.Term)
	assert.Equal(t, "Kite", snap.Dictionary[0].Name)
}

func TestMockStorage_Errors(t *testing.T) {
	m := NewMockStorage()
	ctx := context.Background()

	m.SetPingError(errors.New("down"))
	assert.Error(t, m.Ping(ctx))

	m.SetSaveError(errors.New("disk full"))
	assert.Error(t, m.Save(ctx, DefaultSnapshot()))
	assert.Equal(t, 0, m.SaveCount())

	assert.Error(t, NewMockStorage().Save(ctx, nil))
}

func TestMockStorage_Reset(t *testing.T) {
	m := NewMockStorage()
	ctx := context.Background()

	snap := DefaultSnapshot()
	snap.Profile.Day = 9
	m.Seed(snap)

	reset, err := m.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, reset.Profile.Day)
	assert.Equal(t, 1, m.Load(ctx).Profile.Day)
}
