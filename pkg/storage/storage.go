package storage

import (
	"context"

	"github.com/jwebster45206/nitecrawlers/pkg/dictionary"
	"github.com/jwebster45206/nitecrawlers/pkg/ledger"
	"github.com/jwebster45206/nitecrawlers/pkg/profile"
)

// Snapshot is every persisted record of the local player.
type Snapshot struct {
	Profile      profile.PlayerProfile `json:"profile"`
	Stats        profile.Statistics    `json:"statistics"`
	Dictionary   []dictionary.Entry    `json:"dictionary"`
	Transactions []ledger.Transaction  `json:"transactions"`
}

// DefaultSnapshot is the state of a brand new player.
func DefaultSnapshot() *Snapshot {
	return &Snapshot{
		Profile:      profile.Default(),
		Dictionary:   make([]dictionary.Entry, 0),
		Transactions: make([]ledger.Transaction, 0),
	}
}

// Clone returns a deep copy, so callers can't alias stored state.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	c := *s
	c.Dictionary = dictionary.CloneEntries(s.Dictionary)
	c.Transactions = append(make([]ledger.Transaction, 0, len(s.Transactions)), s.Transactions...)
	return &c
}

// Storage persists the player snapshot.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Load never fails. Missing or unreadable records fall back to their
	// defaults independently of each other.
	Load(ctx context.Context) *Snapshot

	// Save writes every record in one batch.
	Save(ctx context.Context, snap *Snapshot) error

	// Reset removes every record and returns the default snapshot.
	Reset(ctx context.Context) (*Snapshot, error)
}
