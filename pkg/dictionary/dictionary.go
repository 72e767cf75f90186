package dictionary

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/nitecrawlers/pkg/item"
)

// Entry is an item the player has discovered.
type Entry struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Category      string              `json:"category,omitempty"`
	Price         int                 `json:"price"`
	FinancialInfo *item.FinancialInfo `json:"financialInfo,omitempty"`
	DiscoveredAt  time.Time           `json:"discoveredAt"`
}

// Index is an insertion-ordered log of discovered items, unique by exact name.
// It is not safe for concurrent use; the progression controller serializes access.
type Index struct {
	entries []Entry
	names   map[string]struct{}
	now     func() time.Time
}

// New returns an empty index.
func New() *Index {
	return &Index{
		entries: make([]Entry, 0),
		names:   make(map[string]struct{}),
		now:     time.Now,
	}
}

// Restore builds an index from persisted entries. If a name appears more
// than once only the first entry is kept.
func Restore(entries []Entry) *Index {
	idx := New()
	for _, e := range entries {
		if strings.TrimSpace(e.Name) == "" {
			continue
		}
		if _, ok := idx.names[e.Name]; ok {
			continue
		}
		idx.names[e.Name] = struct{}{}
		e.FinancialInfo = e.FinancialInfo.Clone()
		idx.entries = append(idx.entries, e)
	}
	return idx
}

// SetClock overrides the discovery timestamp source.
func (idx *Index) SetClock(now func() time.Time) {
	idx.now = now
}

// Add records the item unless an entry with the same exact name exists.
// Unnamed items are never recorded. Returns true if an entry was inserted.
func (idx *Index) Add(it *item.ScannedItem) bool {
	if it == nil || strings.TrimSpace(it.Name) == "" {
		return false
	}
	if _, ok := idx.names[it.Name]; ok {
		return false
	}

	idx.names[it.Name] = struct{}{}
	idx.entries = append(idx.entries, Entry{
		ID:            uuid.NewString(),
		Name:          it.Name,
		Category:      it.Category,
		Price:         it.Price,
		FinancialInfo: it.FinancialInfo.Clone(),
		DiscoveredAt:  idx.now().UTC(),
	})
	return true
}

// FindSimilar returns the first entry, in insertion order, whose name contains
// the candidate or is contained by it, ignoring case.
func (idx *Index) FindSimilar(candidate string) (string, bool) {
	c := strings.ToLower(candidate)
	if strings.TrimSpace(c) == "" {
		return "", false
	}
	for _, e := range idx.entries {
		n := strings.ToLower(e.Name)
		if strings.TrimSpace(n) == "" {
			continue
		}
		if strings.Contains(n, c) || strings.Contains(c, n) {
			return e.Name, true
		}
	}
	return "", false
}

// Entries returns a copy of the log in insertion order.
func (idx *Index) Entries() []Entry {
	return CloneEntries(idx.entries)
}

// CloneEntries deep-copies entries, lesson text included.
func CloneEntries(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		e.FinancialInfo = e.FinancialInfo.Clone()
		out[i] = e
	}
	return out
}

func (idx *Index) Len() int {
	return len(idx.entries)
}
