// Package engine holds the progression controller: the single writer that
// turns decisions into persisted profile changes.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jwebster45206/nitecrawlers/internal/services"
	"github.com/jwebster45206/nitecrawlers/pkg/consequence"
	"github.com/jwebster45206/nitecrawlers/pkg/dictionary"
	"github.com/jwebster45206/nitecrawlers/pkg/item"
	"github.com/jwebster45206/nitecrawlers/pkg/ledger"
	"github.com/jwebster45206/nitecrawlers/pkg/profile"
	"github.com/jwebster45206/nitecrawlers/pkg/storage"
	"github.com/jwebster45206/nitecrawlers/pkg/textfilter"
)

var (
	ErrInvalidItem      = errors.New("invalid item")
	ErrInvalidAllowance = errors.New("allowance cannot be negative")
	ErrNotPersisted     = errors.New("change applied in memory but not persisted")
)

const (
	TipSourceProvider = "provider"
	TipSourceFallback = "fallback"
)

// Controller owns the in-memory player state and routes every mutation
// through the store. Decisions are serialized.
type Controller struct {
	store         storage.Storage
	advice        services.AdviceService // nil means fallback tips only
	adviceTimeout time.Duration
	filter        *textfilter.ProfanityFilter
	logger        *slog.Logger
	now           func() time.Time

	mu      sync.Mutex // guards everything below
	profile profile.PlayerProfile
	stats   profile.Statistics
	dict    *dictionary.Index
	ledger  *ledger.Ledger
}

// Option customizes a Controller.
type Option func(*Controller)

// WithAdvice sets the advice provider and the per-request timeout.
func WithAdvice(advice services.AdviceService, timeout time.Duration) Option {
	return func(c *Controller) {
		c.advice = advice
		if timeout > 0 {
			c.adviceTimeout = timeout
		}
	}
}

// WithClock overrides the clock used for discovery timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// New loads the persisted state and returns a ready controller.
func New(ctx context.Context, store storage.Storage, logger *slog.Logger, opts ...Option) *Controller {
	c := &Controller{
		store:         store,
		adviceTimeout: services.DefaultAdviceTimeout,
		filter:        textfilter.NewProfanityFilter(),
		logger:        logger,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.restore(store.Load(ctx))
	return c
}

// restore replaces in-memory state. Caller holds mu or owns c exclusively.
func (c *Controller) restore(snap *storage.Snapshot) {
	c.profile = snap.Profile
	c.stats = snap.Stats
	c.dict = dictionary.Restore(snap.Dictionary)
	c.dict.SetClock(c.now)
	c.ledger = ledger.Restore(snap.Transactions)
}

func (c *Controller) snapshot() *storage.Snapshot {
	return &storage.Snapshot{
		Profile:      c.profile,
		Stats:        c.stats,
		Dictionary:   c.dict.Entries(),
		Transactions: c.ledger.Entries(),
	}
}

// persist writes the current state through. A failure is logged and
// reported, but in-memory state stays authoritative.
func (c *Controller) persist(ctx context.Context) bool {
	if err := c.store.Save(ctx, c.snapshot()); err != nil {
		c.logger.Error("Failed to persist player state", "error", err, "day", c.profile.Day)
		return false
	}
	return true
}

// Result is everything the presentation layer needs after a decision.
type Result struct {
	Action            consequence.Action `json:"action"`
	ItemName          string             `json:"item_name"`
	Kind              consequence.Kind   `json:"kind"`
	Message           string             `json:"message"`
	MoneyDelta        int                `json:"money_delta"`
	LiteracyDelta     int                `json:"literacy_delta"`
	GrowthDelta       int                `json:"growth_delta"`
	DaysDelta         int                `json:"days_delta"`
	SavingsPrediction int                `json:"savings_prediction"`

	Money       int `json:"money"`
	Literacy    int `json:"literacy"`
	GrowthStage int `json:"growth_stage"`
	Day         int `json:"day"`

	Tip       string `json:"tip"`
	TipSource string `json:"tip_source"`

	// SimilarMatch names an earlier discovery that looks like this item
	SimilarMatch string `json:"similar_match,omitempty"`
	Discovered   bool   `json:"discovered"`
	Persisted    bool   `json:"persisted"`
}

// Decide applies one decision, persists it, then asks for advice. Invalid
// actions and items are rejected before anything changes.
func (c *Controller) Decide(ctx context.Context, action consequence.Action, it *item.ScannedItem) (*Result, error) {
	if !action.Valid() {
		return nil, fmt.Errorf("%w: %q", consequence.ErrUnrecognizedAction, action)
	}
	if err := it.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidItem, err)
	}

	res, err := c.apply(ctx, action, it)
	if err != nil {
		return nil, err
	}

	res.Tip, res.TipSource = c.requestAdvice(ctx, services.AdviceRequest{
		Action:           action,
		ItemName:         res.ItemName,
		Price:            it.PriceOrZero(),
		ResultingBalance: res.Money,
	})
	return res, nil
}

func (c *Controller) apply(ctx context.Context, action consequence.Action, it *item.ScannedItem) (*Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	name := it.DisplayName()
	similar, _ := c.dict.FindSimilar(name)

	out, err := consequence.Decide(action, it, c.profile)
	if err != nil {
		return nil, err
	}

	dayOfAction := c.profile.Day
	c.profile.Money += out.MoneyDelta
	c.profile.Literacy += out.LiteracyDelta
	c.profile.GrowthStage += out.GrowthDelta
	c.profile.Day += out.DaysDelta
	c.profile.Clamp()
	c.stats.Add(out.StatsDelta)

	c.ledger.Append(dayOfAction, action, name, out.MoneyDelta, c.profile.Money)
	discovered := c.dict.Add(it)
	persisted := c.persist(ctx)

	c.logger.Info("Decision applied",
		"action", action,
		"item", name,
		"kind", out.Kind,
		"money", c.profile.Money,
		"literacy", c.profile.Literacy,
		"growth_stage", c.profile.GrowthStage,
		"day", c.profile.Day,
		"persisted", persisted)

	return &Result{
		Action:            action,
		ItemName:          name,
		Kind:              out.Kind,
		Message:           out.Message,
		MoneyDelta:        out.MoneyDelta,
		LiteracyDelta:     out.LiteracyDelta,
		GrowthDelta:       out.GrowthDelta,
		DaysDelta:         out.DaysDelta,
		SavingsPrediction: out.SavingsPrediction,
		Money:             c.profile.Money,
		Literacy:          c.profile.Literacy,
		GrowthStage:       c.profile.GrowthStage,
		Day:               c.profile.Day,
		SimilarMatch:      similar,
		Discovered:        discovered,
		Persisted:         persisted,
	}, nil
}

// requestAdvice never fails; any provider problem yields the fallback tip.
func (c *Controller) requestAdvice(ctx context.Context, req services.AdviceRequest) (string, string) {
	if c.advice == nil {
		return services.FallbackTip(req.Action), TipSourceFallback
	}

	ctx, cancel := context.WithTimeout(ctx, c.adviceTimeout)
	defer cancel()

	tip, err := c.advice.GetAdvice(ctx, req)
	if err != nil {
		c.logger.Warn("Advice unavailable, using fallback", "action", req.Action, "item", req.ItemName, "error", err)
		return services.FallbackTip(req.Action), TipSourceFallback
	}
	return c.filter.FilterText(tip), TipSourceProvider
}

// Onboard records the allowance and fills the wallet with it.
func (c *Controller) Onboard(ctx context.Context, amount int, freq profile.Frequency) (profile.PlayerProfile, error) {
	return c.setAllowance(ctx, amount, freq, "Player onboarded")
}

// UpdateAllowance changes the allowance and resets the wallet to the new amount.
func (c *Controller) UpdateAllowance(ctx context.Context, amount int, freq profile.Frequency) (profile.PlayerProfile, error) {
	return c.setAllowance(ctx, amount, freq, "Allowance updated")
}

func (c *Controller) setAllowance(ctx context.Context, amount int, freq profile.Frequency, msg string) (profile.PlayerProfile, error) {
	if amount < 0 {
		return profile.PlayerProfile{}, fmt.Errorf("%w: %d", ErrInvalidAllowance, amount)
	}
	f, err := profile.ParseFrequency(string(freq))
	if err != nil {
		return profile.PlayerProfile{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.profile.AllowanceAmount = amount
	c.profile.AllowanceFrequency = f
	c.profile.Money = amount
	c.profile.Onboarded = true
	if !c.persist(ctx) {
		return c.profile, ErrNotPersisted
	}

	c.logger.Info(msg, "allowance", amount, "frequency", f)
	return c.profile, nil
}

// Reset wipes every persisted record and starts over.
func (c *Controller) Reset(ctx context.Context) (profile.PlayerProfile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap, err := c.store.Reset(ctx)
	if err != nil {
		return c.profile, fmt.Errorf("failed to reset: %w", err)
	}
	c.restore(snap)
	c.logger.Info("Player state reset")
	return c.profile, nil
}

// FindSimilar reports an earlier discovery resembling name.
func (c *Controller) FindSimilar(name string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dict.FindSimilar(name)
}

func (c *Controller) Profile() profile.PlayerProfile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile
}

func (c *Controller) Stats() profile.Statistics {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

func (c *Controller) Dictionary() []dictionary.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dict.Entries()
}

func (c *Controller) Transactions() []ledger.Transaction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.Entries()
}

// Ping checks the backing store.
func (c *Controller) Ping(ctx context.Context) error {
	return c.store.Ping(ctx)
}
