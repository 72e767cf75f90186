package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jwebster45206/nitecrawlers/pkg/dictionary"
	"github.com/jwebster45206/nitecrawlers/pkg/ledger"
	"github.com/jwebster45206/nitecrawlers/pkg/profile"
	"github.com/jwebster45206/nitecrawlers/pkg/storage"
)

// Persisted record names. Each one is stored, loaded and defaulted on its own.
const (
	KeyAllowance          = "allowance"
	KeyAllowanceFrequency = "allowanceFrequency"
	KeyOnboarded          = "onboarded"
	KeyMoney              = "money"
	KeyLiteracy           = "literacy"
	KeyGrowthStage        = "growthStage"
	KeyDay                = "day"
	KeyTransactions       = "transactions"
	KeyStatistics         = "statistics"
	KeyDictionary         = "dictionary"

	DefaultNamespace = "nitecrawlers"
)

// AllKeys lists every record name.
var AllKeys = []string{
	KeyAllowance, KeyAllowanceFrequency, KeyOnboarded,
	KeyMoney, KeyLiteracy, KeyGrowthStage, KeyDay,
	KeyTransactions, KeyStatistics, KeyDictionary,
}

// KV is the minimal key/value backend behind KVStore.
type KV interface {
	Ping(ctx context.Context) error
	Close() error

	// Get returns ok=false when the key does not exist
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// SetMany writes all values atomically
	SetMany(ctx context.Context, values map[string]string) error

	// Delete removes keys atomically; missing keys are ignored
	Delete(ctx context.Context, keys ...string) error
}

// KVStore implements storage.Storage as one JSON value per namespaced key.
type KVStore struct {
	kv        KV
	namespace string
	logger    *slog.Logger
}

// Ensure KVStore implements Storage interface
var _ storage.Storage = (*KVStore)(nil)

// NewKVStore creates a store over kv. An empty namespace uses DefaultNamespace.
func NewKVStore(kv KV, namespace string, logger *slog.Logger) *KVStore {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &KVStore{
		kv:        kv,
		namespace: namespace,
		logger:    logger,
	}
}

func (s *KVStore) key(name string) string {
	return s.namespace + ":" + name
}

func (s *KVStore) Ping(ctx context.Context) error {
	return s.kv.Ping(ctx)
}

func (s *KVStore) Close() error {
	return s.kv.Close()
}

// WaitReady blocks until the backend answers. Backends with their own
// startup retry loop use it; others get a single ping.
func (s *KVStore) WaitReady(ctx context.Context) error {
	if w, ok := s.kv.(interface {
		WaitForConnection(ctx context.Context) error
	}); ok {
		return w.WaitForConnection(ctx)
	}
	return s.kv.Ping(ctx)
}

// loadField decodes one record into dst. It reports whether dst was set;
// missing, unreadable, malformed and null records all leave dst untouched.
func loadField[T any](ctx context.Context, s *KVStore, name string, dst *T) bool {
	key := s.key(name)
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.logger.Warn("Failed to read record, using default", "key", key, "error", err)
		return false
	}
	if !ok {
		return false
	}

	var v *T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		s.logger.Warn("Corrupt record, using default", "key", key, "error", err)
		return false
	}
	if v == nil {
		s.logger.Warn("Null record, using default", "key", key)
		return false
	}
	*dst = *v
	return true
}

// Load reads every record, falling back to defaults per field.
func (s *KVStore) Load(ctx context.Context) *storage.Snapshot {
	snap := storage.DefaultSnapshot()
	p := &snap.Profile

	loadField(ctx, s, KeyAllowance, &p.AllowanceAmount)
	loadField(ctx, s, KeyOnboarded, &p.Onboarded)

	var freq string
	if loadField(ctx, s, KeyAllowanceFrequency, &freq) {
		if f, err := profile.ParseFrequency(freq); err == nil {
			p.AllowanceFrequency = f
		} else {
			s.logger.Warn("Corrupt record, using default", "key", s.key(KeyAllowanceFrequency), "error", err)
		}
	}

	// Wallet starts at the allowance when nothing was saved yet
	if !loadField(ctx, s, KeyMoney, &p.Money) {
		p.Money = p.AllowanceAmount
	}

	loadField(ctx, s, KeyLiteracy, &p.Literacy)
	loadField(ctx, s, KeyGrowthStage, &p.GrowthStage)
	loadField(ctx, s, KeyDay, &p.Day)
	p.Clamp()

	loadField(ctx, s, KeyStatistics, &snap.Stats)

	var entries []dictionary.Entry
	if loadField(ctx, s, KeyDictionary, &entries) && entries != nil {
		snap.Dictionary = entries
	}

	var txs []ledger.Transaction
	if loadField(ctx, s, KeyTransactions, &txs) && txs != nil {
		snap.Transactions = txs
	}

	return snap
}

// Save writes all records in a single atomic batch.
func (s *KVStore) Save(ctx context.Context, snap *storage.Snapshot) error {
	if snap == nil {
		return fmt.Errorf("snapshot cannot be nil")
	}

	dict := snap.Dictionary
	if dict == nil {
		dict = []dictionary.Entry{}
	}
	txs := snap.Transactions
	if txs == nil {
		txs = []ledger.Transaction{}
	}

	records := map[string]any{
		KeyAllowance:          snap.Profile.AllowanceAmount,
		KeyAllowanceFrequency: snap.Profile.AllowanceFrequency,
		KeyOnboarded:          snap.Profile.Onboarded,
		KeyMoney:              snap.Profile.Money,
		KeyLiteracy:           snap.Profile.Literacy,
		KeyGrowthStage:        snap.Profile.GrowthStage,
		KeyDay:                snap.Profile.Day,
		KeyStatistics:         snap.Stats,
		KeyDictionary:         dict,
		KeyTransactions:       txs,
	}

	values := make(map[string]string, len(records))
	for name, v := range records {
		data, err := json.Marshal(v)
		if err != nil {
			s.logger.Error("Failed to marshal record", "key", s.key(name), "error", err)
			return fmt.Errorf("failed to marshal %s: %w", name, err)
		}
		values[s.key(name)] = string(data)
	}

	if err := s.kv.SetMany(ctx, values); err != nil {
		s.logger.Error("Failed to save snapshot", "namespace", s.namespace, "error", err)
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	s.logger.Debug("Snapshot saved", "namespace", s.namespace, "day", snap.Profile.Day)
	return nil
}

// Reset deletes every record of the namespace.
func (s *KVStore) Reset(ctx context.Context) (*storage.Snapshot, error) {
	keys := make([]string, len(AllKeys))
	for i, name := range AllKeys {
		keys[i] = s.key(name)
	}

	if err := s.kv.Delete(ctx, keys...); err != nil {
		s.logger.Error("Failed to reset profile", "namespace", s.namespace, "error", err)
		return nil, fmt.Errorf("failed to reset profile: %w", err)
	}

	s.logger.Info("Profile reset", "namespace", s.namespace)
	return storage.DefaultSnapshot(), nil
}
