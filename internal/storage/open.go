package storage

import (
	"fmt"
	"log/slog"

	"github.com/jwebster45206/nitecrawlers/internal/config"
)

// Open builds the configured backend and wraps it in a KVStore.
func Open(cfg *config.Config, logger *slog.Logger) (*KVStore, error) {
	var kv KV
	switch cfg.StorageBackend {
	case config.BackendRedis:
		r, err := NewRedisKV(cfg.RedisURL, logger)
		if err != nil {
			return nil, err
		}
		kv = r
	case config.BackendSQLite:
		s, err := OpenSQLiteKV(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		kv = s
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.StorageBackend)
	}

	logger.Info("Storage backend selected", "backend", cfg.StorageBackend, "namespace", cfg.StoreNamespace)
	return NewKVStore(kv, cfg.StoreNamespace, logger), nil
}
