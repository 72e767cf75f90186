package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisKV_Basic(t *testing.T) {
	mr := miniredis.RunT(t)
	kv, err := NewRedisKV(mr.Addr(), testLogger())
	require.NoError(t, err)
	defer kv.Close()

	ctx := context.Background()
	require.NoError(t, kv.Ping(ctx))

	_, ok, err := kv.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.SetMany(ctx, map[string]string{"k1": "v1", "k2": "v2"}))
	v, ok, err := kv.Get(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v1", v)

	// Records are persistent, not cached with a TTL
	assert.Equal(t, time.Duration(0), mr.TTL("k1"))

	require.NoError(t, kv.Delete(ctx, "k1", "k2", "never-set"))
	assert.False(t, mr.Exists("k1"))
	assert.False(t, mr.Exists("k2"))
}

func TestRedisKV_BadURL(t *testing.T) {
	_, err := NewRedisKV("redis://localhost:6379/not-a-db", testLogger())
	assert.Error(t, err)
}

func TestRedisKV_WaitForConnectionTimeout(t *testing.T) {
	kv, err := NewRedisKV("localhost:1", testLogger())
	require.NoError(t, err)
	defer func() { _ = kv.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	assert.Error(t, kv.WaitForConnection(ctx))
}
