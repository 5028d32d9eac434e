package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"rtref/pkg/logger"
)

func TestStoreGetCaches(t *testing.T) {
	dir := t.TempDir()
	writeAirport(t, dir, "uuee", defaultFiles())

	store := NewStore(dir, logger.Nop())
	ds1, err := store.Get(context.Background(), "uuee")
	require.NoError(t, err)
	ds2, err := store.Get(context.Background(), "uuee")
	require.NoError(t, err)

	// Same pointer: the second Get comes from the cache.
	assert.Same(t, ds1, ds2)
}

func TestStoreGetUnknownAirport(t *testing.T) {
	store := NewStore(t.TempDir(), logger.Nop())

	_, err := store.Get(context.Background(), "xxxx")
	assert.ErrorIs(t, err, ErrAirportNotFound)
}

func TestStoreInvalidate(t *testing.T) {
	dir := t.TempDir()
	writeAirport(t, dir, "uuee", defaultFiles())

	store := NewStore(dir, logger.Nop())
	ds1, err := store.Get(context.Background(), "uuee")
	require.NoError(t, err)

	store.Invalidate("uuee")

	ds2, err := store.Get(context.Background(), "uuee")
	require.NoError(t, err)
	assert.NotSame(t, ds1, ds2)
}

func TestStoreWatchInvalidatesOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	writeAirport(t, dir, "uuee", defaultFiles())

	store := NewStore(dir, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, store.Watch(ctx))
	defer func() { require.NoError(t, store.Close()) }()

	ds1, err := store.Get(ctx, "uuee")
	require.NoError(t, err)

	// Touch the calls file and wait for the watcher to drop the cache
	// entry.
	callsPath := filepath.Join(dir, "uuee", "calls.json")
	require.NoError(t, os.WriteFile(callsPath, []byte(testCallsJSON), 0o644))

	require.Eventually(t, func() bool {
		ds2, err := store.Get(ctx, "uuee")
		return err == nil && ds2 != ds1
	}, 3*time.Second, 50*time.Millisecond, "cache entry was never invalidated")
}

func TestStoreCloseWithoutWatch(t *testing.T) {
	store := NewStore(t.TempDir(), logger.Nop())
	assert.NoError(t, store.Close())
}
