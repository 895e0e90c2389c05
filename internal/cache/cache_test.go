package cache_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/lexisphere"
	"github.com/phanxgames/lexisphere/internal/cache"
)

func countingLoader(rec *lexisphere.TermRecord, calls *atomic.Int32) lexisphere.TermLoaderFunc {
	return func(_ context.Context, id string) (*lexisphere.TermRecord, error) {
		calls.Add(1)
		if rec != nil && rec.ID == id {
			return rec, nil
		}
		return nil, lexisphere.ErrNotFound
	}
}

func newTestCache(t *testing.T, source lexisphere.TermLoader, opts ...cache.Option) (*cache.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	return cache.NewFromClient(client, source, opts...), mr
}

func TestCacheReadThrough(t *testing.T) {
	rec := &lexisphere.TermRecord{ID: "t1", Term: "happy", Synonyms: []lexisphere.LinkedSynonym{
		{Term: "glad", ID: "t2", X: 1, Y: 2, Z: 3},
	}}
	var calls atomic.Int32
	c, _ := newTestCache(t, countingLoader(rec, &calls))

	// First hit goes to the source and populates the cache.
	got, err := c.LoadTermByID(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, "happy", got.Term)
	assert.EqualValues(t, 1, calls.Load())

	// Second hit is served from the cache.
	got, err = c.LoadTermByID(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, "happy", got.Term)
	assert.Len(t, got.Synonyms, 1)
	assert.EqualValues(t, 1, calls.Load())
}

func TestCacheMissPropagatesNotFound(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestCache(t, countingLoader(nil, &calls))

	_, err := c.LoadTermByID(context.Background(), "missing")
	assert.True(t, errors.Is(err, lexisphere.ErrNotFound))
	// Errors are never cached; a second call reaches the source again.
	_, _ = c.LoadTermByID(context.Background(), "missing")
	assert.EqualValues(t, 2, calls.Load())
}

func TestCacheTTLExpires(t *testing.T) {
	rec := &lexisphere.TermRecord{ID: "t1", Term: "happy"}
	var calls atomic.Int32
	c, mr := newTestCache(t, countingLoader(rec, &calls), cache.WithTTL(time.Minute))

	_, err := c.LoadTermByID(context.Background(), "t1")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = c.LoadTermByID(context.Background(), "t1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, calls.Load(), "expired entry should re-fetch")
}

func TestCacheInvalidate(t *testing.T) {
	rec := &lexisphere.TermRecord{ID: "t1", Term: "happy"}
	var calls atomic.Int32
	c, _ := newTestCache(t, countingLoader(rec, &calls))

	_, err := c.LoadTermByID(context.Background(), "t1")
	require.NoError(t, err)
	require.NoError(t, c.Invalidate(context.Background(), "t1"))

	_, err = c.LoadTermByID(context.Background(), "t1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, calls.Load())
}

func TestCacheCorruptEntryFallsThrough(t *testing.T) {
	rec := &lexisphere.TermRecord{ID: "t1", Term: "happy"}
	var calls atomic.Int32
	c, mr := newTestCache(t, countingLoader(rec, &calls), cache.WithPrefix("term:"))

	require.NoError(t, mr.Set("term:t1", "not json"))

	got, err := c.LoadTermByID(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, "happy", got.Term)
	assert.EqualValues(t, 1, calls.Load())
}
