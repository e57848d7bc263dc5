package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DRSN-tech/catalog-engine/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache[string] {
	t.Helper()

	c := New[string](time.Minute, time.Hour, logger.NewNop())
	t.Cleanup(c.Stop)

	return c
}

func TestCache_SetGet(t *testing.T) {
	c := newTestCache(t)

	c.Set("k", "v")

	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestCache_GetMiss(t *testing.T) {
	c := newTestCache(t)

	_, ok := c.Get("absent")
	assert.False(t, ok)
}

func TestCache_TTLExpiry(t *testing.T) {
	c := newTestCache(t)

	c.Set("k", "v", 100*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	v, ok := c.Get("k")
	require.True(t, ok, "entry must be alive before its TTL")
	assert.Equal(t, "v", v)

	time.Sleep(100 * time.Millisecond)
	_, ok = c.Get("k")
	assert.False(t, ok, "entry must expire after its TTL")

	// Просроченная запись удалена как побочный эффект чтения.
	assert.Equal(t, 0, c.Len())
}

func TestCache_SetOverwrites(t *testing.T) {
	c := newTestCache(t)

	c.Set("k", "old")
	c.Set("k", "new")

	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "new", v)
	assert.Equal(t, 1, c.Len())
}

func TestCache_GetOrCompute(t *testing.T) {
	c := newTestCache(t)

	var calls atomic.Int64
	factory := func() (string, error) {
		calls.Add(1)
		return "computed", nil
	}

	v, err := c.GetOrCompute("k", factory)
	require.NoError(t, err)
	assert.Equal(t, "computed", v)

	v, err = c.GetOrCompute("k", factory)
	require.NoError(t, err)
	assert.Equal(t, "computed", v)

	assert.Equal(t, int64(1), calls.Load(), "factory must run once for a live entry")
}

func TestCache_GetOrComputeError(t *testing.T) {
	c := newTestCache(t)

	wantErr := errors.New("factory failed")
	_, err := c.GetOrCompute("k", func() (string, error) {
		return "", wantErr
	})
	require.ErrorIs(t, err, wantErr)

	// Ошибка не кэшируется.
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestCache_GetOrComputeConcurrent(t *testing.T) {
	c := newTestCache(t)

	var calls atomic.Int64
	factory := func() (string, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "shared", nil
	}

	const workers = 8

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.GetOrCompute("k", factory)
			assert.NoError(t, err)
			assert.Equal(t, "shared", v)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), calls.Load(), "concurrent computations must collapse")
}

func TestCache_Delete(t *testing.T) {
	c := newTestCache(t)

	c.Set("k", "v")
	c.Delete("k")

	_, ok := c.Get("k")
	assert.False(t, ok)

	// Удаление отсутствующего ключа не увеличивает счетчик.
	before := c.Stats().Deletes
	c.Delete("absent")
	assert.Equal(t, before, c.Stats().Deletes)
}

func TestCache_Stats(t *testing.T) {
	c := newTestCache(t)

	c.Set("a", "1")
	c.Set("b", "2")
	c.Get("a")      // hit
	c.Get("absent") // miss
	c.Delete("b")

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(2), stats.Sets)
	assert.Equal(t, int64(1), stats.Deletes)
	assert.Equal(t, 1, stats.Size)
}

func TestCache_SweepRemovesUnreadExpired(t *testing.T) {
	c := New[string](time.Minute, 20*time.Millisecond, logger.NewNop())
	t.Cleanup(c.Stop)

	c.Set("short", "v", 10*time.Millisecond)
	c.Set("long", "v", time.Minute)

	// Ключ "short" ни разу не читается: его должна убрать фоновая очистка.
	require.Eventually(t, func() bool {
		return c.Len() == 1
	}, time.Second, 10*time.Millisecond)

	_, ok := c.Get("long")
	assert.True(t, ok)
}

func TestCache_StopIsIdempotent(t *testing.T) {
	c := New[string](time.Minute, time.Hour, logger.NewNop())

	c.Stop()
	c.Stop() // повторный вызов не должен блокироваться или паниковать

	// Кэш остается читаемым после остановки очистки.
	c.Set("k", "v")
	_, ok := c.Get("k")
	assert.True(t, ok)
}

func TestCache_DefaultTTLApplied(t *testing.T) {
	c := New[string](30*time.Millisecond, time.Hour, logger.NewNop())
	t.Cleanup(c.Stop)

	c.Set("k", "v") // без явного TTL

	time.Sleep(60 * time.Millisecond)
	_, ok := c.Get("k")
	assert.False(t, ok)
}
