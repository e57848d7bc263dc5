// Package cache предоставляет потокобезопасный TTL-кэш для мемоизации
// дорогих вычислений (агрегации по каталогу, повторяющиеся выборки).
package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/DRSN-tech/catalog-engine/pkg/jitter"
	"github.com/DRSN-tech/catalog-engine/pkg/logger"
	"golang.org/x/sync/singleflight"
)

// entry — запись кэша с абсолютным сроком жизни.
type entry[V any] struct {
	value     V
	createdAt time.Time
	expiresAt time.Time
}

func (e entry[V]) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// Stats — накопительные счетчики кэша. Все счетчики монотонны, кроме Size.
type Stats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Sets    int64 `json:"sets"`
	Deletes int64 `json:"deletes"`
	Size    int   `json:"size"`
}

// Cache — TTL-кэш со строковыми ключами и фоновой очисткой просроченных записей.
// Очистку необходимо явно останавливать через Stop при завершении приложения.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]

	defaultTTL    time.Duration
	sweepInterval time.Duration

	group  singleflight.Group
	logger logger.Logger

	hits    atomic.Int64
	misses  atomic.Int64
	sets    atomic.Int64
	deletes atomic.Int64

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// New создает кэш и запускает фоновую очистку.
// defaultTTL применяется, когда TTL не передан в Set/GetOrCompute.
func New[V any](defaultTTL, sweepInterval time.Duration, log logger.Logger) *Cache[V] {
	const (
		fallbackTTL   = 5 * time.Minute
		fallbackSweep = time.Minute
	)

	if defaultTTL <= 0 {
		defaultTTL = fallbackTTL
	}
	if sweepInterval <= 0 {
		sweepInterval = fallbackSweep
	}

	c := &Cache[V]{
		entries:       make(map[string]entry[V]),
		defaultTTL:    defaultTTL,
		sweepInterval: sweepInterval,
		logger:        log,
		stopCh:        make(chan struct{}),
		doneCh:        make(chan struct{}),
	}

	go c.sweepLoop()

	return c
}

// Set сохраняет значение, перезаписывая существующую запись по этому ключу.
func (c *Cache[V]) Set(key string, value V, ttl ...time.Duration) {
	d := c.defaultTTL
	if len(ttl) > 0 && ttl[0] > 0 {
		d = ttl[0]
	}

	now := time.Now()

	c.mu.Lock()
	c.entries[key] = entry[V]{
		value:     value,
		createdAt: now,
		expiresAt: now.Add(d),
	}
	c.mu.Unlock()

	c.sets.Add(1)
}

// Get возвращает живое значение по ключу. Просроченная запись удаляется
// как побочный эффект, и вызов считается промахом.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		c.misses.Add(1)
		return zero, false
	}

	if e.expired(time.Now()) {
		c.deleteExpired(key)
		c.misses.Add(1)
		return zero, false
	}

	c.hits.Add(1)
	return e.value, true
}

// GetOrCompute возвращает закэшированное значение или вычисляет его через factory.
// Конкурентные вычисления по одному ключу схлопываются: factory выполняется один раз,
// остальные вызовы ждут общий результат.
func (c *Cache[V]) GetOrCompute(key string, factory func() (V, error), ttl ...time.Duration) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// Повторная проверка: значение могло появиться, пока вызов ждал singleflight.
		if v, ok := c.Get(key); ok {
			return v, nil
		}

		v, err := factory()
		if err != nil {
			return nil, err
		}

		c.Set(key, v, ttl...)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}

	return v.(V), nil
}

// Delete удаляет запись по ключу.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	_, ok := c.entries[key]
	if ok {
		delete(c.entries, key)
	}
	c.mu.Unlock()

	if ok {
		c.deletes.Add(1)
	}
}

// Len возвращает текущее количество записей, включая еще не выметенные просроченные.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats возвращает снимок счетчиков.
func (c *Cache[V]) Stats() Stats {
	return Stats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Sets:    c.sets.Load(),
		Deletes: c.deletes.Load(),
		Size:    c.Len(),
	}
}

// Stop останавливает фоновую очистку. Повторные вызовы безопасны.
func (c *Cache[V]) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
		<-c.doneCh
	})
}

// sweepLoop периодически выметает просроченные записи. Интервал берется
// с джиттером, чтобы развести очистки нескольких кэшей по времени.
func (c *Cache[V]) sweepLoop() {
	defer close(c.doneCh)

	timer := time.NewTimer(jitter.Duration(c.sweepInterval, jitter.DefaultJitter))
	defer timer.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-timer.C:
			removed := c.sweep(time.Now())
			if removed > 0 && c.logger != nil {
				c.logger.Debugf("cache sweep removed %d expired entries", removed)
			}

			timer.Reset(jitter.Duration(c.sweepInterval, jitter.DefaultJitter))
		}
	}
}

// sweep удаляет все записи, просроченные на момент now, и возвращает их количество.
func (c *Cache[V]) sweep(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, key)
			removed++
		}
	}

	c.deletes.Add(int64(removed))
	return removed
}

// deleteExpired удаляет запись, если она все еще просрочена.
func (c *Cache[V]) deleteExpired(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if ok && e.expired(time.Now()) {
		delete(c.entries, key)
		c.deletes.Add(1)
	}
}
