// Package ratelimit реализует ограничение частоты вызовов по скользящему окну
// с раздельным состоянием для каждой идентичности вызывающего.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// DefaultIdentity используется, когда у вызывающего нет более тонкого разделения.
const DefaultIdentity = "default"

// maxSleepQuantum — верхняя граница одного интервала ожидания в WaitForSlot,
// чтобы отмена контекста обрабатывалась не позднее чем через квант.
const maxSleepQuantum = time.Second

// Limiter ограничивает число операций на идентичность в пределах скользящего окна.
type Limiter struct {
	mu     sync.Mutex
	max    int
	window time.Duration

	// Временные метки разрешенных вызовов на идентичность.
	// Список ограничен max записями: перед записью новой метки все метки
	// старше окна отбрасываются, а при достигнутом максимуме запись не происходит.
	calls map[string][]time.Time

	now func() time.Time // подменяется в тестах
}

// New создает ограничитель: не более max операций за window на идентичность.
func New(max int, window time.Duration) *Limiter {
	const (
		defaultMax    = 10
		defaultWindow = time.Minute
	)

	if max <= 0 {
		max = defaultMax
	}
	if window <= 0 {
		window = defaultWindow
	}

	return &Limiter{
		max:    max,
		window: window,
		calls:  make(map[string][]time.Time),
		now:    time.Now,
	}
}

// Allow проверяет лимит и, если он не исчерпан, атомарно записывает попытку.
// Возвращает false без записи, если окно заполнено.
func (l *Limiter) Allow(identity string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	inWindow := l.prune(identity, now)

	if len(inWindow) >= l.max {
		return false
	}

	l.calls[identity] = append(inWindow, now)
	return true
}

// WaitForSlot блокирует вызывающего до освобождения слота или отмены контекста.
// Длительность ожидания вычисляется по самой старой метке в окне
// и ограничивается квантом в одну секунду на итерацию.
func (l *Limiter) WaitForSlot(ctx context.Context, identity string) error {
	for {
		if l.Allow(identity) {
			return nil
		}

		wait := l.untilNextSlot(identity)
		if wait <= 0 {
			wait = time.Millisecond
		}
		if wait > maxSleepQuantum {
			wait = maxSleepQuantum
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Remaining возвращает число оставшихся в окне слотов, не изменяя состояния.
func (l *Limiter) Remaining(identity string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	inWindow := l.countInWindow(identity, l.now())
	if inWindow >= l.max {
		return 0
	}

	return l.max - inWindow
}

// ResetTime возвращает момент, когда самая старая метка покинет окно.
// Если окно пусто, возвращает текущее время.
func (l *Limiter) ResetTime(identity string) time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)
	for _, ts := range l.calls[identity] {
		if ts.After(cutoff) {
			return ts.Add(l.window)
		}
	}

	return now
}

// Max возвращает настроенный максимум операций в окне.
func (l *Limiter) Max() int {
	return l.max
}

// Window возвращает длину скользящего окна.
func (l *Limiter) Window() time.Duration {
	return l.window
}

// untilNextSlot вычисляет время до выхода самой старой метки за окно.
func (l *Limiter) untilNextSlot(identity string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)
	for _, ts := range l.calls[identity] {
		if ts.After(cutoff) {
			return ts.Add(l.window).Sub(now)
		}
	}

	return 0
}

// prune отбрасывает метки старше окна и возвращает оставшиеся.
// Вызывается под мьютексом.
func (l *Limiter) prune(identity string, now time.Time) []time.Time {
	cutoff := now.Add(-l.window)
	history := l.calls[identity]

	idx := 0
	for idx < len(history) && !history[idx].After(cutoff) {
		idx++
	}

	inWindow := history[idx:]
	if idx > 0 {
		// Сдвиг в начало, чтобы список не рос от одного настойчивого вызывающего.
		inWindow = append(history[:0], inWindow...)
	}

	l.calls[identity] = inWindow
	return inWindow
}

// countInWindow считает метки внутри окна без изменения состояния.
// Вызывается под мьютексом.
func (l *Limiter) countInWindow(identity string, now time.Time) int {
	cutoff := now.Add(-l.window)

	count := 0
	for _, ts := range l.calls[identity] {
		if ts.After(cutoff) {
			count++
		}
	}

	return count
}
