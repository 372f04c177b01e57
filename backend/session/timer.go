// Package session holds the client-resident side of time tracking: a
// per-session timer that measures wall-clock time and reports it to the
// accrual service as minute-granularity deltas.
package session

import (
	"context"
	"log"
	"sync"
	"time"
)

// DefaultInterval is how often an open session reports elapsed time.
const DefaultInterval = 5 * time.Minute

// FlushResult is the accrual service's acknowledgement of a flush.
type FlushResult struct {
	TotalMinutes int `json:"total_minutes"`
	Streak       int `json:"streak"`
}

// Flusher delivers one flush to the accrual service.
type Flusher interface {
	Flush(ctx context.Context, userID uint, minutes int) (FlushResult, error)
}

// Timer measures elapsed wall-clock time for one open client session.
// Delivery is best effort: a failed flush is logged and dropped, and the
// unreported minutes stay in the current measurement window because the
// start instant only moves forward after a confirmed success.
type Timer struct {
	userID   uint
	flusher  Flusher
	interval time.Duration
	log      *log.Logger
	now      func() time.Time

	mu    sync.Mutex
	start time.Time
}

func NewTimer(userID uint, flusher Flusher, logger *log.Logger) *Timer {
	t := &Timer{
		userID:   userID,
		flusher:  flusher,
		interval: DefaultInterval,
		log:      logger,
		now:      time.Now,
	}
	t.start = t.now()
	return t
}

// Run flushes on a fixed interval until ctx is cancelled, then makes one
// final best-effort flush. A killed process (closed tab) may skip that
// final flush entirely; the design accepts the loss.
func (t *Timer) Run(ctx context.Context) {
	t.mu.Lock()
	t.start = t.now()
	t.mu.Unlock()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.FlushNow(context.Background())
			return
		case <-ticker.C:
			t.FlushNow(ctx)
		}
	}
}

// FlushNow reports the whole minutes elapsed since the start instant. A
// window under one minute is skipped and keeps accruing.
func (t *Timer) FlushNow(ctx context.Context) {
	t.mu.Lock()
	start := t.start
	t.mu.Unlock()

	now := t.now()
	minutes := int(now.Sub(start) / time.Minute)
	if minutes < 1 {
		return
	}

	if _, err := t.flusher.Flush(ctx, t.userID, minutes); err != nil {
		// Dropped on purpose: the next flush re-measures from the same
		// start instant, so these minutes are not lost.
		if t.log != nil {
			t.log.Printf("session flush failed for user %d: %v", t.userID, err)
		}
		return
	}

	t.mu.Lock()
	if t.start.Before(now) {
		t.start = now
	}
	t.mu.Unlock()
}
