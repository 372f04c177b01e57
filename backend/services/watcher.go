package services

import (
	"context"
	"log"
	"project/backend/models"
	"sync"

	"gorm.io/gorm"
)

// LeaderboardWatcher consumes the change feed and keeps the last
// successfully fetched ledger and roster snapshots. Feed events are never
// trusted beyond their table identity: every event triggers a full
// re-fetch of both tables. When a re-fetch fails the previous snapshots
// stay in place, so callers can keep serving the last known ranking.
type LeaderboardWatcher struct {
	db  *gorm.DB
	hub *FeedHub
	log *log.Logger

	mu      sync.RWMutex
	records []models.ActivityRecord
	roster  []models.User
	ok      bool
	lastErr error
}

func NewLeaderboardWatcher(db *gorm.DB, hub *FeedHub, logger *log.Logger) *LeaderboardWatcher {
	return &LeaderboardWatcher{db: db, hub: hub, log: logger}
}

// Start runs the initial aggregation, then recomputes on every feed
// event until ctx is cancelled. The initial pass runs before returning so
// a snapshot is available as soon as the server starts serving.
func (w *LeaderboardWatcher) Start(ctx context.Context) {
	w.Recompute()

	ch := w.hub.Subscribe()
	go func() {
		defer w.hub.Unsubscribe(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case _, open := <-ch:
				if !open {
					return
				}
				w.Recompute()
			}
		}
	}()
}

// Recompute re-fetches both source tables. On any read failure the
// previous snapshots are kept.
func (w *LeaderboardWatcher) Recompute() {
	var records []models.ActivityRecord
	if err := w.db.Order("id").Find(&records).Error; err != nil {
		w.fail(err)
		return
	}

	var roster []models.User
	if err := w.db.Order("id").Find(&roster).Error; err != nil {
		w.fail(err)
		return
	}

	w.mu.Lock()
	w.records = records
	w.roster = roster
	w.ok = true
	w.lastErr = nil
	w.mu.Unlock()
}

func (w *LeaderboardWatcher) fail(err error) {
	w.mu.Lock()
	w.lastErr = err
	w.mu.Unlock()

	if w.log != nil {
		w.log.Printf("leaderboard re-fetch failed, keeping previous snapshot: %v", err)
	}
}

// Snapshot ranks the last successfully fetched state by metric. ok is
// false until the first successful aggregation.
func (w *LeaderboardWatcher) Snapshot(metric Metric) ([]models.LeaderboardRow, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if !w.ok {
		return nil, false
	}
	return BuildLeaderboard(w.records, w.roster, metric), true
}

// LastErr reports the most recent re-fetch failure, nil after a
// successful recompute.
func (w *LeaderboardWatcher) LastErr() error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastErr
}
