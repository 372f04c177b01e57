package services

import (
	"errors"
	"project/backend/models"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ScorePerMinute converts tracked minutes into a leaderboard score. The
// score is always derived at read time and never stored.
const ScorePerMinute = 10

var (
	ErrInvalidMinutes = errors.New("minutes_spent must be a positive integer")
	ErrUnknownUser    = errors.New("unknown user")
)

// AccrualService merges flushed time deltas into the activity ledger.
// It is the only writer of ActivityRecord rows.
type AccrualService struct {
	DB  *gorm.DB
	Hub *FeedHub
}

func NewAccrualService(db *gorm.DB, hub *FeedHub) *AccrualService {
	return &AccrualService{DB: db, Hub: hub}
}

// DateOf truncates t to its UTC calendar date.
func DateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DayGap returns the number of calendar days between a and b, compared at
// date granularity in UTC. Negative when a is ahead of b (clock skew).
func DayGap(a, b time.Time) int {
	return int(DateOf(b).Sub(DateOf(a)).Hours() / 24)
}

// NextStreak applies the streak rollover rules: same day keeps the
// streak, the next day extends it, a longer gap resets it to 1, and a
// negative gap (clock skew) keeps it. The streak never decrements.
func NextStreak(current, gap int) int {
	switch {
	case gap == 1:
		return current + 1
	case gap > 1:
		return 1
	default:
		return current
	}
}

// ApplyFlush atomically merges a reported delta into the user's ledger
// row and recomputes the streak. Concurrent flushes for the same user are
// additive: the increment runs inside the UPDATE statement itself, under
// a row lock on Postgres, so no contribution is lost or applied twice.
func (s *AccrualService) ApplyFlush(userID uint, minutes int, now time.Time) (*models.ActivityRecord, error) {
	if userID == 0 {
		return nil, ErrUnknownUser
	}
	if minutes <= 0 {
		return nil, ErrInvalidMinutes
	}

	var rec models.ActivityRecord
	created := false

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		err := s.lock(tx).Where("user_id = ?", userID).First(&rec).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Every ledger row must reference an existing profile.
			var known int64
			if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&known).Error; err != nil {
				return err
			}
			if known == 0 {
				return ErrUnknownUser
			}

			rec = models.ActivityRecord{
				UserID:           userID,
				TotalMinutes:     minutes,
				StreakDays:       1,
				LastActive:       now,
				LastStreakUpdate: DateOf(now),
			}
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}},
				DoNothing: true,
			}).Create(&rec)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 1 {
				created = true
				return nil
			}
			// Lost the create race to a concurrent flush; the winner's
			// row exists now, so fall through to the update path.
			if err := s.lock(tx).Where("user_id = ?", userID).First(&rec).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		streak := NextStreak(rec.StreakDays, DayGap(rec.LastStreakUpdate, now))

		if err := tx.Model(&models.ActivityRecord{}).
			Where("user_id = ?", userID).
			Updates(map[string]interface{}{
				"total_minutes":      gorm.Expr("total_minutes + ?", minutes),
				"streak_days":        streak,
				"last_active":        now,
				"last_streak_update": DateOf(now),
			}).Error; err != nil {
			return err
		}

		return tx.Where("user_id = ?", userID).First(&rec).Error
	})
	if err != nil {
		return nil, err
	}

	if s.Hub != nil {
		kind := EventUpdate
		if created {
			kind = EventInsert
		}
		s.Hub.Publish(FeedEvent{Kind: kind, Table: TableActivity})
	}

	return &rec, nil
}

// lock takes the per-user row lock on dialects that support it. SQLite
// (used in tests) serializes writers on its own and rejects FOR UPDATE.
func (s *AccrualService) lock(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
