package models

import (
	"time"

	"gorm.io/gorm"
)

// ActivityRecord is the per-user ledger row for tracked learning time.
// One row per user, created on the first flush and mutated only through
// the accrual service. TotalMinutes never decreases.
type ActivityRecord struct {
	gorm.Model
	UserID       uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	TotalMinutes int       `gorm:"not null;default:0" json:"total_minutes"`
	StreakDays   int       `gorm:"not null;default:0" json:"streak_days"`
	LastActive   time.Time `json:"last_active"`
	// LastStreakUpdate holds the calendar date (UTC midnight) on which the
	// streak was last evaluated. Streak arithmetic compares dates only;
	// LastActive keeps the full timestamp.
	LastStreakUpdate time.Time `json:"last_streak_update"`
}
