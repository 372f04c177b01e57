package services

import (
	"fmt"
	"project/backend/models"
	"sort"
)

// Metric selects the leaderboard sort order.
type Metric string

const (
	MetricMinutes Metric = "minutes"
	MetricScore   Metric = "score"
	MetricStreak  Metric = "streak"
)

// ParseMetric validates a metric query parameter, defaulting to minutes.
func ParseMetric(s string) (Metric, error) {
	switch s {
	case "", string(MetricMinutes):
		return MetricMinutes, nil
	case string(MetricScore):
		return MetricScore, nil
	case string(MetricStreak):
		return MetricStreak, nil
	}
	return "", fmt.Errorf("unknown leaderboard metric %q", s)
}

// BuildLeaderboard merges the activity ledger with the full user roster
// and ranks the result by the requested metric, descending. It is a pure
// function of its inputs; both slices are treated as immutable snapshots.
//
// Ledger rows come first, in input order, followed by one zero row for
// every roster user without recorded activity, so freshly registered
// users appear before their first flush. The sort is stable: equal-valued
// rows keep that relative order, which makes ranking deterministic.
func BuildLeaderboard(records []models.ActivityRecord, roster []models.User, metric Metric) []models.LeaderboardRow {
	profiles := make(map[uint]models.User, len(roster))
	for _, u := range roster {
		profiles[u.ID] = u
	}

	rows := make([]models.LeaderboardRow, 0, len(roster))
	seen := make(map[uint]bool, len(records))

	for _, rec := range records {
		u := profiles[rec.UserID]
		rows = append(rows, models.LeaderboardRow{
			UserID:       rec.UserID,
			DisplayName:  u.DisplayName,
			AvatarURL:    u.AvatarURL,
			TotalMinutes: rec.TotalMinutes,
			StreakDays:   rec.StreakDays,
			Score:        rec.TotalMinutes * ScorePerMinute,
		})
		seen[rec.UserID] = true
	}

	for _, u := range roster {
		if seen[u.ID] {
			continue
		}
		rows = append(rows, models.LeaderboardRow{
			UserID:      u.ID,
			DisplayName: u.DisplayName,
			AvatarURL:   u.AvatarURL,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		switch metric {
		case MetricScore:
			return rows[i].Score > rows[j].Score
		case MetricStreak:
			return rows[i].StreakDays > rows[j].StreakDays
		default:
			return rows[i].TotalMinutes > rows[j].TotalMinutes
		}
	})

	for i := range rows {
		rows[i].Rank = i + 1
	}

	return rows
}

// RankOf returns the 1-based rank of userID within ranked rows. ok is
// false when the user is absent from the merged row set.
func RankOf(rows []models.LeaderboardRow, userID uint) (int, bool) {
	for _, row := range rows {
		if row.UserID == userID {
			return row.Rank, true
		}
	}
	return 0, false
}
