package models

// LeaderboardRow is one user's rank-eligible summary. It is derived from
// the activity ledger and the user roster on demand and never persisted.
type LeaderboardRow struct {
	UserID       uint   `json:"user_id"`
	DisplayName  string `json:"display_name"`
	AvatarURL    string `json:"avatar_url"`
	TotalMinutes int    `json:"total_minutes"`
	StreakDays   int    `json:"streak_days"`
	Score        int    `json:"score"`
	Rank         int    `json:"rank"`
}
