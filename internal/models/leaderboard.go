package models

import "time"

// Period kinds stored on history records.
const (
	PeriodDaily  = "daily"
	PeriodWeekly = "weekly"
)

// LeaderboardEntry is one user's position within a period's ranking.
// Derived from user documents; persisted only inside a HistoryRecord.
type LeaderboardEntry struct {
	Rank   int    `bson:"rank" json:"rank"`
	UserID string `bson:"userId" json:"user_id"`
	Name   string `bson:"name" json:"name"`
	Steps  int64  `bson:"steps" json:"steps"`
	Reward int64  `bson:"reward" json:"reward"`

	// Image is filled in for API responses only.
	Image string `bson:"-" json:"image,omitempty"`
}

// HistoryRecord is an immutable snapshot of one reward distribution,
// stored in the leaderboard_history collection. Append-only; the pair
// (Type, Date) doubles as the run-level idempotency key for reward
// distributions.
type HistoryRecord struct {
	ID        string             `bson:"_id" json:"id"`
	Type      string             `bson:"type" json:"type"`
	Date      string             `bson:"date" json:"date"`
	Winners   []LeaderboardEntry `bson:"winners" json:"winners"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
}
