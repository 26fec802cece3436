// Package leaderboard builds period rankings from user documents and maps
// rank positions onto fixed coin payouts.
package leaderboard

import (
	"time"

	"github.com/google/uuid"

	"github.com/mt-apps/walkzilla-backend/internal/models"
)

// Payout tables for ranks 1..3. Ranks beyond the table earn nothing.
var (
	DailyPayouts  = []int64{100, 75, 50}
	WeeklyPayouts = []int64{500, 350, 250}
)

// TopN is how many users a reward distribution considers.
const TopN int64 = 3

// Selector extracts the ranked counter from a user document.
type Selector func(u *models.User) int64

// DailySteps selects the counter for one calendar day. Users without an
// entry for that day count as 0.
func DailySteps(dayKey string) Selector {
	return func(u *models.User) int64 { return u.StepsOn(dayKey) }
}

// WeeklySteps selects the rolling weekly total.
func WeeklySteps(u *models.User) int64 {
	return u.WeeklySteps
}

// Build assigns ranks 1..len(users) in the given order and attaches the
// payout for tabled ranks. The input order is the ranking order: callers
// pass users already sorted by the store (counter descending, user id
// ascending for equal counters). An empty population yields an empty
// slice, not an error.
func Build(users []models.User, sel Selector, payouts []int64) []models.LeaderboardEntry {
	entries := make([]models.LeaderboardEntry, 0, len(users))
	for i := range users {
		u := &users[i]
		var reward int64
		if i < len(payouts) {
			reward = payouts[i]
		}
		entries = append(entries, models.LeaderboardEntry{
			Rank:   i + 1,
			UserID: u.ID,
			Name:   u.Name(),
			Steps:  sel(u),
			Reward: reward,
			Image:  u.ProfileImageURL,
		})
	}
	return entries
}

// NewHistory snapshots one reward distribution as an append-only record.
func NewHistory(kind, periodKey string, winners []models.LeaderboardEntry, now time.Time) models.HistoryRecord {
	return models.HistoryRecord{
		ID:        uuid.NewString(),
		Type:      kind,
		Date:      periodKey,
		Winners:   winners,
		CreatedAt: now,
	}
}

// Ordinal formats a rank for notification copy: 1st, 2nd, 3rd.
func Ordinal(rank int) string {
	switch rank {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	default:
		return ""
	}
}
