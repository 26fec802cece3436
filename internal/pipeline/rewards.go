package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/mt-apps/walkzilla-backend/internal/leaderboard"
	"github.com/mt-apps/walkzilla-backend/internal/models"
	"github.com/mt-apps/walkzilla-backend/internal/notify"
)

// DailyRewards ranks yesterday's step counts and grants 100/75/50 coins
// to the top three. The (daily, dayKey) history record is both the
// immutable audit trail and the guard that collapses repeated scheduler
// invocations for the same day into one distribution.
func (p *Pipeline) DailyRewards(ctx context.Context, now time.Time) error {
	dayKey := p.clock.YesterdayKey(now)

	done, err := p.store.HasHistory(ctx, models.PeriodDaily, dayKey)
	if err != nil {
		return fmt.Errorf("daily rewards: history check: %w", err)
	}
	if done {
		p.log.Info("daily rewards already distributed", "date", dayKey)
		return nil
	}

	users, err := p.store.TopDaily(ctx, dayKey, leaderboard.TopN)
	if err != nil {
		return fmt.Errorf("daily rewards: query top users: %w", err)
	}
	if len(users) == 0 {
		p.log.Info("no users found for daily rewards", "date", dayKey)
		return nil
	}

	entries := leaderboard.Build(users, leaderboard.DailySteps(dayKey), leaderboard.DailyPayouts)

	batch := p.store.NewBatch()
	for _, e := range entries {
		if e.Reward > 0 {
			batch.IncCoins(e.UserID, e.Reward)
		}
	}
	batch.AddHistory(leaderboard.NewHistory(models.PeriodDaily, dayKey, entries, now))

	if err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("daily rewards: commit: %w", err)
	}
	p.log.Info("daily rewards distributed", "date", dayKey, "winners", len(entries))

	p.dispatch(ctx, "daily_reward", rewardDeliveries(models.PeriodDaily, dayKey, users, entries))
	return nil
}

// WeeklyRewards grants 500/350/250 coins to the week's top three, stamps
// last_week_rewarded on the winners, and resets every user's weekly
// counter in the same commit. Guarded by the (weekly, weekEndDate)
// history record.
func (p *Pipeline) WeeklyRewards(ctx context.Context, now time.Time) error {
	weekEnd := p.clock.DayKey(now)

	done, err := p.store.HasHistory(ctx, models.PeriodWeekly, weekEnd)
	if err != nil {
		return fmt.Errorf("weekly rewards: history check: %w", err)
	}
	if done {
		p.log.Info("weekly rewards already distributed", "date", weekEnd)
		return nil
	}

	top, err := p.store.TopWeekly(ctx, leaderboard.TopN)
	if err != nil {
		return fmt.Errorf("weekly rewards: query top users: %w", err)
	}
	if len(top) == 0 {
		p.log.Info("no users found for weekly rewards", "date", weekEnd)
		return nil
	}

	entries := leaderboard.Build(top, leaderboard.WeeklySteps, leaderboard.WeeklyPayouts)

	batch := p.store.NewBatch()
	for _, e := range entries {
		if e.Reward > 0 {
			batch.IncCoins(e.UserID, e.Reward)
		}
		batch.SetFields(e.UserID, map[string]interface{}{"last_week_rewarded": weekEnd})
	}
	batch.AddHistory(leaderboard.NewHistory(models.PeriodWeekly, weekEnd, entries, now))

	// The week ends for everyone, winners or not.
	all, err := p.store.AllUsers(ctx)
	if err != nil {
		return fmt.Errorf("weekly rewards: enumerate users: %w", err)
	}
	for i := range all {
		batch.ResetWeekly(all[i].ID)
	}

	if err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("weekly rewards: commit: %w", err)
	}
	p.log.Info("weekly rewards distributed", "date", weekEnd, "winners", len(entries), "reset", len(all))

	p.dispatch(ctx, "weekly_reward", rewardDeliveries(models.PeriodWeekly, weekEnd, top, entries))
	return nil
}

// rewardDeliveries pairs ranked entries with the winners' tokens, skipping
// users who cannot be notified.
func rewardDeliveries(kind, periodKey string, users []models.User, entries []models.LeaderboardEntry) []delivery {
	tokens := make(map[string]string, len(users))
	for i := range users {
		tokens[users[i].ID] = users[i].FCMToken
	}

	var out []delivery
	for _, e := range entries {
		token := tokens[e.UserID]
		if token == "" {
			continue
		}
		out = append(out, delivery{
			userID: e.UserID,
			token:  token,
			msg:    notify.RewardWin(kind, e, periodKey),
		})
	}
	return out
}
