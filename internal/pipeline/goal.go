package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mt-apps/walkzilla-backend/internal/notify"
)

// GoalCompleted reacts to one step-count update event. It fires only on
// the upward crossing of the effective goal (before < goal <= after) and
// at most once per day: the dailyGoalCompletedDate marker is written
// after a successful send, so a failed send retries on the next update
// while the marker blocks a second send while already above goal.
func (p *Pipeline) GoalCompleted(ctx context.Context, userID string, before, after int64, now time.Time) error {
	u, err := p.store.GetUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("goal completed: load user: %w", err)
	}
	if u.FCMToken == "" {
		return nil
	}

	todayKey := p.clock.DayKey(now)
	if u.DailyGoalCompletedDate == todayKey {
		return nil
	}

	goal := u.EffectiveGoal(p.clock.MonthKey(now))
	if !(before < goal && after >= goal) {
		return nil
	}

	batch := p.store.NewBatch()
	if p.sender != nil {
		_, err := p.sender.Send(ctx, u.FCMToken, notify.GoalCompleted(goal, todayKey))
		switch {
		case err == nil:
			batch.SetFields(userID, map[string]interface{}{"dailyGoalCompletedDate": todayKey})
		case errors.Is(err, notify.ErrTokenInvalid):
			batch.ClearToken(userID)
			p.log.Warn("clearing invalid delivery token", "trigger", "daily_goal_completed", "user", userID)
		default:
			p.log.Error("goal completion send failed", "user", userID, "error", err)
			return nil
		}
	}

	if err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("goal completed: commit: %w", err)
	}
	return nil
}

// GoalReminder sends the end-of-day warning to users still short of
// today's goal. Runs only in the reminder hour; no marker is kept since
// the schedule fires once per evening.
func (p *Pipeline) GoalReminder(ctx context.Context, now time.Time) error {
	if h := p.clock.Hour(now); h != goalReminderHour {
		p.log.Info("outside goal reminder hour", "hour", h)
		return nil
	}

	todayKey := p.clock.DayKey(now)
	monthKey := p.clock.MonthKey(now)

	users, err := p.store.AllUsers(ctx)
	if err != nil {
		return fmt.Errorf("goal reminder: enumerate users: %w", err)
	}

	var items []delivery
	for i := range users {
		u := &users[i]
		if u.FCMToken == "" {
			continue
		}
		goal := u.EffectiveGoal(monthKey)
		if u.StepsOn(todayKey) >= goal {
			continue
		}
		items = append(items, delivery{
			userID: u.ID,
			token:  u.FCMToken,
			msg:    notify.GoalReminder(goal, now.UnixMilli()),
		})
	}

	p.dispatch(ctx, "goal_reminder", items)
	return nil
}
