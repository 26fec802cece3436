package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/mt-apps/walkzilla-backend/internal/notify"
)

// DailyFacts sends the fact of the day to every notifiable user who has
// not received one today. The lastDailyFactDate marker is committed
// before dispatch, so a re-invocation the same day is a no-op even if
// some sends failed.
func (p *Pipeline) DailyFacts(ctx context.Context, now time.Time) error {
	todayKey := p.clock.DayKey(now)
	msg := notify.DailyFact(p.clock.DayOfYear(now), todayKey)

	users, err := p.store.AllUsers(ctx)
	if err != nil {
		return fmt.Errorf("daily facts: enumerate users: %w", err)
	}

	batch := p.store.NewBatch()
	var items []delivery
	for i := range users {
		u := &users[i]
		if u.FCMToken == "" {
			continue
		}
		if u.LastDailyFactDate == todayKey {
			continue // already sent today
		}
		batch.SetFields(u.ID, map[string]interface{}{
			"lastDailyFactDate":     todayKey,
			"lastDailyFactCategory": notify.FactCategory,
		})
		items = append(items, delivery{userID: u.ID, token: u.FCMToken, msg: msg})
	}

	if batch.Empty() {
		p.log.Info("daily facts: nothing to send", "date", todayKey)
		return nil
	}
	if err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("daily facts: commit: %w", err)
	}

	p.dispatch(ctx, "daily_fact", items)
	return nil
}
