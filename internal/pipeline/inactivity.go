package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/mt-apps/walkzilla-backend/internal/notify"
)

// InactivityReminders nudges users who moved fewer than 300 steps since
// the last check. Each user carries a rolling baseline (date, steps,
// timestamp): a new day resets it without firing, and an elapsed window
// advances it whether or not the reminder fires, so every window is
// judged on its own.
func (p *Pipeline) InactivityReminders(ctx context.Context, now time.Time) error {
	if h := p.clock.Hour(now); h < quietHoursEnd {
		p.log.Info("skipping inactivity reminders during quiet hours", "hour", h)
		return nil
	}

	todayKey := p.clock.DayKey(now)
	nowMs := now.UnixMilli()

	users, err := p.store.AllUsers(ctx)
	if err != nil {
		return fmt.Errorf("inactivity reminders: enumerate users: %w", err)
	}

	batch := p.store.NewBatch()
	var items []delivery
	for i := range users {
		u := &users[i]
		if u.FCMToken == "" {
			continue
		}
		todaySteps := u.StepsOn(todayKey)

		// A missing baseline decodes as an empty date and lands here too.
		if u.LastInactivityDate != todayKey {
			batch.SetFields(u.ID, map[string]interface{}{
				"lastInactivityDate":  todayKey,
				"lastInactivitySteps": todaySteps,
				"lastInactivityTs":    nowMs,
			})
			continue
		}

		if nowMs-u.LastInactivityTs < inactivityWindow.Milliseconds() {
			continue
		}

		if todaySteps-u.LastInactivitySteps < inactivityFloor {
			items = append(items, delivery{userID: u.ID, token: u.FCMToken, msg: notify.Inactivity(todayKey)})
		}
		batch.SetFields(u.ID, map[string]interface{}{
			"lastInactivityDate":  todayKey,
			"lastInactivitySteps": todaySteps,
			"lastInactivityTs":    nowMs,
		})
	}

	if err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("inactivity reminders: commit: %w", err)
	}

	p.dispatch(ctx, "inactivity", items)
	return nil
}
