// Package pipeline holds the scheduled and event-driven drivers. Each
// driver makes one pass over its candidate users: gate on the stored
// idempotency markers, queue every mutation on a store batch, commit the
// batch atomically, and only then dispatch notifications. Delivery is
// best effort; committed state is authoritative.
package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/mt-apps/walkzilla-backend/internal/logger"
	"github.com/mt-apps/walkzilla-backend/internal/notify"
	"github.com/mt-apps/walkzilla-backend/internal/period"
	"github.com/mt-apps/walkzilla-backend/internal/store"
)

const (
	// inactivityWindow is the minimum gap between inactivity evaluations.
	inactivityWindow = 2 * time.Hour
	// inactivityFloor is the step delta below which a window counts as
	// inactive.
	inactivityFloor int64 = 300
	// quietHoursEnd: no inactivity nudges before noon local time.
	quietHoursEnd = 12
	// goalReminderHour is when the end-of-day goal reminder goes out.
	goalReminderHour = 20
)

// Pipeline wires the drivers to their collaborators. One instance is
// built at startup and shared by the scheduler and the HTTP handlers.
type Pipeline struct {
	store  store.Store
	sender notify.Messenger
	clock  period.Clock
	log    *logger.Logger
}

func New(st store.Store, sender notify.Messenger, clock period.Clock, log *logger.Logger) *Pipeline {
	return &Pipeline{store: st, sender: sender, clock: clock, log: log}
}

// delivery is one queued post-commit notification.
type delivery struct {
	userID string
	token  string
	msg    notify.Message
}

// dispatch sends every queued delivery. Permanent token failures are
// collected and pruned in one follow-up batch; transient failures are
// logged and skipped. Dispatch never aborts the remaining recipients.
func (p *Pipeline) dispatch(ctx context.Context, trigger string, items []delivery) {
	if p.sender == nil || len(items) == 0 {
		return
	}

	prune := p.store.NewBatch()
	sent := 0
	for _, d := range items {
		receipt, err := p.sender.Send(ctx, d.token, d.msg)
		if err != nil {
			if errors.Is(err, notify.ErrTokenInvalid) {
				prune.ClearToken(d.userID)
				p.log.Warn("clearing invalid delivery token", "trigger", trigger, "user", d.userID)
			} else {
				p.log.Error("notification send failed", "trigger", trigger, "user", d.userID, "error", err)
			}
			continue
		}
		sent++
		p.log.Debug("notification sent", "trigger", trigger, "user", d.userID, "receipt", receipt)
	}
	p.log.Info("dispatch complete", "trigger", trigger, "sent", sent, "total", len(items))

	if !prune.Empty() {
		if err := prune.Commit(ctx); err != nil {
			p.log.Error("token prune commit failed", "trigger", trigger, "error", err)
		}
	}
}
