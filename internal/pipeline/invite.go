package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/mt-apps/walkzilla-backend/internal/models"
	"github.com/mt-apps/walkzilla-backend/internal/notify"
	"github.com/mt-apps/walkzilla-backend/internal/store"
)

// InviteCreated notifies the invited user about a freshly created duo
// challenge invite. Event-driven and single-fire: the invite document is
// the event, so no idempotency marker is needed.
func (p *Pipeline) InviteCreated(ctx context.Context, inv models.DuoChallengeInvite) error {
	to, err := p.store.GetUser(ctx, inv.ToUserID)
	if err != nil {
		return fmt.Errorf("invite: load invited user: %w", err)
	}
	if to.FCMToken == "" {
		return nil
	}

	inviterName := "Someone"
	from, err := p.store.GetUser(ctx, inv.FromUserID)
	if err == nil {
		inviterName = from.Name()
	} else if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("invite: load inviter: %w", err)
	}

	p.dispatch(ctx, "duo_challenge_invite", []delivery{{
		userID: to.ID,
		token:  to.FCMToken,
		msg:    notify.Invite(inviterName, inv.ID),
	}})
	return nil
}
