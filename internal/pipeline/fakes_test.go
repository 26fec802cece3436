package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/mt-apps/walkzilla-backend/internal/notify"
)

// sentMsg records one delivery attempt a fake messenger accepted.
type sentMsg struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}

type fakeMessenger struct {
	sent []sentMsg
	// fail maps a token to the error its sends should return.
	fail map[string]error
}

func (f *fakeMessenger) Send(_ context.Context, token string, msg notify.Message) (string, error) {
	if err, ok := f.fail[token]; ok {
		return "", err
	}
	f.sent = append(f.sent, sentMsg{Token: token, Title: msg.Title, Body: msg.Body, Data: msg.Data})
	return "receipt-" + token, nil
}

func (f *fakeMessenger) sentTo(token string) int {
	n := 0
	for _, s := range f.sent {
		if s.Token == token {
			n++
		}
	}
	return n
}

var errTransient = errors.New("gateway unavailable")

// wrapInvalidToken mimics the FCM sender's permanent-failure wrapping.
func wrapInvalidToken() error {
	return fmt.Errorf("send: %w", notify.ErrTokenInvalid)
}
