// Package notify formats and delivers push notifications. Delivery is
// best effort: the pipeline commits state first and dispatches after, so
// a lost notification never rolls back a committed mutation.
package notify

import (
	"context"
	"errors"
)

// ErrTokenInvalid marks a permanent delivery failure: the token is
// malformed or no longer registered. Callers react by clearing the
// user's stored token; every other error is transient and only logged.
var ErrTokenInvalid = errors.New("notify: delivery token invalid or unregistered")

// Message is one trigger-specific notification payload.
type Message struct {
	Title string
	Body  string
	// Data travels alongside the notification for client-side routing.
	Data map[string]string
}

// Messenger delivers a message to one delivery token. The returned
// receipt identifies the accepted message and is used only for logging.
// Callers must have filtered out users without a token.
type Messenger interface {
	Send(ctx context.Context, token string, msg Message) (receipt string, err error)
}
