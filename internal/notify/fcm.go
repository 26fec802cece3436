package notify

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// Android channel the client app registered for streak/leaderboard pushes.
const androidChannelID = "streak_notifications"

// FCM sends through Firebase Cloud Messaging.
type FCM struct {
	client *messaging.Client
}

// NewFCM initializes the Firebase app from a service-account file (or
// application-default credentials when the path is empty) and returns the
// messaging-backed sender.
func NewFCM(ctx context.Context, credentialsFile string) (*FCM, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("init messaging client: %w", err)
	}
	return &FCM{client: client}, nil
}

func (f *FCM) Send(ctx context.Context, token string, msg Message) (string, error) {
	out := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID:             androidChannelID,
				Priority:              messaging.PriorityHigh,
				DefaultSound:          true,
				DefaultVibrateTimings: true,
				ClickAction:           clickAction,
			},
		},
	}

	receipt, err := f.client.Send(ctx, out)
	if err != nil {
		if messaging.IsRegistrationTokenNotRegistered(err) || messaging.IsInvalidArgument(err) {
			return "", fmt.Errorf("%w: %v", ErrTokenInvalid, err)
		}
		return "", err
	}
	return receipt, nil
}
