package models

import "time"

// DuoChallengeInvite is one document of the duo_challenge_invites
// collection. Each invite is a single-fire event: creating it triggers
// exactly one notification to the invited user.
type DuoChallengeInvite struct {
	ID         string    `bson:"_id" json:"id"`
	FromUserID string    `bson:"fromUserId" json:"from_user_id"`
	ToUserID   string    `bson:"toUserId" json:"to_user_id"`
	CreatedAt  time.Time `bson:"createdAt" json:"created_at"`
}
