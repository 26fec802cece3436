package models

// DefaultGoalSteps is the daily step goal used when a user has no
// configured goal for the current month.
const DefaultGoalSteps int64 = 10000

// MonthlyGoal is one entry of the per-month goal configuration.
type MonthlyGoal struct {
	GoalSteps int64 `bson:"goalSteps" json:"goal_steps"`
}

// User is one document of the users collection. The document id is the
// opaque user id issued at signup; the pipeline never creates ids.
type User struct {
	ID          string `bson:"_id" json:"id"`
	Username    string `bson:"username,omitempty" json:"username,omitempty"`
	DisplayName string `bson:"displayName,omitempty" json:"display_name,omitempty"`

	// FCMToken is the push delivery token. Empty means the user is not
	// notifiable. Set by the client, cleared by the pipeline when the
	// gateway reports it invalid or unregistered.
	FCMToken string `bson:"fcmToken,omitempty" json:"-"`

	ProfileImageURL string `bson:"profileImageUrl,omitempty" json:"profile_image_url,omitempty"`

	// DailySteps maps a day key (YYYY-MM-DD) to that day's step count.
	// Sparse: days without activity have no entry.
	DailySteps  map[string]int64 `bson:"daily_steps,omitempty" json:"daily_steps,omitempty"`
	WeeklySteps int64            `bson:"weekly_steps,omitempty" json:"weekly_steps,omitempty"`

	// Coins only ever grows, and only through reward grants.
	Coins int64 `bson:"coins,omitempty" json:"coins"`

	MonthlyGoals map[string]MonthlyGoal `bson:"monthlyGoals,omitempty" json:"monthly_goals,omitempty"`

	// Idempotency markers, one per trigger kind.
	DailyGoalCompletedDate string `bson:"dailyGoalCompletedDate,omitempty" json:"-"`
	LastDailyFactDate      string `bson:"lastDailyFactDate,omitempty" json:"-"`
	LastDailyFactCategory  string `bson:"lastDailyFactCategory,omitempty" json:"-"`
	LastInactivityDate     string `bson:"lastInactivityDate,omitempty" json:"-"`
	LastInactivitySteps    int64  `bson:"lastInactivitySteps,omitempty" json:"-"`
	LastInactivityTs       int64  `bson:"lastInactivityTs,omitempty" json:"-"`
	LastWeekRewarded       string `bson:"last_week_rewarded,omitempty" json:"-"`
}

// Name returns the display name shown on leaderboards and in invite
// notifications: username first, then displayName, then a placeholder.
func (u *User) Name() string {
	if u.Username != "" {
		return u.Username
	}
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return "Unknown User"
}

// StepsOn returns the step count recorded for the given day key, 0 when
// the day has no entry.
func (u *User) StepsOn(dayKey string) int64 {
	return u.DailySteps[dayKey]
}

// EffectiveGoal resolves the step goal for the given month key, falling
// back to DefaultGoalSteps when the month has no configuration.
func (u *User) EffectiveGoal(monthKey string) int64 {
	if g, ok := u.MonthlyGoals[monthKey]; ok {
		return g.GoalSteps
	}
	return DefaultGoalSteps
}
