package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mt-apps/walkzilla-backend/internal/models"
	"github.com/mt-apps/walkzilla-backend/internal/store/storetest"
)

func TestGoalCompletedFiresOnCrossing(t *testing.T) {
	clock := testClock(t)
	now := time.Date(2025, 6, 30, 18, 0, 0, 0, clock.Location())

	st := storetest.New(&models.User{ID: "a", FCMToken: "tok-a"})
	msgr := &fakeMessenger{}
	p := newTestPipeline(st, msgr, clock)

	// 9999 → 10050 crosses the default 10000 goal.
	require.NoError(t, p.GoalCompleted(context.Background(), "a", 9999, 10050, now))

	require.Len(t, msgr.sent, 1)
	assert.Equal(t, "Daily Challenge Completed", msgr.sent[0].Title)
	assert.Equal(t, "2025-06-30", st.Users["a"].DailyGoalCompletedDate)

	// Same day, counter already above goal: the marker keeps it silent.
	require.NoError(t, p.GoalCompleted(context.Background(), "a", 10050, 10200, now))
	assert.Len(t, msgr.sent, 1)
}

func TestGoalCompletedNeedsUpwardCrossing(t *testing.T) {
	clock := testClock(t)
	now := time.Date(2025, 6, 30, 18, 0, 0, 0, clock.Location())

	st := storetest.New(&models.User{ID: "a", FCMToken: "tok-a"})
	msgr := &fakeMessenger{}
	p := newTestPipeline(st, msgr, clock)

	// Still below goal.
	require.NoError(t, p.GoalCompleted(context.Background(), "a", 5000, 6000, now))
	// Already above before the update: no re-fire.
	require.NoError(t, p.GoalCompleted(context.Background(), "a", 10100, 10500, now))

	assert.Empty(t, msgr.sent)
	assert.Equal(t, "", st.Users["a"].DailyGoalCompletedDate)
}

func TestGoalCompletedUsesMonthlyConfiguration(t *testing.T) {
	clock := testClock(t)
	now := time.Date(2025, 6, 30, 18, 0, 0, 0, clock.Location())

	st := storetest.New(&models.User{ID: "a", FCMToken: "tok-a",
		MonthlyGoals: map[string]models.MonthlyGoal{"2025-06": {GoalSteps: 5000}}})
	msgr := &fakeMessenger{}
	p := newTestPipeline(st, msgr, clock)

	require.NoError(t, p.GoalCompleted(context.Background(), "a", 4900, 5100, now))

	require.Len(t, msgr.sent, 1)
	assert.Equal(t, "5000", msgr.sent[0].Data["goal"])
}

func TestGoalCompletedInvalidTokenCleared(t *testing.T) {
	clock := testClock(t)
	now := time.Date(2025, 6, 30, 18, 0, 0, 0, clock.Location())

	st := storetest.New(&models.User{ID: "a", FCMToken: "tok-dead"})
	msgr := &fakeMessenger{fail: map[string]error{"tok-dead": wrapInvalidToken()}}
	p := newTestPipeline(st, msgr, clock)

	require.NoError(t, p.GoalCompleted(context.Background(), "a", 9999, 10050, now))

	assert.Equal(t, "", st.Users["a"].FCMToken)
	// No marker: the send never went out.
	assert.Equal(t, "", st.Users["a"].DailyGoalCompletedDate)
}

func TestGoalCompletedTransientErrorRetriesNextEvent(t *testing.T) {
	clock := testClock(t)
	now := time.Date(2025, 6, 30, 18, 0, 0, 0, clock.Location())

	st := storetest.New(&models.User{ID: "a", FCMToken: "tok-a"})
	msgr := &fakeMessenger{fail: map[string]error{"tok-a": errTransient}}
	p := newTestPipeline(st, msgr, clock)

	require.NoError(t, p.GoalCompleted(context.Background(), "a", 9999, 10050, now))
	assert.Equal(t, "", st.Users["a"].DailyGoalCompletedDate)

	// Gateway recovers; the next crossing event delivers and marks.
	msgr.fail = nil
	require.NoError(t, p.GoalCompleted(context.Background(), "a", 9999, 10050, now))
	assert.Len(t, msgr.sent, 1)
	assert.Equal(t, "2025-06-30", st.Users["a"].DailyGoalCompletedDate)
}

func TestGoalReminderOnlyBelowGoalUsers(t *testing.T) {
	clock := testClock(t)
	evening := time.Date(2025, 6, 30, 20, 0, 0, 0, clock.Location())
	today := "2025-06-30"

	st := storetest.New(
		&models.User{ID: "short", FCMToken: "tok-short",
			DailySteps: map[string]int64{today: 4000}},
		&models.User{ID: "done", FCMToken: "tok-done",
			DailySteps: map[string]int64{today: 11000}},
		&models.User{ID: "custom", FCMToken: "tok-custom",
			DailySteps:   map[string]int64{today: 6000},
			MonthlyGoals: map[string]models.MonthlyGoal{"2025-06": {GoalSteps: 5000}}},
	)
	msgr := &fakeMessenger{}
	p := newTestPipeline(st, msgr, clock)

	require.NoError(t, p.GoalReminder(context.Background(), evening))

	assert.Equal(t, 1, msgr.sentTo("tok-short"))
	assert.Equal(t, 0, msgr.sentTo("tok-done"))
	// 6000 ≥ configured 5000: the monthly goal, not the default, decides.
	assert.Equal(t, 0, msgr.sentTo("tok-custom"))
	assert.Equal(t, "⏰ Streak in Danger!", msgr.sent[0].Title)
}

func TestGoalReminderOutsideHourIsSilent(t *testing.T) {
	clock := testClock(t)
	afternoon := time.Date(2025, 6, 30, 15, 0, 0, 0, clock.Location())

	st := storetest.New(&models.User{ID: "a", FCMToken: "tok-a"})
	msgr := &fakeMessenger{}
	p := newTestPipeline(st, msgr, clock)

	require.NoError(t, p.GoalReminder(context.Background(), afternoon))
	assert.Empty(t, msgr.sent)
}
