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

func TestDailyFactsSendsOncePerDay(t *testing.T) {
	clock := testClock(t)
	now := time.Date(2025, 6, 30, 17, 0, 0, 0, clock.Location())

	st := storetest.New(
		&models.User{ID: "a", FCMToken: "tok-a"},
		&models.User{ID: "b", FCMToken: "tok-b"},
		&models.User{ID: "c"}, // not notifiable
	)
	msgr := &fakeMessenger{}
	p := newTestPipeline(st, msgr, clock)

	require.NoError(t, p.DailyFacts(context.Background(), now))

	assert.Len(t, msgr.sent, 2)
	assert.Equal(t, "2025-06-30", st.Users["a"].LastDailyFactDate)
	assert.Equal(t, "walking", st.Users["a"].LastDailyFactCategory)
	assert.Equal(t, "", st.Users["c"].LastDailyFactDate)

	// Everybody gets the same fact on a given day.
	assert.Equal(t, msgr.sent[0].Body, msgr.sent[1].Body)

	// Second invocation the same day: markers gate everyone out.
	require.NoError(t, p.DailyFacts(context.Background(), now))
	assert.Len(t, msgr.sent, 2)

	// Next day the marker differs and the fact goes out again.
	tomorrow := now.AddDate(0, 0, 1)
	require.NoError(t, p.DailyFacts(context.Background(), tomorrow))
	assert.Len(t, msgr.sent, 4)
}

func TestDailyFactsPrunesInvalidTokenWithoutAborting(t *testing.T) {
	clock := testClock(t)
	now := time.Date(2025, 6, 30, 17, 0, 0, 0, clock.Location())

	st := storetest.New(
		&models.User{ID: "a", FCMToken: "tok-dead"},
		&models.User{ID: "b", FCMToken: "tok-b"},
	)
	msgr := &fakeMessenger{fail: map[string]error{"tok-dead": wrapInvalidToken()}}
	p := newTestPipeline(st, msgr, clock)

	require.NoError(t, p.DailyFacts(context.Background(), now))

	assert.Equal(t, "", st.Users["a"].FCMToken)
	assert.Equal(t, 1, msgr.sentTo("tok-b"))
}

func TestDailyFactsTransientErrorSkipsUserOnly(t *testing.T) {
	clock := testClock(t)
	now := time.Date(2025, 6, 30, 17, 0, 0, 0, clock.Location())

	st := storetest.New(
		&models.User{ID: "a", FCMToken: "tok-flaky"},
		&models.User{ID: "b", FCMToken: "tok-b"},
	)
	msgr := &fakeMessenger{fail: map[string]error{"tok-flaky": errTransient}}
	p := newTestPipeline(st, msgr, clock)

	require.NoError(t, p.DailyFacts(context.Background(), now))

	// Token kept, marker still advanced (state is authoritative, delivery
	// is best effort), the other user unaffected.
	assert.Equal(t, "tok-flaky", st.Users["a"].FCMToken)
	assert.Equal(t, "2025-06-30", st.Users["a"].LastDailyFactDate)
	assert.Equal(t, 1, msgr.sentTo("tok-b"))
}

func TestDailyFactsCommitFailureSendsNothing(t *testing.T) {
	clock := testClock(t)
	now := time.Date(2025, 6, 30, 17, 0, 0, 0, clock.Location())

	st := storetest.New(&models.User{ID: "a", FCMToken: "tok-a"})
	st.FailCommit = errTransient
	msgr := &fakeMessenger{}
	p := newTestPipeline(st, msgr, clock)

	require.Error(t, p.DailyFacts(context.Background(), now))
	assert.Empty(t, msgr.sent)
	assert.Equal(t, "", st.Users["a"].LastDailyFactDate)
}
