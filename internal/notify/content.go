package notify

import (
	"fmt"
	"math/rand"

	"github.com/mt-apps/walkzilla-backend/internal/leaderboard"
	"github.com/mt-apps/walkzilla-backend/internal/models"
)

// clickAction is attached to every data payload so the Flutter client
// routes taps into the app.
const clickAction = "FLUTTER_NOTIFICATION_CLICK"

// FactCategory labels the active daily-fact pool.
const FactCategory = "walking"

// walkingFacts is the daily-fact pool. The fact for a given day is picked
// by day-of-year modulo the pool size, so every user sees the same fact.
var walkingFacts = []string{
	"Just 10 minutes of walking can boost your mood for hours. Ready to test it?",
	"The average person walks ~7,500 steps a day. Let’s beat that today.",
	"Walking 1 mile burns about 100 calories. Time to earn that snack.",
	"Regular walking lowers heart disease risk by 30%. Let’s go protect that ticker.",
	"The longest recorded walk was 19,019 miles! We’ll settle for a few hundred today.",
	"Walking boosts creativity by up to 60%. Maybe your next big idea is a few steps away.",
	"A brisk walk can add years to your life. Start investing now.",
	"Walking 20 minutes a day can cut fatigue by 65%. Energy upgrade, incoming.",
	"Your bones love walking, it keeps them strong and healthy.",
	"People who walk more smile more. Coincidence? Let’s find out.",
	"Walking just 30 minutes a day can improve your memory and brain function.",
	"Walking after meals helps control blood sugar levels.",
	"Walking outdoors can boost vitamin D and improve your mood.",
	"People who walk regularly sleep better at night.",
	"Walking improves posture and reduces back pain.",
	"Walking daily can help lower stress hormones by up to 15%.",
	"Walking is a weight-bearing exercise that strengthens muscles and bones.",
	"Brisk walking burns more fat than jogging at the same distance.",
	"Walking can reduce the risk of stroke by up to 27%.",
}

// Inactivity copy variations. Purely cosmetic; picked at random per send.
var inactivityTitles = []string{
	"🕒 Time to Move",
	"Stretch Those Legs",
	"Beat the Couch",
	"Don't be a potato",
	"Your Steps Miss You",
	"Quick Walk Break?",
	"Don't Let the Day Sit Still",
}

var inactivityBodies = []string{
	"Your shoes miss you. Take them out for a walk 🥿🚶",
	"Those steps won’t count themselves… unless you’re on a moving bus. 😉",
	"Your couch is winning. Time to fight back 💪",
	"Warning: Sitting too long may cause excessive scrolling 🤳. Walk a bit instead!",
	"Your step counter is bored. Make it happy!",
	"Imagine how proud your future self will be if you walk now 🏆",
	"Stand up, stretch, and take 100 steps. Your streak will thank you!",
	"Your leaderboard rivals hope you stay seated… Don’t give them that satisfaction 😏",
	"Even a short walk counts. Let’s go!",
	"This is your gentle reminder to stop being a potato 🥔",
}

// RewardWin congratulates one leaderboard winner.
func RewardWin(kind string, e models.LeaderboardEntry, periodKey string) Message {
	var title, body, dateKey string
	switch kind {
	case models.PeriodWeekly:
		title = "Weekly Leaderboard Winner! 🏆"
		body = fmt.Sprintf("Congratulations! You finished %s this week with %d steps and earned %d coins!",
			leaderboard.Ordinal(e.Rank), e.Steps, e.Reward)
		dateKey = "weekEndDate"
	default:
		title = "Daily Leaderboard Winner! 🏆"
		body = fmt.Sprintf("Congratulations! You finished %s with %d steps and earned %d coins!",
			leaderboard.Ordinal(e.Rank), e.Steps, e.Reward)
		dateKey = "date"
	}
	return Message{
		Title: title,
		Body:  body,
		Data: map[string]string{
			"type":         kind + "_reward",
			"rank":         fmt.Sprintf("%d", e.Rank),
			"steps":        fmt.Sprintf("%d", e.Steps),
			"coins":        fmt.Sprintf("%d", e.Reward),
			dateKey:        periodKey,
			"click_action": clickAction,
		},
	}
}

// GoalCompleted fires when today's counter first crosses the goal.
func GoalCompleted(goal int64, dayKey string) Message {
	return Message{
		Title: "Daily Challenge Completed",
		Body:  fmt.Sprintf("You've completed your daily step goal of %d steps!", goal),
		Data: map[string]string{
			"type":         "daily_goal_completed",
			"goal":         fmt.Sprintf("%d", goal),
			"date":         dayKey,
			"click_action": clickAction,
		},
	}
}

// GoalReminder nudges users still short of today's goal in the evening.
func GoalReminder(goal int64, timestampMs int64) Message {
	return Message{
		Title: "⏰ Streak in Danger!",
		Body:  "You're running out of time to reach today's goal.",
		Data: map[string]string{
			"type":         "final",
			"goal":         fmt.Sprintf("%d", goal),
			"timestamp":    fmt.Sprintf("%d", timestampMs),
			"click_action": clickAction,
		},
	}
}

// DailyFact returns the fact of the day: deterministic per day-of-year,
// identical for every user.
func DailyFact(dayOfYear int, dayKey string) Message {
	fact := walkingFacts[dayOfYear%len(walkingFacts)]
	return Message{
		Title: "Did you know",
		Body:  fact,
		Data: map[string]string{
			"type":         "daily_fact",
			"category":     FactCategory,
			"date":         dayKey,
			"click_action": clickAction,
		},
	}
}

// Inactivity picks a random title/body pair from the fixed pools.
func Inactivity(dayKey string) Message {
	return Message{
		Title: inactivityTitles[rand.Intn(len(inactivityTitles))],
		Body:  inactivityBodies[rand.Intn(len(inactivityBodies))],
		Data: map[string]string{
			"type":         "inactivity",
			"date":         dayKey,
			"click_action": clickAction,
		},
	}
}

// Invite notifies the invited user about a new duo challenge.
func Invite(inviterName, inviteID string) Message {
	if inviterName == "" {
		inviterName = "Someone"
	}
	return Message{
		Title: "Duo Challenge Invite",
		Body:  fmt.Sprintf("%s is inviting you to a Duo Challenge!", inviterName),
		Data: map[string]string{
			"type":            "duo_challenge_invite",
			"inviterUsername": inviterName,
			"inviteId":        inviteID,
			"click_action":    clickAction,
		},
	}
}
