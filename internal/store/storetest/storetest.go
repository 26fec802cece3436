// Package storetest provides an in-memory store.Store for tests. It
// mirrors the Mongo implementation's observable behavior: queries order
// by counter descending then id ascending, and batches apply
// all-or-nothing on Commit.
package storetest

import (
	"context"
	"sort"

	"github.com/mt-apps/walkzilla-backend/internal/models"
	"github.com/mt-apps/walkzilla-backend/internal/store"
)

type Store struct {
	Users   map[string]*models.User
	Records []models.HistoryRecord
	Invites []models.DuoChallengeInvite

	// FailCommit, when set, makes every batch commit fail with it.
	FailCommit error
}

var _ store.Store = (*Store)(nil)

func New(users ...*models.User) *Store {
	s := &Store{Users: map[string]*models.User{}}
	for _, u := range users {
		s.Users[u.ID] = u
	}
	return s
}

func (s *Store) sortedBy(counter func(*models.User) int64, limit int64) []models.User {
	ids := make([]string, 0, len(s.Users))
	for id := range s.Users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := s.Users[ids[i]], s.Users[ids[j]]
		if counter(a) != counter(b) {
			return counter(a) > counter(b)
		}
		return a.ID < b.ID
	})
	if int64(len(ids)) > limit {
		ids = ids[:limit]
	}
	out := make([]models.User, 0, len(ids))
	for _, id := range ids {
		out = append(out, *s.Users[id])
	}
	return out
}

func (s *Store) TopDaily(_ context.Context, dayKey string, limit int64) ([]models.User, error) {
	return s.sortedBy(func(u *models.User) int64 { return u.StepsOn(dayKey) }, limit), nil
}

func (s *Store) TopWeekly(_ context.Context, limit int64) ([]models.User, error) {
	return s.sortedBy(func(u *models.User) int64 { return u.WeeklySteps }, limit), nil
}

func (s *Store) AllUsers(_ context.Context) ([]models.User, error) {
	return s.sortedBy(func(u *models.User) int64 { return 0 }, int64(len(s.Users))), nil
}

func (s *Store) GetUser(_ context.Context, id string) (*models.User, error) {
	u, ok := s.Users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *Store) AddSteps(_ context.Context, id, dayKey string, delta int64) (int64, int64, error) {
	u, ok := s.Users[id]
	if !ok {
		return 0, 0, store.ErrNotFound
	}
	before := u.StepsOn(dayKey)
	if u.DailySteps == nil {
		u.DailySteps = map[string]int64{}
	}
	u.DailySteps[dayKey] = before + delta
	u.WeeklySteps += delta
	return before, before + delta, nil
}

func (s *Store) HasHistory(_ context.Context, kind, date string) (bool, error) {
	for _, rec := range s.Records {
		if rec.Type == kind && rec.Date == date {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) History(_ context.Context, kind string, limit int64) ([]models.HistoryRecord, error) {
	var out []models.HistoryRecord
	for i := len(s.Records) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		if s.Records[i].Type == kind {
			out = append(out, s.Records[i])
		}
	}
	return out, nil
}

func (s *Store) CreateInvite(_ context.Context, inv models.DuoChallengeInvite) error {
	s.Invites = append(s.Invites, inv)
	return nil
}

func (s *Store) SeedUser(_ context.Context, id string) error {
	if _, ok := s.Users[id]; ok {
		return nil
	}
	s.Users[id] = &models.User{ID: id, DailySteps: map[string]int64{}}
	return nil
}

func (s *Store) RemoveFieldAll(context.Context, string) (int64, error) {
	return 0, nil
}

func (s *Store) NewBatch() store.Batch {
	return &Batch{store: s}
}

// Batch queues mutations and applies them on Commit, or none at all when
// FailCommit is set.
type Batch struct {
	store *Store
	ops   []func()
}

func (b *Batch) mutate(userID string, fn func(*models.User)) {
	b.ops = append(b.ops, func() {
		if u, ok := b.store.Users[userID]; ok {
			fn(u)
		}
	})
}

func (b *Batch) SetFields(userID string, fields map[string]interface{}) {
	b.mutate(userID, func(u *models.User) {
		for k, v := range fields {
			switch k {
			case "lastDailyFactDate":
				u.LastDailyFactDate = v.(string)
			case "lastDailyFactCategory":
				u.LastDailyFactCategory = v.(string)
			case "lastInactivityDate":
				u.LastInactivityDate = v.(string)
			case "lastInactivitySteps":
				u.LastInactivitySteps = v.(int64)
			case "lastInactivityTs":
				u.LastInactivityTs = v.(int64)
			case "last_week_rewarded":
				u.LastWeekRewarded = v.(string)
			case "dailyGoalCompletedDate":
				u.DailyGoalCompletedDate = v.(string)
			case "weekly_steps":
				u.WeeklySteps = v.(int64)
			}
		}
	})
}

func (b *Batch) IncCoins(userID string, amount int64) {
	b.mutate(userID, func(u *models.User) { u.Coins += amount })
}

func (b *Batch) ClearToken(userID string) {
	b.mutate(userID, func(u *models.User) { u.FCMToken = "" })
}

func (b *Batch) ResetWeekly(userID string) {
	b.mutate(userID, func(u *models.User) { u.WeeklySteps = 0 })
}

func (b *Batch) AddHistory(rec models.HistoryRecord) {
	b.ops = append(b.ops, func() {
		b.store.Records = append(b.store.Records, rec)
	})
}

func (b *Batch) Empty() bool {
	return len(b.ops) == 0
}

func (b *Batch) Commit(context.Context) error {
	if b.store.FailCommit != nil {
		return b.store.FailCommit
	}
	for _, op := range b.ops {
		op()
	}
	return nil
}
