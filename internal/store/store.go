// Package store is the document-store layer. User documents are read and
// mutated only through the operations here: ordered-and-limited queries
// feed the ranking, and all mutations of one pipeline invocation are
// queued on a Batch that commits as a single transaction.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mt-apps/walkzilla-backend/internal/models"
)

// ErrNotFound is returned when a looked-up document does not exist.
var ErrNotFound = errors.New("store: document not found")

// Store is the read/write contract the pipeline and handlers depend on.
// Mongo implements it; tests substitute an in-memory fake.
type Store interface {
	// TopDaily returns up to limit users ordered by daily_steps.<dayKey>
	// descending, ties broken by ascending user id. Users without an
	// entry for the day sort as 0 and are still eligible.
	TopDaily(ctx context.Context, dayKey string, limit int64) ([]models.User, error)
	// TopWeekly is TopDaily over the weekly_steps counter.
	TopWeekly(ctx context.Context, limit int64) ([]models.User, error)
	AllUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	// AddSteps applies a client-reported step delta to today's counter and
	// the weekly total, returning the day counter before and after the
	// update so callers can detect goal crossings.
	AddSteps(ctx context.Context, id, dayKey string, delta int64) (before, after int64, err error)
	// HasHistory reports whether a reward distribution for (kind, date)
	// was already recorded. The run-level idempotency check.
	HasHistory(ctx context.Context, kind, date string) (bool, error)
	// History returns past reward distributions of one kind, newest first.
	History(ctx context.Context, kind string, limit int64) ([]models.HistoryRecord, error)
	CreateInvite(ctx context.Context, inv models.DuoChallengeInvite) error
	// SeedUser bootstraps the leaderboard fields of a new user without
	// touching an existing document's counters.
	SeedUser(ctx context.Context, id string) error
	// RemoveFieldAll unsets one field across every user document.
	RemoveFieldAll(ctx context.Context, field string) (int64, error)
	NewBatch() Batch
}

// Batch accumulates the mutations of one pipeline invocation. Commit
// applies them all-or-nothing; an uncommitted batch has no effect.
type Batch interface {
	// SetFields queues $set of the given fields on one user document.
	SetFields(userID string, fields map[string]interface{})
	// IncCoins queues an additive balance grant. Grants never overwrite.
	IncCoins(userID string, amount int64)
	// ClearToken queues removal of the user's delivery token.
	ClearToken(userID string)
	// ResetWeekly queues weekly_steps = 0 for one user.
	ResetWeekly(userID string)
	// AddHistory queues an append-only history record insert.
	AddHistory(rec models.HistoryRecord)
	Empty() bool
	Commit(ctx context.Context) error
}

// Mongo is the store backed by the users, leaderboard_history and
// duo_challenge_invites collections.
type Mongo struct {
	client  *mongo.Client
	users   *mongo.Collection
	history *mongo.Collection
	invites *mongo.Collection
}

func NewMongo(client *mongo.Client, db *mongo.Database) *Mongo {
	return &Mongo{
		client:  client,
		users:   db.Collection("users"),
		history: db.Collection("leaderboard_history"),
		invites: db.Collection("duo_challenge_invites"),
	}
}

func (m *Mongo) topBy(ctx context.Context, counterPath string, limit int64) ([]models.User, error) {
	// Secondary ascending _id makes equal counters order deterministically
	// instead of leaning on storage internals.
	opts := options.Find().
		SetSort(bson.D{{Key: counterPath, Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(limit)

	cur, err := m.users.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (m *Mongo) TopDaily(ctx context.Context, dayKey string, limit int64) ([]models.User, error) {
	return m.topBy(ctx, "daily_steps."+dayKey, limit)
}

func (m *Mongo) TopWeekly(ctx context.Context, limit int64) ([]models.User, error) {
	return m.topBy(ctx, "weekly_steps", limit)
}

func (m *Mongo) AllUsers(ctx context.Context) ([]models.User, error) {
	cur, err := m.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (m *Mongo) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := m.users.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (m *Mongo) AddSteps(ctx context.Context, id, dayKey string, delta int64) (int64, int64, error) {
	update := bson.M{"$inc": bson.M{
		"daily_steps." + dayKey: delta,
		"weekly_steps":          delta,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)

	var prev models.User
	err := m.users.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&prev)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, 0, ErrNotFound
	}
	if err != nil {
		return 0, 0, err
	}
	before := prev.StepsOn(dayKey)
	return before, before + delta, nil
}

func (m *Mongo) HasHistory(ctx context.Context, kind, date string) (bool, error) {
	n, err := m.history.CountDocuments(ctx, bson.M{"type": kind, "date": date}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (m *Mongo) History(ctx context.Context, kind string, limit int64) ([]models.HistoryRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cur, err := m.history.Find(ctx, bson.M{"type": kind}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var recs []models.HistoryRecord
	if err := cur.All(ctx, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func (m *Mongo) CreateInvite(ctx context.Context, inv models.DuoChallengeInvite) error {
	_, err := m.invites.InsertOne(ctx, inv)
	return err
}

func (m *Mongo) SeedUser(ctx context.Context, id string) error {
	update := bson.M{"$setOnInsert": bson.M{
		"daily_steps":  bson.M{},
		"weekly_steps": int64(0),
		"coins":        int64(0),
	}}
	_, err := m.users.UpdateByID(ctx, id, update, options.Update().SetUpsert(true))
	return err
}

func (m *Mongo) RemoveFieldAll(ctx context.Context, field string) (int64, error) {
	res, err := m.users.UpdateMany(ctx, bson.M{field: bson.M{"$exists": true}}, bson.M{"$unset": bson.M{field: ""}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (m *Mongo) NewBatch() Batch {
	return &mongoBatch{store: m}
}
