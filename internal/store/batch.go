package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mt-apps/walkzilla-backend/internal/models"
)

// mongoBatch queues user updates and history inserts, then commits them in
// one session transaction so readers never observe a partial run.
type mongoBatch struct {
	store   *Mongo
	userOps []mongo.WriteModel
	history []interface{}
}

func (b *mongoBatch) SetFields(userID string, fields map[string]interface{}) {
	b.userOps = append(b.userOps, mongo.NewUpdateOneModel().
		SetFilter(bson.M{"_id": userID}).
		SetUpdate(bson.M{"$set": bson.M(fields)}))
}

func (b *mongoBatch) IncCoins(userID string, amount int64) {
	b.userOps = append(b.userOps, mongo.NewUpdateOneModel().
		SetFilter(bson.M{"_id": userID}).
		SetUpdate(bson.M{"$inc": bson.M{"coins": amount}}))
}

func (b *mongoBatch) ClearToken(userID string) {
	b.userOps = append(b.userOps, mongo.NewUpdateOneModel().
		SetFilter(bson.M{"_id": userID}).
		SetUpdate(bson.M{"$unset": bson.M{"fcmToken": ""}}))
}

func (b *mongoBatch) ResetWeekly(userID string) {
	b.userOps = append(b.userOps, mongo.NewUpdateOneModel().
		SetFilter(bson.M{"_id": userID}).
		SetUpdate(bson.M{"$set": bson.M{"weekly_steps": int64(0)}}))
}

func (b *mongoBatch) AddHistory(rec models.HistoryRecord) {
	b.history = append(b.history, rec)
}

func (b *mongoBatch) Empty() bool {
	return len(b.userOps) == 0 && len(b.history) == 0
}

func (b *mongoBatch) Commit(ctx context.Context) error {
	if b.Empty() {
		return nil
	}

	sess, err := b.store.client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if len(b.userOps) > 0 {
			if _, err := b.store.users.BulkWrite(sc, b.userOps); err != nil {
				return nil, err
			}
		}
		if len(b.history) > 0 {
			if _, err := b.store.history.InsertMany(sc, b.history); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	return err
}
