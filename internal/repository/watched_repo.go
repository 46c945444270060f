package repository

import (
	"context"
	"time"

	"github.com/lyxa123/TubeHeads-sub000/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type WatchedRepository struct {
	col *mongo.Collection
}

func NewWatchedRepository(database *mongo.Database) *WatchedRepository {
	return &WatchedRepository{col: database.Collection("watched")}
}

func (r *WatchedRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "showId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Upsert marca como visto y refresca watchedAt. La nota personal:
//   - rating != nil           → se reemplaza
//   - rating == nil, clear    → se borra
//   - rating == nil, !clear   → queda la que estaba
func (r *WatchedRepository) Upsert(ctx context.Context, userID string, showID int, rating *int, clear bool) (*models.WatchedEntry, error) {
	update := bson.M{"$set": bson.M{"watchedAt": time.Now().UTC()}}
	if rating != nil {
		update["$set"].(bson.M)["rating"] = *rating
	} else if clear {
		update["$unset"] = bson.M{"rating": ""}
	}

	_, err := r.col.UpdateOne(ctx,
		bson.M{"userId": userID, "showId": showID},
		update,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, userID, showID)
}

func (r *WatchedRepository) Get(ctx context.Context, userID string, showID int) (*models.WatchedEntry, error) {
	var e models.WatchedEntry
	err := r.col.FindOne(ctx, bson.M{"userId": userID, "showId": showID}).Decode(&e)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &e, err
}

func (r *WatchedRepository) Remove(ctx context.Context, userID string, showID int) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"userId": userID, "showId": showID})
	return err
}

func (r *WatchedRepository) FindByUser(ctx context.Context, userID string) ([]models.WatchedEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "watchedAt", Value: -1}})

	cur, err := r.col.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.WatchedEntry
	for cur.Next(ctx) {
		var e models.WatchedEntry
		if err := cur.Decode(&e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, cur.Err()
}
