package repository

import (
	"context"
	"time"

	"github.com/lyxa123/TubeHeads-sub000/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type WatchlistRepository struct {
	col *mongo.Collection
}

func NewWatchlistRepository(database *mongo.Database) *WatchlistRepository {
	return &WatchlistRepository{col: database.Collection("watchlist")}
}

func (r *WatchlistRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "showId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Upsert agrega la entrada si no estaba. Repetir la llamada no toca nada:
// addedAt solo se setea en el insert.
func (r *WatchlistRepository) Upsert(ctx context.Context, userID string, showID int) (*models.WatchlistEntry, error) {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"userId": userID, "showId": showID},
		bson.M{"$setOnInsert": bson.M{"addedAt": time.Now().UTC()}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, userID, showID)
}

func (r *WatchlistRepository) Get(ctx context.Context, userID string, showID int) (*models.WatchlistEntry, error) {
	var e models.WatchlistEntry
	err := r.col.FindOne(ctx, bson.M{"userId": userID, "showId": showID}).Decode(&e)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &e, err
}

// Remove borra si existe; borrar lo que no está es un no-op.
func (r *WatchlistRepository) Remove(ctx context.Context, userID string, showID int) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"userId": userID, "showId": showID})
	return err
}

func (r *WatchlistRepository) FindByUser(ctx context.Context, userID string) ([]models.WatchlistEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "addedAt", Value: -1}})

	cur, err := r.col.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.WatchlistEntry
	for cur.Next(ctx) {
		var e models.WatchlistEntry
		if err := cur.Decode(&e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, cur.Err()
}
