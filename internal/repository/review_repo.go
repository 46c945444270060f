package repository

import (
	"context"

	"github.com/lyxa123/TubeHeads-sub000/internal/apperr"
	"github.com/lyxa123/TubeHeads-sub000/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReviewRepository struct {
	col *mongo.Collection
}

func NewReviewRepository(database *mongo.Database) *ReviewRepository {
	return &ReviewRepository{col: database.Collection("reviews")}
}

// EnsureIndexes: el índice único (showId, userId) es el que garantiza "una
// reseña viva por usuario por show" aunque dos requests entren a la vez.
func (r *ReviewRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "showId", Value: 1}, {Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *ReviewRepository) Insert(ctx context.Context, rev *models.ReviewDoc) error {
	res, err := r.col.InsertOne(ctx, rev)
	if mongo.IsDuplicateKeyError(err) {
		return apperr.Conflict("ya existe una reseña de este usuario para el show %d", rev.ShowID)
	}
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		rev.ID = oid
	}
	return nil
}

func (r *ReviewRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.ReviewDoc, error) {
	var rev models.ReviewDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&rev)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &rev, err
}

func (r *ReviewRepository) FindByShowUser(ctx context.Context, showID int, userID string) (*models.ReviewDoc, error) {
	var rev models.ReviewDoc
	err := r.col.FindOne(ctx, bson.M{"showId": showID, "userId": userID}).Decode(&rev)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &rev, err
}

func (r *ReviewRepository) Update(ctx context.Context, rev *models.ReviewDoc) error {
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": rev.ID}, rev)
	return err
}

func (r *ReviewRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// Like agrega userID a likedBy solo si todavía no estaba. Devuelve false si
// no modificó nada (ya había like o la reseña desapareció).
func (r *ReviewRepository) Like(ctx context.Context, id primitive.ObjectID, userID string) (bool, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "likedBy": bson.M{"$ne": userID}},
		bson.M{
			"$addToSet": bson.M{"likedBy": userID},
			"$inc":      bson.M{"likeCount": 1},
		},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// Unlike es el inverso exacto de Like.
func (r *ReviewRepository) Unlike(ctx context.Context, id primitive.ObjectID, userID string) (bool, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "likedBy": userID},
		bson.M{
			"$pull": bson.M{"likedBy": userID},
			"$inc":  bson.M{"likeCount": -1},
		},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (r *ReviewRepository) FindByShow(ctx context.Context, showID int, limit, offset int) ([]models.ReviewDoc, error) {
	return r.find(ctx, bson.M{"showId": showID}, limit, offset)
}

func (r *ReviewRepository) FindByUser(ctx context.Context, userID string, limit, offset int) ([]models.ReviewDoc, error) {
	return r.find(ctx, bson.M{"userId": userID}, limit, offset)
}

func (r *ReviewRepository) find(ctx context.Context, filter bson.M, limit, offset int) ([]models.ReviewDoc, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.ReviewDoc
	for cur.Next(ctx) {
		var rev models.ReviewDoc
		if err := cur.Decode(&rev); err != nil {
			return nil, err
		}
		out = append(out, rev)
	}
	return out, cur.Err()
}
