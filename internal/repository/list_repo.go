package repository

import (
	"context"
	"time"

	"github.com/lyxa123/TubeHeads-sub000/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ListRepository struct {
	col *mongo.Collection
}

func NewListRepository(database *mongo.Database) *ListRepository {
	return &ListRepository{col: database.Collection("lists")}
}

func (r *ListRepository) Insert(ctx context.Context, l *models.ShowListDoc) error {
	res, err := r.col.InsertOne(ctx, l)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		l.ID = oid
	}
	return nil
}

func (r *ListRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.ShowListDoc, error) {
	var l models.ShowListDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&l)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &l, err
}

func (r *ListRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// AddShow: $addToSet mantiene orden de inserción y suprime duplicados solo.
func (r *ListRepository) AddShow(ctx context.Context, id primitive.ObjectID, showID int) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$addToSet": bson.M{"showIds": showID},
			"$set":      bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	return err
}

// RemoveShow: sacar un id que no está es un no-op.
func (r *ListRepository) RemoveShow(ctx context.Context, id primitive.ObjectID, showID int) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$pull": bson.M{"showIds": showID},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	return err
}

func (r *ListRepository) SetPrivacy(ctx context.Context, id primitive.ObjectID, isPrivate bool) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isPrivate": isPrivate, "updatedAt": time.Now().UTC()}},
	)
	return err
}

func (r *ListRepository) FindByOwner(ctx context.Context, ownerID string, includePrivate bool) ([]models.ShowListDoc, error) {
	filter := bson.M{"ownerId": ownerID}
	if !includePrivate {
		filter["isPrivate"] = false
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.ShowListDoc
	for cur.Next(ctx) {
		var l models.ShowListDoc
		if err := cur.Decode(&l); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, cur.Err()
}
