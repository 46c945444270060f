package repository

import (
	"context"
	"time"

	"github.com/lyxa123/TubeHeads-sub000/internal/apperr"
	"github.com/lyxa123/TubeHeads-sub000/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ShowRepository struct {
	col *mongo.Collection
}

func NewShowRepository(database *mongo.Database) *ShowRepository {
	return &ShowRepository{col: database.Collection("shows")}
}

func (r *ShowRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "tmdbId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *ShowRepository) GetByTMDBID(ctx context.Context, tmdbID int) (*models.ShowDoc, error) {
	var s models.ShowDoc
	err := r.col.FindOne(ctx, bson.M{"tmdbId": tmdbID}).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &s, err
}

// Insert crea el show. Si otro request lo creó en paralelo (índice único
// sobre tmdbId) devolvemos conflict para que el servicio relea.
func (r *ShowRepository) Insert(ctx context.Context, s *models.ShowDoc) error {
	res, err := r.col.InsertOne(ctx, s)
	if mongo.IsDuplicateKeyError(err) {
		return apperr.Conflict("show %d ya existe", s.TMDBID)
	}
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		s.ID = oid
	}
	return nil
}

// UpdateAggregate escribe ratings/average/reviewCount de forma condicional:
// solo aplica si la versión leída sigue vigente. ModifiedCount 0 significa
// que alguien escribió en el medio y hay que reintentar el ciclo completo.
func (r *ShowRepository) UpdateAggregate(ctx context.Context, s *models.ShowDoc) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": s.ID, "version": s.Version},
		bson.M{"$set": bson.M{
			"ratings":       s.Ratings,
			"averageRating": s.AverageRating,
			"reviewCount":   s.ReviewCount,
			"updatedAt":     time.Now().UTC(),
		}, "$inc": bson.M{"version": 1}},
	)
	if err != nil {
		return err
	}
	if res.ModifiedCount == 0 {
		return apperr.Conflict("show %d: escritura concurrente", s.TMDBID)
	}
	return nil
}
