package service

import (
	"context"

	"github.com/lyxa123/TubeHeads-sub000/internal/metadata"
	"github.com/lyxa123/TubeHeads-sub000/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contratos de persistencia que consumen los servicios. Los implementan los
// repositorios de Mongo; los tests los reemplazan por fakes en memoria.

type ShowStore interface {
	GetByTMDBID(ctx context.Context, tmdbID int) (*models.ShowDoc, error)
	Insert(ctx context.Context, s *models.ShowDoc) error
	// UpdateAggregate es la escritura condicional: falla con conflict si la
	// versión leída ya no es la vigente.
	UpdateAggregate(ctx context.Context, s *models.ShowDoc) error
}

type ReviewStore interface {
	Insert(ctx context.Context, rev *models.ReviewDoc) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.ReviewDoc, error)
	FindByShowUser(ctx context.Context, showID int, userID string) (*models.ReviewDoc, error)
	Update(ctx context.Context, rev *models.ReviewDoc) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Like(ctx context.Context, id primitive.ObjectID, userID string) (bool, error)
	Unlike(ctx context.Context, id primitive.ObjectID, userID string) (bool, error)
	FindByShow(ctx context.Context, showID int, limit, offset int) ([]models.ReviewDoc, error)
	FindByUser(ctx context.Context, userID string, limit, offset int) ([]models.ReviewDoc, error)
}

type WatchlistStore interface {
	Upsert(ctx context.Context, userID string, showID int) (*models.WatchlistEntry, error)
	Get(ctx context.Context, userID string, showID int) (*models.WatchlistEntry, error)
	Remove(ctx context.Context, userID string, showID int) error
	FindByUser(ctx context.Context, userID string) ([]models.WatchlistEntry, error)
}

type WatchedStore interface {
	Upsert(ctx context.Context, userID string, showID int, rating *int, clear bool) (*models.WatchedEntry, error)
	Get(ctx context.Context, userID string, showID int) (*models.WatchedEntry, error)
	Remove(ctx context.Context, userID string, showID int) error
	FindByUser(ctx context.Context, userID string) ([]models.WatchedEntry, error)
}

type ListStore interface {
	Insert(ctx context.Context, l *models.ShowListDoc) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.ShowListDoc, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	AddShow(ctx context.Context, id primitive.ObjectID, showID int) error
	RemoveShow(ctx context.Context, id primitive.ObjectID, showID int) error
	SetPrivacy(ctx context.Context, id primitive.ObjectID, isPrivate bool) error
	FindByOwner(ctx context.Context, ownerID string, includePrivate bool) ([]models.ShowListDoc, error)
}

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.UserDoc, error)
	FindByID(ctx context.Context, id string) (*models.UserDoc, error)
	Insert(ctx context.Context, u *models.UserDoc) error
}

// MetadataAPI es el API externo de series (TMDB), solo lectura.
type MetadataAPI interface {
	GetShow(ctx context.Context, tmdbID int) (*metadata.ShowDetail, error)
	TrendingTV(ctx context.Context) ([]metadata.ShowDetail, error)
}

// ReviewPublisher recibe las reseñas recién publicadas (feed websocket).
type ReviewPublisher interface {
	PublishReview(rev models.ReviewDoc)
}
