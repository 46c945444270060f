package service

import (
	"context"
	"strings"
	"time"

	"github.com/lyxa123/TubeHeads-sub000/internal/apperr"
	"github.com/lyxa123/TubeHeads-sub000/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewService: reseñas de texto, una viva por (show, usuario). El rating
// de la reseña y el ledger se mantienen consistentes: alta/edición/baja de
// reseña delegan la parte de rating en RatingService, y el reviewCount viaja
// en la misma escritura condicional que el mapa de ratings.
type ReviewService struct {
	reviews ReviewStore
	shows   *ShowService
	ratings *RatingService
	feed    ReviewPublisher
}

func NewReviewService(reviews ReviewStore, shows *ShowService, ratings *RatingService, feed ReviewPublisher) *ReviewService {
	return &ReviewService{reviews: reviews, shows: shows, ratings: ratings, feed: feed}
}

// Add crea la reseña. Si el usuario ya reseñó este show devuelve conflict:
// el cliente tiene que ir por Edit (el índice único cubre la carrera que el
// pre-chequeo no ve).
func (s *ReviewService) Add(ctx context.Context, userID string, showID int, content string, rating float64) (*models.ReviewDoc, error) {
	if rating < 0 || rating > 5 {
		return nil, apperr.Validation("rating %.2f fuera de rango [0,5]", rating)
	}
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Validation("la reseña no puede estar vacía")
	}

	prev, err := s.reviews.FindByShowUser(ctx, showID, userID)
	if err != nil {
		return nil, err
	}
	if prev != nil {
		return nil, apperr.Conflict("ya existe una reseña de este usuario para el show %d", showID)
	}

	// El show tiene que existir (o poder crearse desde TMDB) antes de
	// insertar la reseña.
	if _, err := s.shows.Ensure(ctx, showID); err != nil {
		return nil, err
	}

	rev := &models.ReviewDoc{
		ShowID:    showID,
		UserID:    userID,
		Content:   content,
		Rating:    rating,
		LikedBy:   []string{},
		CreatedAt: time.Now().UTC(),
	}
	if err := s.reviews.Insert(ctx, rev); err != nil {
		return nil, err
	}

	// Rating upsert + reviewCount en la misma escritura condicional, para
	// que el agregado quede consistente de un solo golpe.
	if _, err := s.ratings.applyToShow(ctx, showID, func(sh *models.ShowDoc) {
		sh.Ratings[userID] = rating
		sh.ReviewCount++
	}); err != nil {
		return nil, err
	}

	if s.feed != nil {
		s.feed.PublishReview(*rev)
	}
	return rev, nil
}

// Edit actualiza contenido y rating; el agregado del show se realinea con el
// rating editado. Solo el autor puede editar.
func (s *ReviewService) Edit(ctx context.Context, reviewID, userID, content string, rating float64) (*models.ReviewDoc, error) {
	if rating < 0 || rating > 5 {
		return nil, apperr.Validation("rating %.2f fuera de rango [0,5]", rating)
	}

	rev, err := s.mustGet(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if rev.UserID != userID {
		return nil, apperr.Permission("la reseña no es de este usuario")
	}

	now := time.Now().UTC()
	rev.Content = content
	rev.Rating = rating
	rev.EditedAt = &now
	if err := s.reviews.Update(ctx, rev); err != nil {
		return nil, err
	}

	if _, err := s.ratings.Rate(ctx, userID, rev.ShowID, rating); err != nil {
		return nil, err
	}
	return rev, nil
}

// Delete borra la reseña y su rating juntos: saca la entrada del usuario de
// Show.ratings, recomputa el promedio y decrementa reviewCount en una sola
// escritura condicional.
func (s *ReviewService) Delete(ctx context.Context, reviewID, userID string) error {
	rev, err := s.mustGet(ctx, reviewID)
	if err != nil {
		return err
	}
	if rev.UserID != userID {
		return apperr.Permission("la reseña no es de este usuario")
	}

	if err := s.reviews.Delete(ctx, rev.ID); err != nil {
		return err
	}

	_, err = s.ratings.applyToShow(ctx, rev.ShowID, func(sh *models.ShowDoc) {
		delete(sh.Ratings, userID)
		if sh.ReviewCount > 0 {
			sh.ReviewCount--
		}
	})
	return err
}

// Like es un toggle: con like previo lo saca, sin like lo agrega. Devuelve
// el estado post-mutación para que el cliente no tenga que adivinar.
func (s *ReviewService) Like(ctx context.Context, reviewID, userID string) (*models.LikeState, error) {
	oid, err := parseReviewID(reviewID)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < aggregateRetries; attempt++ {
		rev, err := s.reviews.FindByID(ctx, oid)
		if err != nil {
			return nil, err
		}
		if rev == nil {
			return nil, apperr.NotFound("reseña %s no existe", reviewID)
		}

		var ok bool
		liked := rev.LikedByUser(userID)
		if liked {
			ok, err = s.reviews.Unlike(ctx, oid, userID)
		} else {
			ok, err = s.reviews.Like(ctx, oid, userID)
		}
		if err != nil {
			return nil, err
		}
		if !ok {
			// otro toggle del mismo usuario ganó la carrera; releer y repetir
			continue
		}

		count := rev.LikeCount + 1
		if liked {
			count = rev.LikeCount - 1
		}
		return &models.LikeState{ReviewID: reviewID, LikeCount: count, LikedByCaller: !liked}, nil
	}
	return nil, apperr.Conflict("like de la reseña %s: demasiados reintentos", reviewID)
}

func (s *ReviewService) ForShow(ctx context.Context, showID int, limit, offset int) ([]models.ReviewDoc, error) {
	return s.reviews.FindByShow(ctx, showID, normalizeLimit(limit), offset)
}

func (s *ReviewService) ByUser(ctx context.Context, userID string, limit, offset int) ([]models.ReviewDoc, error) {
	return s.reviews.FindByUser(ctx, userID, normalizeLimit(limit), offset)
}

func (s *ReviewService) mustGet(ctx context.Context, reviewID string) (*models.ReviewDoc, error) {
	oid, err := parseReviewID(reviewID)
	if err != nil {
		return nil, err
	}
	rev, err := s.reviews.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if rev == nil {
		return nil, apperr.NotFound("reseña %s no existe", reviewID)
	}
	return rev, nil
}

func parseReviewID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperr.NotFound("reseña %s no existe", id)
	}
	return oid, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 50
	}
	return limit
}
