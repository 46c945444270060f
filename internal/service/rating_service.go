package service

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/lyxa123/TubeHeads-sub000/internal/apperr"
	"github.com/lyxa123/TubeHeads-sub000/internal/models"
)

// Presupuesto de reintentos del read-modify-write sobre el agregado del show.
const aggregateRetries = 3

// RatingService es el ledger de ratings: dueño de Show.ratings y del
// promedio derivado. Toda mutación del agregado pasa por acá para que dos
// escritores concurrentes sobre el mismo show no se pisen.
type RatingService struct {
	shows     ShowStore
	showsSvc  *ShowService
	sleepFunc func(time.Duration) // reemplazable en tests
}

func NewRatingService(shows ShowStore, showsSvc *ShowService) *RatingService {
	return &RatingService{shows: shows, showsSvc: showsSvc, sleepFunc: time.Sleep}
}

// Rate upserta el rating del usuario (una llamada repetida pisa la anterior,
// nunca suma dos veces al promedio) y recomputa average/count en la misma
// escritura condicional.
func (s *RatingService) Rate(ctx context.Context, userID string, showID int, rating float64) (*models.ShowRating, error) {
	if rating < 0 || rating > 5 {
		return nil, apperr.Validation("rating %.2f fuera de rango [0,5]", rating)
	}

	show, err := s.applyToShow(ctx, showID, func(sh *models.ShowDoc) {
		sh.Ratings[userID] = rating
	})
	if err != nil {
		return nil, err
	}
	return &models.ShowRating{ShowID: showID, Average: show.AverageRating, Count: show.RatingCount()}, nil
}

// GetAverage es lectura pura: {0, 0} para un show sin ratings (o que nadie
// tocó todavía).
func (s *RatingService) GetAverage(ctx context.Context, showID int) (*models.ShowRating, error) {
	show, err := s.shows.GetByTMDBID(ctx, showID)
	if err != nil {
		return nil, err
	}
	if show == nil {
		return &models.ShowRating{ShowID: showID}, nil
	}
	return &models.ShowRating{ShowID: showID, Average: show.AverageRating, Count: show.RatingCount()}, nil
}

// applyToShow es el ciclo read-modify-write con escritura condicional:
// lee el show (creándolo lazy si hace falta), aplica `mutate`, recomputa el
// promedio y escribe solo si la versión no cambió. Conflicto → backoff con
// jitter y reintento, hasta agotar el presupuesto.
func (s *RatingService) applyToShow(ctx context.Context, showID int, mutate func(*models.ShowDoc)) (*models.ShowDoc, error) {
	var lastErr error
	for attempt := 0; attempt < aggregateRetries; attempt++ {
		show, err := s.showsSvc.Ensure(ctx, showID)
		if err != nil {
			return nil, err
		}
		if show.Ratings == nil {
			show.Ratings = map[string]float64{}
		}

		mutate(show)
		show.RecomputeAverage()

		err = s.shows.UpdateAggregate(ctx, show)
		if err == nil {
			return show, nil
		}
		if !errors.Is(err, apperr.ErrConflict) {
			return nil, err
		}

		lastErr = err
		s.sleepFunc(time.Duration(10+rand.Intn(40)) * time.Millisecond << attempt)
	}
	return nil, lastErr
}
