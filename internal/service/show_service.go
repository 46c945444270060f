package service

import (
	"context"
	"errors"
	"time"

	"github.com/lyxa123/TubeHeads-sub000/internal/apperr"
	"github.com/lyxa123/TubeHeads-sub000/internal/cache"
	"github.com/lyxa123/TubeHeads-sub000/internal/metadata"
	"github.com/lyxa123/TubeHeads-sub000/internal/models"
)

const trendingTTL = 10 * time.Minute

type ShowService struct {
	shows ShowStore
	tmdb  MetadataAPI
	cache *cache.Cache
}

func NewShowService(shows ShowStore, tmdb MetadataAPI, c *cache.Cache) *ShowService {
	return &ShowService{shows: shows, tmdb: tmdb, cache: c}
}

// Ensure devuelve el show, creándolo desde TMDB la primera vez que alguien
// lo toca (rating, reseña, watchlist o lista). Si dos requests lo crean a la
// vez gana el índice único y el perdedor relee.
func (s *ShowService) Ensure(ctx context.Context, showID int) (*models.ShowDoc, error) {
	show, err := s.shows.GetByTMDBID(ctx, showID)
	if err != nil {
		return nil, err
	}
	if show != nil {
		return show, nil
	}

	detail, err := s.tmdb.GetShow(ctx, showID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.NotFound("show %d no existe en el catálogo", showID)
		}
		return nil, err
	}

	now := time.Now().UTC()
	show = &models.ShowDoc{
		TMDBID:       showID,
		Title:        detail.Name,
		Overview:     detail.Overview,
		PosterPath:   detail.PosterPath,
		BackdropPath: detail.BackdropPath,
		FirstAirDate: detail.FirstAirDate,
		Ratings:      map[string]float64{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.shows.Insert(ctx, show); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return s.shows.GetByTMDBID(ctx, showID)
		}
		return nil, err
	}
	return show, nil
}

// Get devuelve el show persistido, o uno efímero armado desde TMDB si nadie
// lo tocó todavía (sin crearlo: mirar no es tocar).
func (s *ShowService) Get(ctx context.Context, showID int) (*models.ShowDoc, error) {
	show, err := s.shows.GetByTMDBID(ctx, showID)
	if err != nil {
		return nil, err
	}
	if show != nil {
		return show, nil
	}

	detail, err := s.tmdb.GetShow(ctx, showID)
	if err != nil {
		return nil, err
	}
	return &models.ShowDoc{
		TMDBID:       showID,
		Title:        detail.Name,
		Overview:     detail.Overview,
		PosterPath:   detail.PosterPath,
		BackdropPath: detail.BackdropPath,
		FirstAirDate: detail.FirstAirDate,
	}, nil
}

// Trending lista las series en tendencia, cacheado en Redis con TTL.
func (s *ShowService) Trending(ctx context.Context) ([]metadata.ShowDetail, error) {
	const key = "tmdb:trending:tv"

	var cached []metadata.ShowDetail
	if ok, err := s.cache.GetJSON(ctx, key, &cached); err == nil && ok {
		return cached, nil
	}

	items, err := s.tmdb.TrendingTV(ctx)
	if err != nil {
		return nil, err
	}

	_ = s.cache.SetJSON(ctx, key, items, trendingTTL)
	return items, nil
}
