package service

import (
	"context"

	"github.com/lyxa123/TubeHeads-sub000/internal/apperr"
	"github.com/lyxa123/TubeHeads-sub000/internal/models"
)

// LibraryService: watchlist y vistos del usuario. Todas las operaciones son
// idempotentes; repetir una llamada deja el estado igual que la primera.
type LibraryService struct {
	watchlist WatchlistStore
	watched   WatchedStore
	shows     *ShowService
}

func NewLibraryService(watchlist WatchlistStore, watched WatchedStore, shows *ShowService) *LibraryService {
	return &LibraryService{watchlist: watchlist, watched: watched, shows: shows}
}

// ================== WATCHLIST ==================

func (s *LibraryService) AddToWatchlist(ctx context.Context, userID string, showID int) (*models.WatchlistEntry, error) {
	if _, err := s.shows.Ensure(ctx, showID); err != nil {
		return nil, err
	}
	return s.watchlist.Upsert(ctx, userID, showID)
}

func (s *LibraryService) RemoveFromWatchlist(ctx context.Context, userID string, showID int) error {
	return s.watchlist.Remove(ctx, userID, showID)
}

func (s *LibraryService) IsInWatchlist(ctx context.Context, userID string, showID int) (bool, error) {
	e, err := s.watchlist.Get(ctx, userID, showID)
	if err != nil {
		return false, err
	}
	return e != nil, nil
}

// Watchlist devuelve las entradas ordenadas por addedAt descendente.
func (s *LibraryService) Watchlist(ctx context.Context, userID string) ([]models.WatchlistEntry, error) {
	return s.watchlist.FindByUser(ctx, userID)
}

// ================== VISTOS ==================

// MarkWatched upserta la entrada de visto. Si ya existía reemplaza
// watchedAt; la nota personal [1,5] solo cambia si viene en el request
// (clear la borra explícitamente).
func (s *LibraryService) MarkWatched(ctx context.Context, userID string, showID int, rating *int, clear bool) (*models.WatchedEntry, error) {
	if rating != nil && (*rating < 1 || *rating > 5) {
		return nil, apperr.Validation("nota personal %d fuera de rango [1,5]", *rating)
	}
	if _, err := s.shows.Ensure(ctx, showID); err != nil {
		return nil, err
	}
	return s.watched.Upsert(ctx, userID, showID, rating, clear)
}

// UnmarkWatched saca la entrada si está; si no está, no pasa nada.
func (s *LibraryService) UnmarkWatched(ctx context.Context, userID string, showID int) error {
	return s.watched.Remove(ctx, userID, showID)
}

// Watched devuelve las entradas ordenadas por watchedAt descendente.
func (s *LibraryService) Watched(ctx context.Context, userID string) ([]models.WatchedEntry, error) {
	return s.watched.FindByUser(ctx, userID)
}
