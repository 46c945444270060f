package handler

import (
	"net/http"

	"github.com/lyxa123/TubeHeads-sub000/internal/service"
)

type LibraryHandler struct {
	svc *service.LibraryService
}

func NewLibraryHandler(s *service.LibraryService) *LibraryHandler { return &LibraryHandler{svc: s} }

// ================== WATCHLIST ==================

// @Summary Agregar a la watchlist (idempotente)
// @Tags library
// @Produce json
// @Param id path int true "showId (TMDB)"
// @Success 200 {object} models.WatchlistEntry
// @Router /me/watchlist/{id} [put]
func (h *LibraryHandler) AddToWatchlist(w http.ResponseWriter, r *http.Request) {
	id, ok := showIDParam(w, r)
	if !ok {
		return
	}

	entry, err := h.svc.AddToWatchlist(r.Context(), UserIDFromContext(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// @Summary Sacar de la watchlist (no-op si no estaba)
// @Tags library
// @Param id path int true "showId (TMDB)"
// @Success 204
// @Router /me/watchlist/{id} [delete]
func (h *LibraryHandler) RemoveFromWatchlist(w http.ResponseWriter, r *http.Request) {
	id, ok := showIDParam(w, r)
	if !ok {
		return
	}

	if err := h.svc.RemoveFromWatchlist(r.Context(), UserIDFromContext(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary ¿Está en la watchlist?
// @Tags library
// @Produce json
// @Param id path int true "showId (TMDB)"
// @Success 200 {object} map[string]bool
// @Router /me/watchlist/{id} [get]
func (h *LibraryHandler) IsInWatchlist(w http.ResponseWriter, r *http.Request) {
	id, ok := showIDParam(w, r)
	if !ok {
		return
	}

	in, err := h.svc.IsInWatchlist(r.Context(), UserIDFromContext(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"inWatchlist": in})
}

// @Summary Watchlist del usuario (addedAt desc)
// @Tags library
// @Produce json
// @Success 200 {array} models.WatchlistEntry
// @Router /me/watchlist [get]
func (h *LibraryHandler) GetWatchlist(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Watchlist(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// ================== VISTOS ==================

type markWatchedRequest struct {
	// Nota personal opcional, distinta del rating público.
	Rating      *int `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
	ClearRating bool `json:"clearRating,omitempty"`
}

// @Summary Marcar como visto (upsert; rating omitido conserva el anterior)
// @Tags library
// @Accept json
// @Produce json
// @Param id path int true "showId (TMDB)"
// @Param body body markWatchedRequest false "nota personal"
// @Success 200 {object} models.WatchedEntry
// @Router /me/watched/{id} [put]
func (h *LibraryHandler) MarkWatched(w http.ResponseWriter, r *http.Request) {
	id, ok := showIDParam(w, r)
	if !ok {
		return
	}

	var req markWatchedRequest
	if r.ContentLength > 0 && !decodeBody(w, r, &req) {
		return
	}

	entry, err := h.svc.MarkWatched(r.Context(), UserIDFromContext(r.Context()), id, req.Rating, req.ClearRating)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// @Summary Desmarcar visto (no-op si no estaba)
// @Tags library
// @Param id path int true "showId (TMDB)"
// @Success 204
// @Router /me/watched/{id} [delete]
func (h *LibraryHandler) UnmarkWatched(w http.ResponseWriter, r *http.Request) {
	id, ok := showIDParam(w, r)
	if !ok {
		return
	}

	if err := h.svc.UnmarkWatched(r.Context(), UserIDFromContext(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Vistos del usuario (watchedAt desc)
// @Tags library
// @Produce json
// @Success 200 {array} models.WatchedEntry
// @Router /me/watched [get]
func (h *LibraryHandler) GetWatched(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Watched(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
