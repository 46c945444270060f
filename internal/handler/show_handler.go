package handler

import (
	"net/http"
	"strconv"

	"github.com/lyxa123/TubeHeads-sub000/internal/apperr"
	"github.com/lyxa123/TubeHeads-sub000/internal/service"

	"github.com/go-chi/chi/v5"
)

type ShowHandler struct {
	shows   *service.ShowService
	ratings *service.RatingService
	reviews *service.ReviewService
}

func NewShowHandler(shows *service.ShowService, ratings *service.RatingService, reviews *service.ReviewService) *ShowHandler {
	return &ShowHandler{shows: shows, ratings: ratings, reviews: reviews}
}

// showIDParam parsea el {id} numérico de la URL (id externo de TMDB).
func showIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeError(w, apperr.Validation("showId inválido"))
		return 0, false
	}
	return id, true
}

// @Summary Series en tendencia
// @Tags shows
// @Produce json
// @Success 200 {array} metadata.ShowDetail
// @Router /shows/trending [get]
func (h *ShowHandler) Trending(w http.ResponseWriter, r *http.Request) {
	items, err := h.shows.Trending(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// @Summary Detalle de una serie
// @Tags shows
// @Produce json
// @Param id path int true "showId (TMDB)"
// @Success 200 {object} models.ShowDoc
// @Router /shows/{id} [get]
func (h *ShowHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := showIDParam(w, r)
	if !ok {
		return
	}

	show, err := h.shows.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, show)
}

// @Summary Rating agregado de una serie
// @Tags shows
// @Produce json
// @Param id path int true "showId (TMDB)"
// @Success 200 {object} models.ShowRating
// @Router /shows/{id}/rating [get]
func (h *ShowHandler) GetRating(w http.ResponseWriter, r *http.Request) {
	id, ok := showIDParam(w, r)
	if !ok {
		return
	}

	agg, err := h.ratings.GetAverage(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agg)
}

// @Summary Reseñas de una serie (createdAt desc)
// @Tags shows
// @Produce json
// @Param id path int true "showId (TMDB)"
// @Param limit query int false "límite"
// @Param offset query int false "offset"
// @Success 200 {array} models.ReviewDoc
// @Router /shows/{id}/reviews [get]
func (h *ShowHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	id, ok := showIDParam(w, r)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	list, err := h.reviews.ForShow(r.Context(), id, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
