package handler

import (
	"net/http"

	"github.com/lyxa123/TubeHeads-sub000/internal/service"
)

type RatingHandler struct {
	svc *service.RatingService
}

func NewRatingHandler(s *service.RatingService) *RatingHandler { return &RatingHandler{svc: s} }

type ratingRequest struct {
	ShowID int     `json:"showId" validate:"required,gt=0"`
	Rating float64 `json:"rating" validate:"gte=0,lte=5"`
}

// @Summary Calificar una serie (upsert: repetir pisa la nota anterior)
// @Tags ratings
// @Accept json
// @Produce json
// @Param body body ratingRequest true "rating"
// @Success 200 {object} models.ShowRating
// @Router /me/ratings [post]
func (h *RatingHandler) PostMyRating(w http.ResponseWriter, r *http.Request) {
	var req ratingRequest
	if !decodeBody(w, r, &req) {
		return
	}

	agg, err := h.svc.Rate(r.Context(), UserIDFromContext(r.Context()), req.ShowID, req.Rating)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agg)
}
