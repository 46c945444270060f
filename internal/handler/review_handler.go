package handler

import (
	"net/http"
	"strconv"

	"github.com/lyxa123/TubeHeads-sub000/internal/service"

	"github.com/go-chi/chi/v5"
)

type ReviewHandler struct {
	svc *service.ReviewService
}

func NewReviewHandler(s *service.ReviewService) *ReviewHandler { return &ReviewHandler{svc: s} }

type reviewCreateRequest struct {
	ShowID  int     `json:"showId" validate:"required,gt=0"`
	Content string  `json:"content" validate:"required"`
	Rating  float64 `json:"rating" validate:"gte=0,lte=5"`
}

type reviewEditRequest struct {
	Content string  `json:"content" validate:"required"`
	Rating  float64 `json:"rating" validate:"gte=0,lte=5"`
}

// @Summary Publicar reseña (409 si ya reseñó este show: usar PUT)
// @Tags reviews
// @Accept json
// @Produce json
// @Param body body reviewCreateRequest true "reseña"
// @Success 201 {object} models.ReviewDoc
// @Failure 409 {object} errorResponse
// @Router /me/reviews [post]
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req reviewCreateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rev, err := h.svc.Add(r.Context(), UserIDFromContext(r.Context()), req.ShowID, req.Content, req.Rating)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rev)
}

// @Summary Editar reseña propia (realinea el rating del show)
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path string true "reviewId"
// @Param body body reviewEditRequest true "reseña"
// @Success 200 {object} models.ReviewDoc
// @Router /reviews/{id} [put]
func (h *ReviewHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var req reviewEditRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rev, err := h.svc.Edit(r.Context(), chi.URLParam(r, "id"), UserIDFromContext(r.Context()), req.Content, req.Rating)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rev)
}

// @Summary Borrar reseña propia (borra también su rating del agregado)
// @Tags reviews
// @Param id path string true "reviewId"
// @Success 204
// @Router /reviews/{id} [delete]
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"), UserIDFromContext(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Like/unlike (toggle) de una reseña
// @Tags reviews
// @Produce json
// @Param id path string true "reviewId"
// @Success 200 {object} models.LikeState
// @Router /reviews/{id}/like [post]
func (h *ReviewHandler) Like(w http.ResponseWriter, r *http.Request) {
	state, err := h.svc.Like(r.Context(), chi.URLParam(r, "id"), UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// @Summary Reseñas del usuario autenticado (createdAt desc)
// @Tags reviews
// @Produce json
// @Success 200 {array} models.ReviewDoc
// @Router /me/reviews [get]
func (h *ReviewHandler) Mine(w http.ResponseWriter, r *http.Request) {
	h.byUser(w, r, UserIDFromContext(r.Context()))
}

// @Summary Reseñas de un usuario (createdAt desc)
// @Tags reviews
// @Produce json
// @Param id path string true "userId"
// @Success 200 {array} models.ReviewDoc
// @Router /users/{id}/reviews [get]
func (h *ReviewHandler) ByUser(w http.ResponseWriter, r *http.Request) {
	h.byUser(w, r, chi.URLParam(r, "id"))
}

func (h *ReviewHandler) byUser(w http.ResponseWriter, r *http.Request, userID string) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	list, err := h.svc.ByUser(r.Context(), userID, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
