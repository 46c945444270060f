package handler

import (
	"net/http"
	"strconv"

	"github.com/lyxa123/TubeHeads-sub000/internal/apperr"
	"github.com/lyxa123/TubeHeads-sub000/internal/service"

	"github.com/go-chi/chi/v5"
)

type ListHandler struct {
	svc *service.ListService
}

func NewListHandler(s *service.ListService) *ListHandler { return &ListHandler{svc: s} }

type listCreateRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	IsPrivate   bool   `json:"isPrivate"`
}

type listPrivacyRequest struct {
	IsPrivate *bool `json:"isPrivate" validate:"required"`
}

// @Summary Crear lista
// @Tags lists
// @Accept json
// @Produce json
// @Param body body listCreateRequest true "lista"
// @Success 201 {object} models.ShowListDoc
// @Router /me/lists [post]
func (h *ListHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req listCreateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	l, err := h.svc.Create(r.Context(), UserIDFromContext(r.Context()), req.Name, req.Description, req.IsPrivate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

// @Summary Mis listas (privadas incluidas, createdAt desc)
// @Tags lists
// @Produce json
// @Success 200 {array} models.ShowListDoc
// @Router /me/lists [get]
func (h *ListHandler) Mine(w http.ResponseWriter, r *http.Request) {
	me := UserIDFromContext(r.Context())
	lists, err := h.svc.ForUser(r.Context(), me, me)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lists)
}

// @Summary Listas públicas de un usuario (createdAt desc)
// @Tags lists
// @Produce json
// @Param id path string true "userId"
// @Success 200 {array} models.ShowListDoc
// @Router /users/{id}/lists [get]
func (h *ListHandler) ByUser(w http.ResponseWriter, r *http.Request) {
	lists, err := h.svc.ForUser(r.Context(), chi.URLParam(r, "id"), UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lists)
}

// @Summary Ver una lista (respeta privacidad)
// @Tags lists
// @Produce json
// @Param id path string true "listId"
// @Success 200 {object} models.ShowListDoc
// @Router /lists/{id} [get]
func (h *ListHandler) Get(w http.ResponseWriter, r *http.Request) {
	l, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"), UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// @Summary Agregar show a la lista (solo el dueño; sin duplicados)
// @Tags lists
// @Produce json
// @Param id path string true "listId"
// @Param showId path int true "showId (TMDB)"
// @Success 200 {object} models.ShowListDoc
// @Router /lists/{id}/shows/{showId} [put]
func (h *ListHandler) AddShow(w http.ResponseWriter, r *http.Request) {
	showID, ok := listShowIDParam(w, r)
	if !ok {
		return
	}

	l, err := h.svc.AddShow(r.Context(), chi.URLParam(r, "id"), UserIDFromContext(r.Context()), showID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// @Summary Sacar show de la lista (no-op si no estaba)
// @Tags lists
// @Produce json
// @Param id path string true "listId"
// @Param showId path int true "showId (TMDB)"
// @Success 200 {object} models.ShowListDoc
// @Router /lists/{id}/shows/{showId} [delete]
func (h *ListHandler) RemoveShow(w http.ResponseWriter, r *http.Request) {
	showID, ok := listShowIDParam(w, r)
	if !ok {
		return
	}

	l, err := h.svc.RemoveShow(r.Context(), chi.URLParam(r, "id"), UserIDFromContext(r.Context()), showID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// @Summary Cambiar privacidad de la lista
// @Tags lists
// @Accept json
// @Produce json
// @Param id path string true "listId"
// @Param body body listPrivacyRequest true "privacidad"
// @Success 200 {object} models.ShowListDoc
// @Router /lists/{id} [patch]
func (h *ListHandler) SetPrivacy(w http.ResponseWriter, r *http.Request) {
	var req listPrivacyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	l, err := h.svc.SetPrivacy(r.Context(), chi.URLParam(r, "id"), UserIDFromContext(r.Context()), *req.IsPrivate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// @Summary Borrar lista (solo el dueño)
// @Tags lists
// @Param id path string true "listId"
// @Success 204
// @Router /lists/{id} [delete]
func (h *ListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"), UserIDFromContext(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func listShowIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "showId"))
	if err != nil || id <= 0 {
		writeError(w, apperr.Validation("showId inválido"))
		return 0, false
	}
	return id, true
}
