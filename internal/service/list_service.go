package service

import (
	"context"
	"strings"
	"time"

	"github.com/lyxa123/TubeHeads-sub000/internal/apperr"
	"github.com/lyxa123/TubeHeads-sub000/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListService: listas de shows creadas por usuarios. Solo el dueño puede
// mutarlas; las privadas no se muestran a terceros.
type ListService struct {
	lists ListStore
	shows *ShowService
}

func NewListService(lists ListStore, shows *ShowService) *ListService {
	return &ListService{lists: lists, shows: shows}
}

func (s *ListService) Create(ctx context.Context, ownerID, name, description string, isPrivate bool) (*models.ShowListDoc, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Validation("el nombre de la lista no puede estar vacío")
	}

	now := time.Now().UTC()
	l := &models.ShowListDoc{
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		IsPrivate:   isPrivate,
		ShowIDs:     []int{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.lists.Insert(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// AddShow agrega un show a la lista (sin duplicar: semántica de set con
// orden de inserción). Devuelve la lista ya actualizada.
func (s *ListService) AddShow(ctx context.Context, listID, callerID string, showID int) (*models.ShowListDoc, error) {
	l, err := s.mustOwn(ctx, listID, callerID)
	if err != nil {
		return nil, err
	}

	if _, err := s.shows.Ensure(ctx, showID); err != nil {
		return nil, err
	}
	if err := s.lists.AddShow(ctx, l.ID, showID); err != nil {
		return nil, err
	}
	return s.lists.FindByID(ctx, l.ID)
}

// RemoveShow saca un show de la lista; sacar uno ausente es un no-op.
func (s *ListService) RemoveShow(ctx context.Context, listID, callerID string, showID int) (*models.ShowListDoc, error) {
	l, err := s.mustOwn(ctx, listID, callerID)
	if err != nil {
		return nil, err
	}
	if err := s.lists.RemoveShow(ctx, l.ID, showID); err != nil {
		return nil, err
	}
	return s.lists.FindByID(ctx, l.ID)
}

func (s *ListService) SetPrivacy(ctx context.Context, listID, callerID string, isPrivate bool) (*models.ShowListDoc, error) {
	l, err := s.mustOwn(ctx, listID, callerID)
	if err != nil {
		return nil, err
	}
	if err := s.lists.SetPrivacy(ctx, l.ID, isPrivate); err != nil {
		return nil, err
	}
	return s.lists.FindByID(ctx, l.ID)
}

func (s *ListService) Delete(ctx context.Context, listID, callerID string) error {
	l, err := s.mustOwn(ctx, listID, callerID)
	if err != nil {
		return err
	}
	return s.lists.Delete(ctx, l.ID)
}

// ForUser lista las listas de un usuario, createdAt descendente. Las
// privadas solo aparecen cuando el que mira es el dueño.
func (s *ListService) ForUser(ctx context.Context, userID, viewerID string) ([]models.ShowListDoc, error) {
	return s.lists.FindByOwner(ctx, userID, userID == viewerID)
}

// Get devuelve una lista respetando la privacidad frente al viewer.
func (s *ListService) Get(ctx context.Context, listID, viewerID string) (*models.ShowListDoc, error) {
	l, err := s.find(ctx, listID)
	if err != nil {
		return nil, err
	}
	if l.IsPrivate && l.OwnerID != viewerID {
		return nil, apperr.NotFound("lista %s no existe", listID)
	}
	return l, nil
}

func (s *ListService) mustOwn(ctx context.Context, listID, callerID string) (*models.ShowListDoc, error) {
	l, err := s.find(ctx, listID)
	if err != nil {
		return nil, err
	}
	if l.OwnerID != callerID {
		return nil, apperr.Permission("la lista %s no es de este usuario", listID)
	}
	return l, nil
}

func (s *ListService) find(ctx context.Context, listID string) (*models.ShowListDoc, error) {
	oid, err := primitive.ObjectIDFromHex(listID)
	if err != nil {
		return nil, apperr.NotFound("lista %s no existe", listID)
	}
	l, err := s.lists.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, apperr.NotFound("lista %s no existe", listID)
	}
	return l, nil
}
