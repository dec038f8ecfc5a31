package services

import (
	"context"
	"fmt"

	"github.com/agency-content/backend/internal/models"
	"github.com/agency-content/backend/internal/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidTransition is returned when an update asks for a status
// the current one cannot move to.
var ErrInvalidTransition = fmt.Errorf("invalid status transition")

type ContentService struct {
	contentRepo ContentStore
	clientRepo  ClientStore
	log         *zap.Logger
}

func NewContentService(contentRepo ContentStore, clientRepo ClientStore, log *zap.Logger) *ContentService {
	return &ContentService{contentRepo: contentRepo, clientRepo: clientRepo, log: log}
}

func (s *ContentService) GetByID(ctx context.Context, id uuid.UUID, ownerUserID string) (*models.Content, error) {
	c, err := s.contentRepo.GetOwned(ctx, id, ownerUserID)
	if err != nil {
		return nil, ErrNotFound
	}
	return c, nil
}

// List returns all content visible to the owner, optionally filtered.
func (s *ContentService) List(ctx context.Context, ownerUserID string, f repositories.ContentFilter) ([]models.Content, error) {
	f.OwnerUserID = &ownerUserID
	return s.contentRepo.List(ctx, f)
}

// ListByClient scopes the listing to one owned client.
func (s *ContentService) ListByClient(ctx context.Context, clientID uuid.UUID, ownerUserID string, f repositories.ContentFilter) ([]models.Content, error) {
	if _, err := s.clientRepo.GetOwned(ctx, clientID, ownerUserID); err != nil {
		return nil, ErrNotFound
	}
	f.ClientID = &clientID
	f.OwnerUserID = &ownerUserID
	return s.contentRepo.List(ctx, f)
}

func (s *ContentService) Stats(ctx context.Context, clientID uuid.UUID, ownerUserID string) (*models.ContentStats, error) {
	if _, err := s.clientRepo.GetOwned(ctx, clientID, ownerUserID); err != nil {
		return nil, ErrNotFound
	}
	return s.contentRepo.Stats(ctx, clientID)
}

// Update applies a full-field update. Status moves are validated
// against the transition graph; a same-status update always passes.
func (s *ContentService) Update(ctx context.Context, id uuid.UUID, ownerUserID string, c *models.Content) (*models.Content, error) {
	existing, err := s.contentRepo.GetOwned(ctx, id, ownerUserID)
	if err != nil {
		return nil, ErrNotFound
	}

	if c.Status == "" {
		c.Status = existing.Status
	}
	if !models.IsValidStatusTransition(existing.Status, c.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, existing.Status, c.Status)
	}

	c.ID = existing.ID
	c.ClientID = existing.ClientID
	if c.VisualSuggestions == nil {
		c.VisualSuggestions = existing.VisualSuggestions
	}
	if err := s.contentRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return s.contentRepo.GetOwned(ctx, id, ownerUserID)
}

func (s *ContentService) Delete(ctx context.Context, id uuid.UUID, ownerUserID string) error {
	existing, err := s.contentRepo.GetOwned(ctx, id, ownerUserID)
	if err != nil {
		return ErrNotFound
	}
	return s.contentRepo.Delete(ctx, existing.ID)
}
