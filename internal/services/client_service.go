package services

import (
	"context"
	"fmt"

	"github.com/agency-content/backend/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotFound covers both a missing row and an ownership miss, so the
// API never leaks whether a record exists for someone else.
var ErrNotFound = fmt.Errorf("not found")

type ClientService struct {
	clientRepo ClientStore
	log        *zap.Logger
}

func NewClientService(clientRepo ClientStore, log *zap.Logger) *ClientService {
	return &ClientService{clientRepo: clientRepo, log: log}
}

func (s *ClientService) Create(ctx context.Context, ownerUserID string, c *models.Client) error {
	c.OwnerUserID = ownerUserID
	return s.clientRepo.Create(ctx, c)
}

func (s *ClientService) GetByID(ctx context.Context, id uuid.UUID, ownerUserID string) (*models.Client, error) {
	c, err := s.clientRepo.GetOwned(ctx, id, ownerUserID)
	if err != nil {
		return nil, ErrNotFound
	}
	return c, nil
}

func (s *ClientService) List(ctx context.Context, ownerUserID string, limit, offset int) ([]models.Client, error) {
	return s.clientRepo.ListByOwner(ctx, ownerUserID, limit, offset)
}

func (s *ClientService) Update(ctx context.Context, id uuid.UUID, ownerUserID string, c *models.Client) (*models.Client, error) {
	existing, err := s.clientRepo.GetOwned(ctx, id, ownerUserID)
	if err != nil {
		return nil, ErrNotFound
	}

	c.ID = existing.ID
	c.OwnerUserID = existing.OwnerUserID
	if err := s.clientRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return s.clientRepo.GetOwned(ctx, id, ownerUserID)
}

// Delete removes the client and, through the cascade rule, all of its
// content.
func (s *ClientService) Delete(ctx context.Context, id uuid.UUID, ownerUserID string) error {
	existing, err := s.clientRepo.GetOwned(ctx, id, ownerUserID)
	if err != nil {
		return ErrNotFound
	}

	if err := s.clientRepo.Delete(ctx, existing.ID); err != nil {
		return err
	}
	s.log.Info("client deleted", zap.String("client_id", id.String()))
	return nil
}
