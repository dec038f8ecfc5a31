package services

import (
	"context"

	"github.com/agency-content/backend/internal/models"
	"github.com/agency-content/backend/internal/repositories"
	"github.com/google/uuid"
)

// ClientStore is the persistence surface the services need for
// clients. *repositories.ClientRepo satisfies it.
type ClientStore interface {
	Create(ctx context.Context, c *models.Client) error
	GetOwned(ctx context.Context, id uuid.UUID, ownerUserID string) (*models.Client, error)
	ListByOwner(ctx context.Context, ownerUserID string, limit, offset int) ([]models.Client, error)
	Update(ctx context.Context, c *models.Client) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ContentStore is the persistence surface for content records.
// *repositories.ContentRepo satisfies it.
type ContentStore interface {
	Create(ctx context.Context, c *models.Content) error
	GetOwned(ctx context.Context, id uuid.UUID, ownerUserID string) (*models.Content, error)
	List(ctx context.Context, f repositories.ContentFilter) ([]models.Content, error)
	Stats(ctx context.Context, clientID uuid.UUID) (*models.ContentStats, error)
	Update(ctx context.Context, c *models.Content) error
	UpdateGenerated(ctx context.Context, id uuid.UUID, title, body, visualSuggestions string) (bool, error)
	MarkFailed(ctx context.Context, id uuid.UUID, title, body, errorDetail string) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
