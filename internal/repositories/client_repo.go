package repositories

import (
	"context"

	"github.com/agency-content/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ClientRepo struct {
	pool *pgxpool.Pool
}

func NewClientRepo(pool *pgxpool.Pool) *ClientRepo {
	return &ClientRepo{pool: pool}
}

func (r *ClientRepo) Create(ctx context.Context, c *models.Client) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO clients (name, industry, brand_voice, target_audience, content_preferences, website_url, social_profiles, owner_user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, c.Name, c.Industry, c.BrandVoice, c.TargetAudience,
		c.ContentPreferences, c.WebsiteURL, c.SocialProfiles, c.OwnerUserID,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// GetOwned returns the client only when it belongs to ownerUserID.
// An ownership miss is indistinguishable from a missing row.
func (r *ClientRepo) GetOwned(ctx context.Context, id uuid.UUID, ownerUserID string) (*models.Client, error) {
	var c models.Client
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, industry, brand_voice, target_audience, content_preferences,
		       website_url, social_profiles, owner_user_id, created_at, updated_at
		FROM clients WHERE id = $1 AND owner_user_id = $2
	`, id, ownerUserID).Scan(
		&c.ID, &c.Name, &c.Industry, &c.BrandVoice, &c.TargetAudience,
		&c.ContentPreferences, &c.WebsiteURL, &c.SocialProfiles,
		&c.OwnerUserID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepo) ListByOwner(ctx context.Context, ownerUserID string, limit, offset int) ([]models.Client, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, industry, brand_voice, target_audience, content_preferences,
		       website_url, social_profiles, owner_user_id, created_at, updated_at
		FROM clients WHERE owner_user_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`, ownerUserID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []models.Client
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Industry, &c.BrandVoice, &c.TargetAudience,
			&c.ContentPreferences, &c.WebsiteURL, &c.SocialProfiles,
			&c.OwnerUserID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *ClientRepo) Update(ctx context.Context, c *models.Client) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE clients SET name = $1, industry = $2, brand_voice = $3, target_audience = $4,
		       content_preferences = $5, website_url = $6, social_profiles = $7, updated_at = now()
		WHERE id = $8
	`, c.Name, c.Industry, c.BrandVoice, c.TargetAudience,
		c.ContentPreferences, c.WebsiteURL, c.SocialProfiles, c.ID)
	return err
}

// Delete removes the client; contents cascade at the database level.
func (r *ClientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	return err
}
