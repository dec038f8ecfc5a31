package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/agency-content/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ContentRepo struct {
	pool *pgxpool.Pool
}

func NewContentRepo(pool *pgxpool.Pool) *ContentRepo {
	return &ContentRepo{pool: pool}
}

const contentColumns = `id, client_id, title, body, content_type, status, topic, keywords,
	word_count, visual_suggestions, error_detail, created_at, updated_at`

func scanContent(row interface{ Scan(...any) error }, c *models.Content) error {
	return row.Scan(&c.ID, &c.ClientID, &c.Title, &c.Body, &c.ContentType, &c.Status,
		&c.Topic, &c.Keywords, &c.WordCount, &c.VisualSuggestions, &c.ErrorDetail,
		&c.CreatedAt, &c.UpdatedAt)
}

func (r *ContentRepo) Create(ctx context.Context, c *models.Content) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO contents (client_id, title, body, content_type, status, topic, keywords, word_count, visual_suggestions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, c.ClientID, c.Title, c.Body, c.ContentType, c.Status,
		c.Topic, c.Keywords, c.WordCount, c.VisualSuggestions,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *ContentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Content, error) {
	var c models.Content
	err := scanContent(r.pool.QueryRow(ctx,
		`SELECT `+contentColumns+` FROM contents WHERE id = $1`, id), &c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetOwned joins through clients so an ownership miss reads the same
// as a missing row.
func (r *ContentRepo) GetOwned(ctx context.Context, id uuid.UUID, ownerUserID string) (*models.Content, error) {
	var c models.Content
	err := scanContent(r.pool.QueryRow(ctx, `
		SELECT c.id, c.client_id, c.title, c.body, c.content_type, c.status, c.topic, c.keywords,
		       c.word_count, c.visual_suggestions, c.error_detail, c.created_at, c.updated_at
		FROM contents c
		JOIN clients cl ON cl.id = c.client_id
		WHERE c.id = $1 AND cl.owner_user_id = $2
	`, id, ownerUserID), &c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

type ContentFilter struct {
	ClientID    *uuid.UUID
	OwnerUserID *string
	Status      *string
	ContentType *string
	Limit       int
	Offset      int
}

// List returns owner-visible content newest-first.
func (r *ContentRepo) List(ctx context.Context, f ContentFilter) ([]models.Content, error) {
	query := `
		SELECT c.id, c.client_id, c.title, c.body, c.content_type, c.status, c.topic, c.keywords,
		       c.word_count, c.visual_suggestions, c.error_detail, c.created_at, c.updated_at
		FROM contents c
		JOIN clients cl ON cl.id = c.client_id
	`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.OwnerUserID != nil {
		where = append(where, fmt.Sprintf("cl.owner_user_id = $%d", argIdx))
		args = append(args, *f.OwnerUserID)
		argIdx++
	}
	if f.ClientID != nil {
		where = append(where, fmt.Sprintf("c.client_id = $%d", argIdx))
		args = append(args, *f.ClientID)
		argIdx++
	}
	if f.Status != nil {
		where = append(where, fmt.Sprintf("c.status = $%d", argIdx))
		args = append(args, *f.Status)
		argIdx++
	}
	if f.ContentType != nil {
		where = append(where, fmt.Sprintf("c.content_type = $%d", argIdx))
		args = append(args, *f.ContentType)
		argIdx++
	}

	if len(where) > 0 {
		query += " WHERE "
		for i, w := range where {
			if i > 0 {
				query += " AND "
			}
			query += w
		}
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}
	query += fmt.Sprintf(" ORDER BY c.created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contents []models.Content
	for rows.Next() {
		var c models.Content
		if err := scanContent(rows, &c); err != nil {
			return nil, err
		}
		contents = append(contents, c)
	}
	return contents, rows.Err()
}

func (r *ContentRepo) Update(ctx context.Context, c *models.Content) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE contents SET title = $1, body = $2, content_type = $3, status = $4,
		       topic = $5, keywords = $6, word_count = $7, visual_suggestions = $8, updated_at = now()
		WHERE id = $9
	`, c.Title, c.Body, c.ContentType, c.Status,
		c.Topic, c.Keywords, c.WordCount, c.VisualSuggestions, c.ID)
	return err
}

// UpdateGenerated writes the background job's successful result. The
// row may have been deleted while the job ran; the caller checks the
// returned flag and drops the result instead of resurrecting it.
func (r *ContentRepo) UpdateGenerated(ctx context.Context, id uuid.UUID, title, body, visualSuggestions string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE contents SET title = $1, body = $2, visual_suggestions = $3,
		       status = $4, error_detail = NULL, updated_at = now()
		WHERE id = $5
	`, title, body, visualSuggestions, models.ContentStatusReview, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// MarkFailed writes the background job's terminal-failure state.
func (r *ContentRepo) MarkFailed(ctx context.Context, id uuid.UUID, title, body, errorDetail string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE contents SET title = $1, body = $2, status = $3, error_detail = $4, updated_at = now()
		WHERE id = $5
	`, title, body, models.ContentStatusFailed, errorDetail, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ContentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM contents WHERE id = $1`, id)
	return err
}

// Stats aggregates one client's content counts by status and type,
// plus how many pieces were created in the last 7 days.
func (r *ContentRepo) Stats(ctx context.Context, clientID uuid.UUID) (*models.ContentStats, error) {
	stats := &models.ContentStats{
		ByStatus: map[string]int{},
		ByType:   map[string]int{},
	}

	rows, err := r.pool.Query(ctx, `
		SELECT status, content_type, count(*),
		       count(*) FILTER (WHERE created_at > now() - interval '7 days')
		FROM contents WHERE client_id = $1
		GROUP BY status, content_type
	`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var status, contentType string
		var count, recent int
		if err := rows.Scan(&status, &contentType, &count, &recent); err != nil {
			return nil, err
		}
		stats.Total += count
		stats.ByStatus[status] += count
		stats.ByType[contentType] += count
		stats.RecentCount += recent
	}
	return stats, rows.Err()
}

// DeleteOrphans removes content whose client row no longer exists.
// Backstop for the cascade rule; returns the number removed.
func (r *ContentRepo) DeleteOrphans(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM contents c
		WHERE NOT EXISTS (SELECT 1 FROM clients cl WHERE cl.id = c.client_id)
	`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// MarkStaleDraftsFailed fails drafts that have sat in the generating
// placeholder state longer than cutoff (the job died without writing
// back). Matching on the placeholder body keeps hand-edited drafts
// out of the sweep.
func (r *ContentRepo) MarkStaleDraftsFailed(ctx context.Context, cutoff time.Duration, placeholderBody string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE contents SET status = $1,
		       error_detail = 'generation job did not complete',
		       updated_at = now()
		WHERE status = $2 AND body = $3 AND created_at < now() - $4::interval
	`, models.ContentStatusFailed, models.ContentStatusDraft, placeholderBody,
		fmt.Sprintf("%d seconds", int(cutoff.Seconds())))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
