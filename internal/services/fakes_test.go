package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/agency-content/backend/internal/models"
	"github.com/agency-content/backend/internal/repositories"
	"github.com/google/uuid"
)

var errNoRows = errors.New("no rows in result set")

// In-memory stores mirroring the repositories' observable behavior:
// ownership misses read as missing rows, listings are newest-first
// with limit/offset applied after ordering.

type fakeClientStore struct {
	mu      sync.Mutex
	clients map[uuid.UUID]models.Client
	seq     int
}

func newFakeClientStore() *fakeClientStore {
	return &fakeClientStore{clients: map[uuid.UUID]models.Client{}}
}

func (f *fakeClientStore) Create(_ context.Context, c *models.Client) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	// Strictly increasing timestamps so newest-first ordering is the
	// reverse of insertion order.
	f.seq++
	c.CreatedAt = time.Unix(int64(f.seq), 0)
	c.UpdatedAt = c.CreatedAt
	f.clients[c.ID] = *c
	return nil
}

func (f *fakeClientStore) GetOwned(_ context.Context, id uuid.UUID, ownerUserID string) (*models.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.clients[id]
	if !ok || c.OwnerUserID != ownerUserID {
		return nil, errNoRows
	}
	out := c
	return &out, nil
}

func (f *fakeClientStore) ListByOwner(_ context.Context, ownerUserID string, limit, offset int) ([]models.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []models.Client
	for _, c := range f.clients {
		if c.OwnerUserID == ownerUserID {
			all = append(all, c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakeClientStore) Update(_ context.Context, c *models.Client) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clients[c.ID] = *c
	return nil
}

func (f *fakeClientStore) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.clients, id)
	return nil
}

type markFailedCall struct {
	id          uuid.UUID
	title       string
	body        string
	errorDetail string
}

type fakeContentStore struct {
	mu       sync.Mutex
	clients  *fakeClientStore
	contents map[uuid.UUID]models.Content
	seq      int
	failed   []markFailedCall
}

func newFakeContentStore(clients *fakeClientStore) *fakeContentStore {
	return &fakeContentStore{clients: clients, contents: map[uuid.UUID]models.Content{}}
}

func (f *fakeContentStore) ownerOf(clientID uuid.UUID) string {
	f.clients.mu.Lock()
	defer f.clients.mu.Unlock()
	return f.clients.clients[clientID].OwnerUserID
}

func (f *fakeContentStore) Create(_ context.Context, c *models.Content) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	// Strictly increasing timestamps so newest-first ordering is the
	// reverse of insertion order.
	f.seq++
	c.CreatedAt = time.Unix(int64(f.seq), 0)
	c.UpdatedAt = c.CreatedAt
	f.contents[c.ID] = *c
	return nil
}

func (f *fakeContentStore) GetOwned(_ context.Context, id uuid.UUID, ownerUserID string) (*models.Content, error) {
	f.mu.Lock()
	c, ok := f.contents[id]
	f.mu.Unlock()
	if !ok || f.ownerOf(c.ClientID) != ownerUserID {
		return nil, errNoRows
	}
	out := c
	return &out, nil
}

func (f *fakeContentStore) List(_ context.Context, filter repositories.ContentFilter) ([]models.Content, error) {
	f.mu.Lock()
	var all []models.Content
	for _, c := range f.contents {
		all = append(all, c)
	}
	f.mu.Unlock()

	var kept []models.Content
	for _, c := range all {
		if filter.ClientID != nil && c.ClientID != *filter.ClientID {
			continue
		}
		if filter.OwnerUserID != nil && f.ownerOf(c.ClientID) != *filter.OwnerUserID {
			continue
		}
		if filter.Status != nil && c.Status != *filter.Status {
			continue
		}
		if filter.ContentType != nil && c.ContentType != *filter.ContentType {
			continue
		}
		kept = append(kept, c)
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].CreatedAt.After(kept[j].CreatedAt) })

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if filter.Offset >= len(kept) {
		return nil, nil
	}
	kept = kept[filter.Offset:]
	if len(kept) > limit {
		kept = kept[:limit]
	}
	return kept, nil
}

func (f *fakeContentStore) Stats(_ context.Context, clientID uuid.UUID) (*models.ContentStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stats := &models.ContentStats{ByStatus: map[string]int{}, ByType: map[string]int{}}
	for _, c := range f.contents {
		if c.ClientID != clientID {
			continue
		}
		stats.Total++
		stats.ByStatus[c.Status]++
		stats.ByType[c.ContentType]++
	}
	return stats, nil
}

func (f *fakeContentStore) Update(_ context.Context, c *models.Content) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.contents[c.ID]
	if !ok {
		return errNoRows
	}
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now()
	f.contents[c.ID] = *c
	return nil
}

func (f *fakeContentStore) UpdateGenerated(_ context.Context, id uuid.UUID, title, body, visualSuggestions string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.contents[id]
	if !ok {
		return false, nil
	}
	c.Title, c.Body, c.VisualSuggestions = title, body, &visualSuggestions
	c.Status = models.ContentStatusReview
	f.contents[id] = c
	return true, nil
}

func (f *fakeContentStore) MarkFailed(_ context.Context, id uuid.UUID, title, body, errorDetail string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failed = append(f.failed, markFailedCall{id: id, title: title, body: body, errorDetail: errorDetail})
	c, ok := f.contents[id]
	if !ok {
		return false, nil
	}
	c.Title, c.Body, c.Status = title, body, models.ContentStatusFailed
	c.ErrorDetail = &errorDetail
	f.contents[id] = c
	return true, nil
}

func (f *fakeContentStore) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.contents, id)
	return nil
}
