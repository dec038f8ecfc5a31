package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/agency-content/backend/internal/events"
	"github.com/agency-content/backend/internal/generation"
	"github.com/agency-content/backend/internal/models"
	"github.com/agency-content/backend/internal/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Placeholder written synchronously when a generation request is
// accepted. The stale-draft sweep keys on the body.
const (
	PlaceholderBody      = "Content is being generated. Please check back in a few minutes."
	errorTitleMaxLen     = 120
	backgroundJobTimeout = 15 * time.Minute
)

// GenerationService is the job controller: it owns a content record's
// lifecycle from placeholder to review or failed.
type GenerationService struct {
	contentRepo ContentStore
	clientRepo  ClientStore
	generator   *generation.Generator
	publisher   events.Publisher
	log         *zap.Logger
}

func NewGenerationService(
	contentRepo ContentStore,
	clientRepo ClientStore,
	generator *generation.Generator,
	publisher events.Publisher,
	log *zap.Logger,
) *GenerationService {
	return &GenerationService{
		contentRepo: contentRepo,
		clientRepo:  clientRepo,
		generator:   generator,
		publisher:   publisher,
		log:         log,
	}
}

// StartParams are the request parameters for one generation job.
type StartParams struct {
	ClientID    uuid.UUID
	ContentType string
	Topic       string
	WordCount   int
	Tone        string
	Keywords    []string
}

// Start validates ownership, writes the draft placeholder, and
// schedules the background job. It returns the placeholder record
// without waiting for generation.
func (s *GenerationService) Start(ctx context.Context, ownerUserID string, p StartParams) (*models.Content, error) {
	client, err := s.clientRepo.GetOwned(ctx, p.ClientID, ownerUserID)
	if err != nil {
		return nil, ErrNotFound
	}

	contentType, err := models.ParseContentType(p.ContentType)
	if err != nil {
		return nil, err
	}

	topic := strings.TrimSpace(p.Topic)
	if topic == "" {
		topic = "Generated Topic"
	}

	content := &models.Content{
		ClientID:    client.ID,
		Title:       "Generating " + topic + "...",
		Body:        PlaceholderBody,
		ContentType: contentType,
		Status:      models.ContentStatusDraft,
		Topic:       topic,
		Keywords:    strings.Join(p.Keywords, ","),
		WordCount:   p.WordCount,
	}
	if err := s.contentRepo.Create(ctx, content); err != nil {
		return nil, err
	}

	req := generation.Request{
		Client:      *client,
		Topic:       topic,
		ContentType: contentType,
		WordCount:   p.WordCount,
		Tone:        p.Tone,
		Keywords:    p.Keywords,
	}

	// The request context dies with the HTTP response; the job gets
	// its own, and its own pool connections.
	go s.runJob(content.ID, client.OwnerUserID, req)

	s.publish(events.Event{
		Type:        events.EventContentGenerating,
		OwnerUserID: client.OwnerUserID,
		Payload:     map[string]any{"content_id": content.ID.String(), "topic": topic},
	})

	return content, nil
}

func (s *GenerationService) runJob(contentID uuid.UUID, ownerUserID string, req generation.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), backgroundJobTimeout)
	defer cancel()

	log := s.log.With(zap.String("content_id", contentID.String()), zap.String("topic", req.Topic))

	text, genErr := s.generator.Generate(ctx, req)
	extracted := generation.Extract(text, req.Topic)

	if genErr != nil {
		// Last-resort path: the record keeps the template text but is
		// marked failed, with an "Error:" title prefix for consumers
		// that key off it. Provider error messages go through the same
		// sanitizer as generated text before landing in the title.
		title := truncate(generation.Sanitize("Error: "+genErr.Error()), errorTitleMaxLen)
		updated, err := s.contentRepo.MarkFailed(ctx, contentID, title, extracted.Body, genErr.Error())
		if err != nil {
			log.Error("failed to persist generation failure", zap.Error(err))
			return
		}
		if !updated {
			log.Info("content deleted while generating, dropping failure result")
			return
		}
		log.Warn("generation failed terminally", zap.Error(genErr))
		s.publish(events.Event{
			Type:        events.EventContentFailed,
			OwnerUserID: ownerUserID,
			Payload:     map[string]any{"content_id": contentID.String(), "error": genErr.Error()},
		})
		return
	}

	updated, err := s.contentRepo.UpdateGenerated(ctx, contentID, extracted.Title, extracted.Body, extracted.VisualSuggestions)
	if err != nil {
		log.Error("failed to persist generated content", zap.Error(err))
		return
	}
	if !updated {
		// Deleted mid-generation. Drop the result rather than
		// resurrecting the row.
		log.Info("content deleted while generating, dropping result")
		return
	}

	log.Info("content generated",
		zap.Int("body_chars", len(extracted.Body)),
		zap.String("title", extracted.Title))
	s.publish(events.Event{
		Type:        events.EventContentGenerated,
		OwnerUserID: ownerUserID,
		Payload:     map[string]any{"content_id": contentID.String(), "title": extracted.Title},
	})
}

// GenerateTest is the synchronous variant: it blocks on one direct
// generation call and propagates failures to the caller.
func (s *GenerationService) GenerateTest(ctx context.Context, ownerUserID string, p StartParams) (string, error) {
	client, err := s.clientRepo.GetOwned(ctx, p.ClientID, ownerUserID)
	if err != nil {
		return "", ErrNotFound
	}
	contentType, err := models.ParseContentType(p.ContentType)
	if err != nil {
		return "", err
	}
	return s.generator.GenerateDirect(ctx, generation.Request{
		Client:      *client,
		Topic:       p.Topic,
		ContentType: contentType,
		WordCount:   p.WordCount,
		Tone:        p.Tone,
		Keywords:    p.Keywords,
	})
}

// Suggestions synchronously asks for n structured content ideas for
// an owned client. Recent content feeds the prompt as
// already-covered context so ideas don't repeat what was published.
func (s *GenerationService) Suggestions(ctx context.Context, clientID uuid.UUID, ownerUserID string, n int) ([]generation.Suggestion, error) {
	client, err := s.clientRepo.GetOwned(ctx, clientID, ownerUserID)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.generator.Suggestions(ctx, *client, n, s.coveredTopics(ctx, clientID, ownerUserID))
}

const coveredTopicsLimit = 20

// coveredTopics collects topics, titles, and keywords from the
// client's most recent content. Best effort: a listing failure just
// means suggestions run without history.
func (s *GenerationService) coveredTopics(ctx context.Context, clientID uuid.UUID, ownerUserID string) []string {
	recent, err := s.contentRepo.List(ctx, repositories.ContentFilter{
		ClientID:    &clientID,
		OwnerUserID: &ownerUserID,
		Limit:       coveredTopicsLimit,
	})
	if err != nil {
		s.log.Warn("listing recent content for suggestions failed", zap.Error(err))
		return nil
	}

	seen := map[string]bool{}
	var covered []string
	add := func(v string) {
		v = strings.TrimSpace(v)
		if v == "" || seen[strings.ToLower(v)] {
			return
		}
		seen[strings.ToLower(v)] = true
		covered = append(covered, v)
	}
	for _, c := range recent {
		if c.Status == models.ContentStatusFailed || c.Body == PlaceholderBody {
			continue
		}
		add(c.Topic)
		add(c.Title)
		for _, k := range strings.Split(c.Keywords, ",") {
			add(k)
		}
	}
	return covered
}

func (s *GenerationService) publish(event events.Event) {
	if s.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.publisher.Publish(ctx, events.ContentStream, event); err != nil {
		s.log.Warn("failed to publish content event", zap.String("type", event.Type), zap.Error(err))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max - 3
	// Never split a rune mid-sequence.
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
