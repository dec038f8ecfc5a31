package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/agency-content/backend/internal/generation"
	"github.com/agency-content/backend/internal/models"
	"go.uber.org/zap"
)

type scriptLLM struct {
	mu      sync.Mutex
	prompts []string
	fn      func(prompt string) (string, error)
}

func (s *scriptLLM) Generate(_ context.Context, prompt string) (string, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	s.mu.Unlock()
	return s.fn(prompt)
}

func (s *scriptLLM) allPrompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.prompts...)
}

func newTestGenerationService(llm generation.TextClient, clients *fakeClientStore, contents *fakeContentStore) *GenerationService {
	fast := generation.RetryPolicy{
		MaxAttempts: 1,
		BaseDelay:   time.Millisecond,
		Multiplier:  2,
		MinDelay:    time.Millisecond,
		MaxDelay:    time.Millisecond,
	}
	gen := generation.NewGeneratorWithPolicies(llm, nil, fast, fast, zap.NewNop())
	return NewGenerationService(contents, clients, gen, nil, zap.NewNop())
}

func TestSuggestionsPromptCarriesContentHistory(t *testing.T) {
	clients := newFakeClientStore()
	contents := newFakeContentStore(clients)
	llm := &scriptLLM{fn: func(string) (string, error) { return "[]", nil }}
	svc := newTestGenerationService(llm, clients, contents)

	owned := seedClient(t, clients, "owner-a", "Beanhouse")
	done := seedContent(t, contents, owned.ID, "Cold Brew Basics", models.ContentStatusReview)
	done.Keywords = "cold brew,coffee ratio"
	if err := contents.Update(context.Background(), done); err != nil {
		t.Fatalf("updating seeded content: %v", err)
	}
	failed := seedContent(t, contents, owned.ID, "Broken Piece", models.ContentStatusFailed)
	pending := seedContent(t, contents, owned.ID, "Pending Piece", models.ContentStatusDraft)
	pending.Body = PlaceholderBody
	if err := contents.Update(context.Background(), pending); err != nil {
		t.Fatalf("updating seeded content: %v", err)
	}

	if _, err := svc.Suggestions(context.Background(), owned.ID, "owner-a", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prompts := llm.allPrompts()
	if len(prompts) != 1 {
		t.Fatalf("llm calls = %d, want 1", len(prompts))
	}
	prompt := prompts[0]
	for _, want := range []string{"Cold Brew Basics", "cold brew", "coffee ratio"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing covered entry %q:\n%s", want, prompt)
		}
	}
	// Failed and still-generating records are not history worth
	// avoiding.
	if strings.Contains(prompt, failed.Title) {
		t.Errorf("prompt should not carry failed content %q", failed.Title)
	}
	if strings.Contains(prompt, pending.Title) {
		t.Errorf("prompt should not carry placeholder content %q", pending.Title)
	}
}

func TestSuggestionsOwnershipMissIsNotFound(t *testing.T) {
	clients := newFakeClientStore()
	contents := newFakeContentStore(clients)
	llm := &scriptLLM{fn: func(string) (string, error) { return "[]", nil }}
	svc := newTestGenerationService(llm, clients, contents)

	owned := seedClient(t, clients, "owner-a", "Beanhouse")
	if _, err := svc.Suggestions(context.Background(), owned.ID, "owner-b", 3); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if calls := len(llm.allPrompts()); calls != 0 {
		t.Errorf("llm calls = %d, want 0", calls)
	}
}

func TestRunJobFailureTitleIsSanitizedAndBounded(t *testing.T) {
	clients := newFakeClientStore()
	contents := newFakeContentStore(clients)
	providerErr := errors.New("провайдер \U0001F525 rejected: " + strings.Repeat("é", 100))
	llm := &scriptLLM{fn: func(string) (string, error) { return "", providerErr }}
	svc := newTestGenerationService(llm, clients, contents)

	owned := seedClient(t, clients, "owner-a", "Beanhouse")
	piece := seedContent(t, contents, owned.ID, "Generating cold brew...", models.ContentStatusDraft)

	svc.runJob(piece.ID, "owner-a", generation.Request{
		Client:      *owned,
		Topic:       "cold brew at home",
		ContentType: models.ContentTypeBlog,
	})

	if len(contents.failed) != 1 {
		t.Fatalf("MarkFailed calls = %d, want 1", len(contents.failed))
	}
	call := contents.failed[0]
	if !strings.HasPrefix(call.title, "Error: ") {
		t.Errorf("title = %q, want Error: prefix", call.title)
	}
	if len(call.title) > 120 {
		t.Errorf("len(title) = %d, want <= 120", len(call.title))
	}
	if !utf8.ValidString(call.title) {
		t.Errorf("title is not valid UTF-8: %q", call.title)
	}
	for _, r := range call.title {
		if r > 0x7f {
			t.Errorf("unsanitized rune %U in title %q", r, call.title)
		}
	}
	if strings.TrimSpace(call.body) == "" {
		t.Error("failed record should keep the last-resort body")
	}
	if !strings.Contains(call.errorDetail, "rejected") {
		t.Errorf("error detail %q should carry the provider diagnostic", call.errorDetail)
	}
}

func TestTruncateKeepsRuneBoundaries(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
	}{
		{"ascii over limit", strings.Repeat("x", 200), 120},
		{"multibyte over limit", strings.Repeat("\u65e5", 50), 20},
		{"mixed over limit", "abc" + strings.Repeat("\u00e9", 100), 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.max)
			if len(got) > tt.max {
				t.Errorf("len = %d, want <= %d", len(got), tt.max)
			}
			if !utf8.ValidString(got) {
				t.Errorf("result is not valid UTF-8: %q", got)
			}
			if !strings.HasSuffix(got, "...") {
				t.Errorf("result %q should end in ellipsis", got)
			}
		})
	}

	if got := truncate("short", 120); got != "short" {
		t.Errorf("under-limit string modified: %q", got)
	}
}
