package generation

import (
	"context"
	"strings"
	"testing"

	"github.com/agency-content/backend/internal/models"
)

func TestParseSuggestionsJSON(t *testing.T) {
	raw := `Here are some ideas:
[
  {"title": "Cold Brew 101", "content_type": "blog", "description": "A starter guide.", "keywords": ["cold brew"], "hashtags": ["#coldbrew"]},
  {"title": "Behind the Roast", "content_type": "social_instagram", "description": "A peek at the roastery.", "keywords": ["roasting"]}
]`
	got := ParseSuggestions(raw, 2, "specialty coffee")
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Title != "Cold Brew 101" || got[0].ContentType != models.ContentTypeBlog {
		t.Errorf("got[0] = %+v", got[0])
	}
	if got[1].ContentType != models.ContentTypeSocialInstagram {
		t.Errorf("got[1].ContentType = %q", got[1].ContentType)
	}
	if len(got[0].Hashtags) != 1 || got[0].Hashtags[0] != "#coldbrew" {
		t.Errorf("got[0].Hashtags = %v", got[0].Hashtags)
	}
}

func TestParseSuggestionsFencedJSON(t *testing.T) {
	raw := "```json\n[{\"title\": \"Q3 Newsletter\", \"content_type\": \"email\"}]\n```"
	got := ParseSuggestions(raw, 1, "")
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Title != "Q3 Newsletter" || got[0].ContentType != models.ContentTypeEmail {
		t.Errorf("got[0] = %+v", got[0])
	}
}

func TestParseSuggestionsNumberedLines(t *testing.T) {
	raw := `Some ideas for you:
1. The Science of Extraction
2) "Meet the Farmers"
- Title: Seasonal Menu Preview
* Iced Drinks for Summer
not a list line`
	got := ParseSuggestions(raw, 4, "coffee")
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	wantTitles := []string{
		"The Science of Extraction",
		"Meet the Farmers",
		"Seasonal Menu Preview",
		"Iced Drinks for Summer",
	}
	for i, want := range wantTitles {
		if got[i].Title != want {
			t.Errorf("got[%d].Title = %q, want %q", i, got[i].Title, want)
		}
		if got[i].ContentType != models.ContentTypeBlog {
			t.Errorf("got[%d].ContentType = %q, want blog", i, got[i].ContentType)
		}
	}
}

func TestParseSuggestionsInvalidTypeDefaultsToBlog(t *testing.T) {
	raw := `[{"title": "A Thing", "content_type": "podcast"}]`
	got := ParseSuggestions(raw, 1, "")
	if got[0].ContentType != models.ContentTypeBlog {
		t.Errorf("ContentType = %q, want blog", got[0].ContentType)
	}
}

func TestParseSuggestionsPadsWithFiller(t *testing.T) {
	raw := `[{"title": "Only One Idea", "content_type": "blog"}]`
	got := ParseSuggestions(raw, 5, "fitness")
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	for i := 1; i < 5; i++ {
		if got[i].Title == "" {
			t.Errorf("got[%d] has empty title", i)
		}
		if !strings.Contains(got[i].Title, "fitness") {
			t.Errorf("filler title should mention the industry: %q", got[i].Title)
		}
	}
	// Filler is deterministic per index.
	again := ParseSuggestions(raw, 5, "fitness")
	for i := range got {
		if got[i].Title != again[i].Title {
			t.Errorf("filler not deterministic at %d: %q vs %q", i, got[i].Title, again[i].Title)
		}
	}
}

func TestParseSuggestionsGarbageStillYieldsN(t *testing.T) {
	got := ParseSuggestions("the model rambled with no structure at all", 3, "")
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, s := range got {
		if s.Title == "" || s.ContentType != models.ContentTypeBlog {
			t.Errorf("got[%d] = %+v", i, s)
		}
	}
}

func TestParseSuggestionsTruncatesToN(t *testing.T) {
	raw := `[{"title":"a"},{"title":"b"},{"title":"c"},{"title":"d"}]`
	got := ParseSuggestions(raw, 2, "")
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
}

func TestSuggestionsUsesPromptAndParses(t *testing.T) {
	llm := &stubClient{fn: func(int, string) (string, error) {
		return `[{"title": "Stretching at Your Desk", "content_type": "social_linkedin", "description": "Quick wins."}]`, nil
	}}
	g := newTestGenerator(llm, nil)

	client := models.Client{Industry: "corporate wellness", BrandVoice: "encouraging", TargetAudience: "office workers"}
	got, err := g.Suggestions(context.Background(), client, 3, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Title != "Stretching at Your Desk" || got[0].ContentType != models.ContentTypeSocialLinkedIn {
		t.Errorf("got[0] = %+v", got[0])
	}
	if !strings.Contains(llm.prompts[0], "corporate wellness") {
		t.Errorf("prompt missing client industry: %q", llm.prompts[0])
	}
	if !strings.Contains(llm.prompts[0], "Generate 3 content ideas") {
		t.Errorf("prompt missing requested count: %q", llm.prompts[0])
	}
}

func TestSuggestionsErrorPropagates(t *testing.T) {
	llm := &stubClient{fn: func(int, string) (string, error) {
		return "", newError(KindRateLimited, "slow down", nil)
	}}
	g := newTestGenerator(llm, nil)

	if _, err := g.Suggestions(context.Background(), models.Client{}, 5, nil); KindOf(err) != KindRateLimited {
		t.Fatalf("err = %v, want rate-limited", err)
	}
}

func TestSuggestionsPromptListsCoveredTopics(t *testing.T) {
	llm := &stubClient{fn: func(int, string) (string, error) {
		return `[{"title": "Something New", "content_type": "blog"}]`, nil
	}}
	g := newTestGenerator(llm, nil)

	covered := []string{"cold brew at home", "Cold Brew Basics", "coffee ratio"}
	if _, err := g.Suggestions(context.Background(), models.Client{Industry: "specialty coffee"}, 2, covered); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prompt := llm.prompts[0]
	if !strings.Contains(prompt, "do NOT repeat") {
		t.Errorf("prompt missing the no-repeat instruction: %q", prompt)
	}
	for _, c := range covered {
		if !strings.Contains(prompt, "- "+c) {
			t.Errorf("prompt missing covered entry %q", c)
		}
	}
}

func TestSuggestionsPromptOmitsCoveredSectionWhenEmpty(t *testing.T) {
	llm := &stubClient{fn: func(int, string) (string, error) {
		return `[]`, nil
	}}
	g := newTestGenerator(llm, nil)

	if _, err := g.Suggestions(context.Background(), models.Client{}, 1, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(llm.prompts[0], "do NOT repeat") {
		t.Errorf("prompt should have no covered section without history: %q", llm.prompts[0])
	}
}
