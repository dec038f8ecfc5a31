package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/agency-content/backend/internal/models"
)

// Suggestion is one structured content idea.
type Suggestion struct {
	Title       string   `json:"title"`
	ContentType string   `json:"content_type"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	Hashtags    []string `json:"hashtags"`
}

// Suggestions asks the capability for n structured content ideas and
// parses them from JSON or free text, topping up with deterministic
// filler when fewer than n came back. covered lists topics and
// keywords the client's existing content already handles, so fresh
// ideas don't repeat them.
func (g *Generator) Suggestions(ctx context.Context, client models.Client, n int, covered []string) ([]Suggestion, error) {
	if n <= 0 {
		n = 5
	}
	raw, err := g.pipeline.callRetry.Do(ctx, func(ctx context.Context) (string, error) {
		return g.pipeline.llm.Generate(ctx, buildSuggestionsPrompt(client, n, covered))
	})
	if err != nil {
		return nil, err
	}
	return ParseSuggestions(Sanitize(raw), n, client.Industry), nil
}

var numberedLineRE = regexp.MustCompile(`^\s*(?:\d+[.)]|[-*])\s+(.+)$`)

// ParseSuggestions extracts up to n suggestions from raw model
// output. JSON arrays (optionally inside code fences) are preferred;
// otherwise numbered or bulleted lines become titles. Filler ideas
// keyed on the index pad the result to exactly n entries.
func ParseSuggestions(raw string, n int, industry string) []Suggestion {
	if n <= 0 {
		n = 5
	}

	out := parseJSONSuggestions(raw)
	if len(out) == 0 {
		out = parseTextSuggestions(raw)
	}

	for i := range out {
		if t, err := models.ParseContentType(out[i].ContentType); err == nil {
			out[i].ContentType = t
		} else {
			out[i].ContentType = models.ContentTypeBlog
		}
		out[i].Title = strings.TrimSpace(out[i].Title)
	}

	if len(out) > n {
		out = out[:n]
	}
	for i := len(out); i < n; i++ {
		out = append(out, fillerSuggestion(i, industry))
	}
	return out
}

func parseJSONSuggestions(raw string) []Suggestion {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end <= start {
		return nil
	}
	var out []Suggestion
	if err := json.Unmarshal([]byte(raw[start:end+1]), &out); err != nil {
		return nil
	}
	var kept []Suggestion
	for _, s := range out {
		if strings.TrimSpace(s.Title) != "" {
			kept = append(kept, s)
		}
	}
	return kept
}

func parseTextSuggestions(raw string) []Suggestion {
	var out []Suggestion
	for _, line := range strings.Split(raw, "\n") {
		m := numberedLineRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		title := strings.Trim(strings.TrimSpace(m[1]), `"*`)
		// Drop label prefixes the model sometimes adds.
		title = strings.TrimSpace(strings.TrimPrefix(title, "Title:"))
		if title == "" {
			continue
		}
		out = append(out, Suggestion{Title: title, ContentType: models.ContentTypeBlog})
	}
	return out
}

func fillerSuggestion(i int, industry string) Suggestion {
	subject := strings.TrimSpace(industry)
	if subject == "" {
		subject = "your industry"
	}
	return Suggestion{
		Title:       fmt.Sprintf("Content idea %d: trends in %s", i+1, subject),
		ContentType: models.ContentTypeBlog,
		Description: fmt.Sprintf("An evergreen look at what is changing in %s and what it means for your audience.", subject),
		Keywords:    []string{subject, "trends"},
	}
}
