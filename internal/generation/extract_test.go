package generation

import "testing"

func TestExtract(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		topic      string
		wantTitle  string
		wantBody   string
		wantVisual string
	}{
		{
			name:       "title body and visual block",
			raw:        "My Title\n\nHello world\nVISUAL SUGGESTIONS:\nUse a red banner",
			topic:      "anything",
			wantTitle:  "My Title",
			wantBody:   "Hello world",
			wantVisual: "VISUAL SUGGESTIONS:\nUse a red banner",
		},
		{
			name:       "no visual marker gets placeholder",
			raw:        "A Catchy Title\n\nFirst paragraph.\n\nSecond paragraph.",
			topic:      "anything",
			wantTitle:  "A Catchy Title",
			wantBody:   "First paragraph.\n\nSecond paragraph.",
			wantVisual: VisualPlaceholder,
		},
		{
			name:       "markdown heading stripped from title",
			raw:        "## Growth Hacks\n\nTry these.",
			topic:      "anything",
			wantTitle:  "Growth Hacks",
			wantBody:   "Try these.",
			wantVisual: VisualPlaceholder,
		},
		{
			name:       "no blank separator still splits",
			raw:        "Title Line\nBody starts immediately.",
			topic:      "anything",
			wantTitle:  "Title Line",
			wantBody:   "Body starts immediately.",
			wantVisual: VisualPlaceholder,
		},
		{
			name:       "single line falls back to topic as title",
			raw:        "Just one line of text",
			topic:      "coffee trends",
			wantTitle:  "coffee trends",
			wantBody:   "Just one line of text",
			wantVisual: VisualPlaceholder,
		},
		{
			name:       "topic echoed as title promotes next line",
			raw:        "coffee trends\n\nThe Third Wave Is Here\n\nSpecialty coffee keeps growing.",
			topic:      "coffee trends",
			wantTitle:  "The Third Wave Is Here",
			wantBody:   "Specialty coffee keeps growing.",
			wantVisual: VisualPlaceholder,
		},
		{
			name:       "topic echoed but next line is a sentence",
			raw:        "coffee trends\n\nThis opening line is a full sentence and stays in the body.",
			topic:      "coffee trends",
			wantTitle:  "coffee trends",
			wantBody:   "This opening line is a full sentence and stays in the body.",
			wantVisual: VisualPlaceholder,
		},
		{
			name:       "visual only input",
			raw:        "VISUAL SUGGESTIONS:\nWarm tones",
			topic:      "warmth",
			wantTitle:  "warmth",
			wantBody:   "",
			wantVisual: "VISUAL SUGGESTIONS:\nWarm tones",
		},
		{
			name:       "empty input",
			raw:        "",
			topic:      "empty topic",
			wantTitle:  "empty topic",
			wantBody:   "",
			wantVisual: VisualPlaceholder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.raw, tt.topic)
			if got.Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", got.Title, tt.wantTitle)
			}
			if got.Body != tt.wantBody {
				t.Errorf("body = %q, want %q", got.Body, tt.wantBody)
			}
			if got.VisualSuggestions != tt.wantVisual {
				t.Errorf("visual = %q, want %q", got.VisualSuggestions, tt.wantVisual)
			}
		})
	}
}

// Any (title, blank line, body) input must round-trip exactly.
func TestExtractRoundTrip(t *testing.T) {
	cases := []struct{ title, body string }{
		{"Five Ways to Brew", "Start with fresh beans.\nGrind just before brewing."},
		{"Q3 Email Campaign", "Subject lines matter.\n\nKeep them short."},
		{"One-liner", "Single body line"},
	}

	for _, tc := range cases {
		raw := tc.title + "\n\n" + tc.body
		got := Extract(raw, "unrelated topic")
		if got.Title != tc.title {
			t.Errorf("Extract(%q) title = %q, want %q", raw, got.Title, tc.title)
		}
		if got.Body != tc.body {
			t.Errorf("Extract(%q) body = %q, want %q", raw, got.Body, tc.body)
		}
	}
}
