package generation

import "strings"

// Extracted is the result of splitting raw generated text into its
// persisted parts.
type Extracted struct {
	Title             string
	Body              string
	VisualSuggestions string
}

// Extract separates raw generated text into title, body, and the
// visual-suggestions block. Best-effort heuristics, not a grammar:
// the split is on the first VisualMarker occurrence, the title is the
// first non-empty line, and the body is what follows after at most
// one blank separator line. Degrades to topic-as-title when the text
// gives nothing better.
func Extract(raw, topic string) Extracted {
	bodyCandidate := raw
	visual := VisualPlaceholder
	if idx := strings.Index(raw, VisualMarker); idx >= 0 {
		bodyCandidate = raw[:idx]
		visual = strings.TrimSpace(raw[idx:])
	}

	lines := strings.Split(bodyCandidate, "\n")

	titleIdx := -1
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			titleIdx = i
			break
		}
	}
	if titleIdx < 0 {
		return Extracted{
			Title:             topic,
			Body:              strings.TrimSpace(bodyCandidate),
			VisualSuggestions: visual,
		}
	}

	title := stripHeading(lines[titleIdx])

	rest := lines[titleIdx+1:]
	// One blank line separates title from body; keep any further
	// blank lines, they are paragraph breaks.
	if len(rest) > 0 && strings.TrimSpace(rest[0]) == "" {
		rest = rest[1:]
	}
	body := strings.TrimSpace(strings.Join(rest, "\n"))
	if body == "" {
		body = strings.TrimSpace(strings.Join(lines[titleIdx+1:], "\n"))
	}
	if body == "" {
		body = strings.TrimSpace(bodyCandidate)
		title = topic
	}

	// When the model echoed the topic as its first line, the real
	// title is often the body's first line.
	if title == topic && body != "" {
		first, remainder := splitFirstLine(body)
		if looksLikeTitle(first) && remainder != "" {
			title = stripHeading(first)
			body = remainder
		}
	}

	return Extracted{Title: title, Body: body, VisualSuggestions: visual}
}

func stripHeading(line string) string {
	s := strings.TrimSpace(line)
	s = strings.TrimLeft(s, "#")
	s = strings.Trim(s, "*")
	return strings.TrimSpace(s)
}

func splitFirstLine(s string) (first, remainder string) {
	idx := strings.Index(s, "\n")
	if idx < 0 {
		return s, ""
	}
	first = s[:idx]
	remainder = s[idx+1:]
	if len(remainder) > 0 && strings.TrimSpace(strings.SplitN(remainder, "\n", 2)[0]) == "" {
		if i := strings.Index(remainder, "\n"); i >= 0 {
			remainder = remainder[i+1:]
		} else {
			remainder = ""
		}
	}
	return first, strings.TrimSpace(remainder)
}

func looksLikeTitle(line string) bool {
	s := strings.TrimSpace(line)
	return s != "" && len(s) < 100 && !strings.HasSuffix(s, ".")
}
