package generation

import "strings"

// Sanitize strips emoji and every other non-ASCII code point from
// generated text before it is persisted or returned. The providers
// decorate social copy with emoji liberally; downstream systems only
// accept ASCII. Newlines and tabs survive, other control characters
// do not. Total and idempotent.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			b.WriteRune(r)
		case r >= 0x20 && r <= 0x7e:
			b.WriteRune(r)
		}
	}
	return b.String()
}
