package generation

import (
	"errors"
	"fmt"
)

// Kind classifies a generation-capability failure. Provider clients
// map their own error hierarchies onto these tags so the retry policy
// stays provider-agnostic.
type Kind string

const (
	// KindUnavailable: the capability is temporarily down (5xx).
	KindUnavailable Kind = "unavailable"
	// KindRateLimited: quota or rate limit exhausted (429).
	KindRateLimited Kind = "rate_limited"
	// KindInvalidRequest: malformed prompt or parameters. Permanent.
	KindInvalidRequest Kind = "invalid_request"
	// KindAuth: bad or missing credentials. Permanent.
	KindAuth Kind = "auth"
	// KindUnknown: anything else. Treated as permanent.
	KindUnknown Kind = "unknown"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation %s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("generation %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the classification of err, or KindUnknown when err
// does not carry one.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindUnknown
}

// IsTransient reports whether err is expected to resolve on retry.
func IsTransient(err error) bool {
	switch KindOf(err) {
	case KindUnavailable, KindRateLimited:
		return true
	}
	return false
}
