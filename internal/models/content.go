package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Content types
const (
	ContentTypeBlog            = "blog"
	ContentTypeArticle         = "article"
	ContentTypeSocialInstagram = "social_instagram"
	ContentTypeSocialFacebook  = "social_facebook"
	ContentTypeSocialTwitter   = "social_twitter"
	ContentTypeSocialLinkedIn  = "social_linkedin"
	ContentTypeEmail           = "email"
	ContentTypeWebsite         = "website"
	ContentTypeContentPlan     = "content_plan"
	ContentTypeStrategy        = "strategy"
)

// Content statuses
const (
	ContentStatusDraft     = "draft"
	ContentStatusReview    = "review"
	ContentStatusApproved  = "approved"
	ContentStatusPublished = "published"
	ContentStatusArchived  = "archived"
	ContentStatusFailed    = "failed"
)

var contentTypes = []string{
	ContentTypeBlog, ContentTypeArticle,
	ContentTypeSocialInstagram, ContentTypeSocialFacebook,
	ContentTypeSocialTwitter, ContentTypeSocialLinkedIn,
	ContentTypeEmail, ContentTypeWebsite,
	ContentTypeContentPlan, ContentTypeStrategy,
}

var contentStatuses = []string{
	ContentStatusDraft, ContentStatusReview, ContentStatusApproved,
	ContentStatusPublished, ContentStatusArchived, ContentStatusFailed,
}

// InvalidEnumError reports a user-supplied string that does not match
// any known content type or status.
type InvalidEnumError struct {
	Field string
	Value string
}

func (e *InvalidEnumError) Error() string {
	return fmt.Sprintf("%s %q is not valid", e.Field, e.Value)
}

// ParseContentType validates a user-supplied content type string.
// Matching is case-insensitive; the canonical lowercase value is
// returned.
func ParseContentType(s string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, t := range contentTypes {
		if v == t {
			return t, nil
		}
	}
	return "", &InvalidEnumError{Field: "content_type", Value: s}
}

// ParseContentStatus validates a user-supplied status string.
func ParseContentStatus(s string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, t := range contentStatuses {
		if v == t {
			return t, nil
		}
	}
	return "", &InvalidEnumError{Field: "status", Value: s}
}

// IsSocialType reports whether the content type is a per-platform
// social post variant.
func IsSocialType(contentType string) bool {
	return strings.HasPrefix(contentType, "social_")
}

// Valid status transitions: from -> []to. Same-status updates are
// always allowed (field edits without a status change).
var ValidStatusTransitions = map[string][]string{
	ContentStatusDraft:     {ContentStatusReview, ContentStatusArchived, ContentStatusFailed},
	ContentStatusReview:    {ContentStatusDraft, ContentStatusApproved, ContentStatusArchived},
	ContentStatusApproved:  {ContentStatusReview, ContentStatusPublished, ContentStatusArchived},
	ContentStatusPublished: {ContentStatusArchived},
	ContentStatusArchived:  {ContentStatusDraft},
	ContentStatusFailed:    {ContentStatusDraft},
}

func IsValidStatusTransition(from, to string) bool {
	if from == to {
		return true
	}
	allowed, ok := ValidStatusTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

type Content struct {
	ID          uuid.UUID `json:"id"`
	ClientID    uuid.UUID `json:"client_id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	ContentType string    `json:"content_type"`
	Status      string    `json:"status"`
	Topic       string    `json:"topic"`
	// Keywords are stored comma-joined, matching the wire format.
	Keywords          string    `json:"keywords"`
	WordCount         int       `json:"word_count"`
	VisualSuggestions *string   `json:"visual_suggestions,omitempty"`
	ErrorDetail       *string   `json:"error_detail,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ContentStats aggregates a client's content counts.
type ContentStats struct {
	Total       int            `json:"total"`
	ByStatus    map[string]int `json:"by_status"`
	ByType      map[string]int `json:"by_type"`
	RecentCount int            `json:"recent_count"` // created in the last 7 days
}
