package events

import "context"

// ContentStream is the pub/sub channel content lifecycle events are
// published on.
const ContentStream = "events:content"

// Event types
const (
	EventContentGenerating = "content_generating"
	EventContentGenerated  = "content_generated"
	EventContentFailed     = "content_failed"
)

type Event struct {
	Type string `json:"type"`
	// OwnerUserID routes the event to the owning user's sockets.
	OwnerUserID string         `json:"owner_user_id"`
	Payload     map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}
