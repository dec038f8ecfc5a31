package models

import (
	"time"

	"github.com/google/uuid"
)

type Client struct {
	ID                 uuid.UUID         `json:"id"`
	Name               string            `json:"name"`
	Industry           string            `json:"industry"`
	BrandVoice         string            `json:"brand_voice"`
	TargetAudience     string            `json:"target_audience"`
	ContentPreferences *string           `json:"content_preferences,omitempty"`
	WebsiteURL         *string           `json:"website_url,omitempty"`
	SocialProfiles     map[string]string `json:"social_profiles,omitempty"`
	// OwnerUserID is the subject claim of the external identity
	// provider's token. Opaque to this service.
	OwnerUserID string    `json:"owner_user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
