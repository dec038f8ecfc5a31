package dto

type ClientRequest struct {
	Name               string            `json:"name"`
	Industry           string            `json:"industry"`
	BrandVoice         string            `json:"brand_voice"`
	TargetAudience     string            `json:"target_audience"`
	ContentPreferences *string           `json:"content_preferences,omitempty"`
	WebsiteURL         *string           `json:"website_url,omitempty"`
	SocialProfiles     map[string]string `json:"social_profiles,omitempty"`
}

type UpdateContentRequest struct {
	Title       string   `json:"title"`
	Body        string   `json:"body"`
	ContentType string   `json:"content_type"`
	Status      string   `json:"status,omitempty"`
	Topic       string   `json:"topic"`
	Keywords    []string `json:"keywords,omitempty"`
	WordCount   int      `json:"word_count,omitempty"`
}
