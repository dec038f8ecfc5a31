package dto

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}

// GenerationAcceptedResponse is the 202 body for scheduled jobs.
type GenerationAcceptedResponse struct {
	ContentID string `json:"content_id"`
	Status    string `json:"status"`
}
