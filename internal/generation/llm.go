package generation

import (
	"context"

	"github.com/agency-content/backend/internal/models"
)

// TextClient abstracts the external text-generation capability:
// prompt in, text out, or an *Error classifying the failure.
type TextClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Request is the parameter bundle for one generation job. It is
// assembled from the client record and the API request at invocation
// time and owns nothing.
type Request struct {
	Client      models.Client
	Topic       string
	ContentType string
	WordCount   int
	Tone        string
	Keywords    []string
}
