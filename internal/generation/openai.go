package generation

import (
	"context"
	"errors"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAISettings configures the OpenAI-backed TextClient.
type OpenAISettings struct {
	APIKey  string
	Model   string
	BaseURL string
}

// OpenAIClient implements TextClient over the openai-go chat
// completions API.
type OpenAIClient struct {
	client openai.Client
	model  string
}

func NewOpenAIClient(cfg OpenAISettings) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key is required")
	}
	if cfg.Model == "" {
		return nil, errors.New("openai model is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAIClient{client: openai.NewClient(opts...), model: cfg.Model}, nil
}

func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You are a marketing content specialist writing on behalf of an agency's client. Output plain text only, no markdown fences, no commentary about the task."),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", mapOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", newError(KindUnavailable, "empty choices in response", nil)
	}
	return resp.Choices[0].Message.Content, nil
}

// mapOpenAIError folds the SDK's error hierarchy onto the closed set
// of kinds the retry policy understands.
func mapOpenAIError(err error) error {
	var apierr *openai.Error
	if !errors.As(err, &apierr) {
		return newError(KindUnavailable, "request failed", err)
	}
	switch {
	case apierr.StatusCode == 429:
		return newError(KindRateLimited, "rate limit or quota exhausted", err)
	case apierr.StatusCode >= 500:
		return newError(KindUnavailable, "service temporarily unavailable", err)
	case apierr.StatusCode == 401 || apierr.StatusCode == 403:
		return newError(KindAuth, "credentials rejected", err)
	case apierr.StatusCode >= 400:
		return newError(KindInvalidRequest, "request rejected", err)
	}
	return newError(KindUnknown, "unexpected provider error", err)
}
