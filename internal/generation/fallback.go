package generation

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Fallback builds one consolidated prompt and makes a single
// retry-wrapped call. It substitutes for the pipeline when the
// pipeline is unavailable or its output is unusable, and it never
// returns empty text: when even the direct call fails it hands back a
// fixed template so the job always has something to persist.
type Fallback struct {
	llm       TextClient
	callRetry RetryPolicy
	log       *zap.Logger
}

func NewFallback(llm TextClient, callRetry RetryPolicy, log *zap.Logger) *Fallback {
	return &Fallback{llm: llm, callRetry: callRetry, log: log}
}

// Generate returns sanitized text and, when the last-resort template
// had to be used, the error that forced it. Text is non-empty either
// way.
func (f *Fallback) Generate(ctx context.Context, req Request) (string, error) {
	out, err := f.callRetry.Do(ctx, func(ctx context.Context) (string, error) {
		return f.llm.Generate(ctx, buildFallbackPrompt(req))
	})
	if err == nil {
		if text := Sanitize(out); text != "" {
			return text, nil
		}
		err = newError(KindUnknown, "fallback call returned empty text", nil)
	}

	f.log.Error("fallback generation failed, using last-resort template",
		zap.String("topic", req.Topic), zap.Error(err))
	return Sanitize(lastResortTemplate(req)), err
}

func lastResortTemplate(req Request) string {
	return fmt.Sprintf(`%s: %s

We are working on fresh %s content for %s. This piece could not be generated automatically; our team will revisit it shortly.

In the meantime, here is the angle we planned: %s content aimed at %s, in a %s voice.

%s
A simple branded graphic with the topic as a headline.`,
		req.Client.Name, req.Topic,
		describeContentType(req.ContentType), req.Client.Name,
		req.Topic, req.Client.TargetAudience, req.Client.BrandVoice,
		VisualMarker)
}
