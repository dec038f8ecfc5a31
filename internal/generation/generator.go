package generation

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Generator composes the pipeline and the fallback into the single
// entry point the job controller calls. The pipeline gets a bounded
// number of whole-run attempts; when those exhaust, or when the run
// yields empty or visual-only text, the fallback takes over.
type Generator struct {
	pipeline      *Pipeline
	fallback      *Fallback
	pipelineRetry RetryPolicy
	log           *zap.Logger
}

func NewGenerator(llm TextClient, scraper Scraper, log *zap.Logger) *Generator {
	callRetry := DefaultCallRetry()
	return &Generator{
		pipeline:      NewPipeline(llm, scraper, callRetry, log),
		fallback:      NewFallback(llm, callRetry, log),
		pipelineRetry: DefaultPipelineRetry(),
		log:           log,
	}
}

// NewGeneratorWithPolicies is the constructor tests use to shrink the
// backoff windows.
func NewGeneratorWithPolicies(llm TextClient, scraper Scraper, callRetry, pipelineRetry RetryPolicy, log *zap.Logger) *Generator {
	return &Generator{
		pipeline:      NewPipeline(llm, scraper, callRetry, log),
		fallback:      NewFallback(llm, callRetry, log),
		pipelineRetry: pipelineRetry,
		log:           log,
	}
}

// GenerateDirect makes one retry-wrapped direct call and returns the
// sanitized output. Unlike Generate it has no safety net: errors
// propagate to the caller. Used by the synchronous test endpoint.
func (g *Generator) GenerateDirect(ctx context.Context, req Request) (string, error) {
	out, err := g.pipeline.callRetry.Do(ctx, func(ctx context.Context) (string, error) {
		return g.pipeline.llm.Generate(ctx, buildFallbackPrompt(req))
	})
	if err != nil {
		return "", err
	}
	return Sanitize(out), nil
}

// Generate returns sanitized combined text for the request. The text
// is always non-empty; a non-nil error means the last-resort template
// was used and carries the diagnostic the controller should persist.
func (g *Generator) Generate(ctx context.Context, req Request) (string, error) {
	raw, err := g.pipelineRetry.Do(ctx, func(ctx context.Context) (string, error) {
		return g.pipeline.Run(ctx, req)
	})
	if err != nil {
		g.log.Warn("pipeline unavailable, falling back to direct generation",
			zap.String("topic", req.Topic), zap.Error(err))
		return g.fallback.Generate(ctx, req)
	}

	text := Sanitize(raw)
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || strings.HasPrefix(trimmed, VisualMarker) {
		g.log.Warn("pipeline produced no usable body, falling back",
			zap.String("topic", req.Topic))
		return g.fallback.Generate(ctx, req)
	}
	return text, nil
}
