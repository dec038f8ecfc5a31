package generation

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Scraper supplies website text for the research stage. Failures are
// soft: research proceeds on general knowledge without it.
type Scraper interface {
	Extract(ctx context.Context, url string) (string, error)
}

// Pipeline drives the four ordered generation stages. Stages run
// strictly in sequence, each consuming the previous stage's output as
// context. Any stage failure fails the whole run; retry happens at
// the call boundary inside each stage and again at the caller.
type Pipeline struct {
	llm       TextClient
	scraper   Scraper
	callRetry RetryPolicy
	log       *zap.Logger
}

func NewPipeline(llm TextClient, scraper Scraper, callRetry RetryPolicy, log *zap.Logger) *Pipeline {
	return &Pipeline{llm: llm, scraper: scraper, callRetry: callRetry, log: log}
}

// Run produces the combined text: the written piece followed by the
// visual-suggestions block. A run whose writing stage came back empty
// yields visual-only text; the caller treats that as unusable and
// falls back.
func (p *Pipeline) Run(ctx context.Context, req Request) (string, error) {
	scraped := p.scrapeWebsite(ctx, req)

	research, err := p.stage(ctx, "research", buildResearchPrompt(req, scraped))
	if err != nil {
		return "", err
	}

	strategy, err := p.stage(ctx, "strategy", buildStrategyPrompt(req, research))
	if err != nil {
		return "", err
	}

	written, err := p.stage(ctx, "writing", buildWritingPrompt(req, strategy))
	if err != nil {
		return "", err
	}

	visual, err := p.stage(ctx, "visual", buildVisualPrompt(req, written))
	if err != nil {
		return "", err
	}

	combined := joinSections(written, visual)

	if !strings.Contains(combined, VisualMarker) {
		combined = joinSections(combined, VisualPlaceholder)
	}

	return combined, nil
}

func (p *Pipeline) stage(ctx context.Context, name, prompt string) (string, error) {
	out, err := p.callRetry.Do(ctx, func(ctx context.Context) (string, error) {
		return p.llm.Generate(ctx, prompt)
	})
	if err != nil {
		p.log.Warn("pipeline stage failed", zap.String("stage", name), zap.Error(err))
		return "", err
	}
	p.log.Debug("pipeline stage complete", zap.String("stage", name), zap.Int("chars", len(out)))
	return out, nil
}

func (p *Pipeline) scrapeWebsite(ctx context.Context, req Request) string {
	if p.scraper == nil || req.Client.WebsiteURL == nil || *req.Client.WebsiteURL == "" {
		return ""
	}
	text, err := p.scraper.Extract(ctx, *req.Client.WebsiteURL)
	if err != nil {
		p.log.Warn("website scrape failed, continuing without it",
			zap.String("url", *req.Client.WebsiteURL), zap.Error(err))
		return ""
	}
	return text
}

func joinSections(a, b string) string {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + "\n\n" + b
}
