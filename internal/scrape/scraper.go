package scrape

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const defaultMaxBytes = 8000

// Scraper fetches a client's website and extracts its readable text
// for the research stage. Output is truncated to a bounded size so a
// verbose site cannot blow up the prompt.
type Scraper struct {
	httpClient *http.Client
	log        *zap.Logger
	maxRetries int
	maxBytes   int
}

func NewScraper(timeoutMS, maxRetries, maxBytes int, log *zap.Logger) *Scraper {
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	return &Scraper{
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutMS) * time.Millisecond,
		},
		log:        log,
		maxRetries: maxRetries,
		maxBytes:   maxBytes,
	}
}

// Extract fetches url and returns the concatenated text of its
// paragraph, heading, and list-item elements.
func (s *Scraper) Extract(ctx context.Context, url string) (string, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}

	var doc *goquery.Document
	var lastErr error

	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return "", err
		}
		req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")

		resp, err := s.httpClient.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt+1) * 500 * time.Millisecond)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
			time.Sleep(time.Duration(attempt+1) * 500 * time.Millisecond)
			continue
		}

		doc, err = goquery.NewDocumentFromReader(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		lastErr = nil
		break
	}
	if lastErr != nil {
		return "", lastErr
	}

	doc.Find("script, style, nav, footer, header, aside, form, iframe, noscript").Remove()

	var b strings.Builder
	doc.Find("p, h1, h2, h3, li").Each(func(_ int, sel *goquery.Selection) {
		if b.Len() >= s.maxBytes {
			return
		}
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return
		}
		b.WriteString(text)
		b.WriteString("\n")
	})

	text := b.String()
	if len(text) > s.maxBytes {
		text = text[:s.maxBytes]
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("no readable text at %s", url)
	}

	s.log.Debug("website scraped", zap.String("url", url), zap.Int("chars", len(text)))
	return text, nil
}
