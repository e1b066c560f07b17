// Package extract fetches a page and distills it into the evidence object
// the analysis core consumes. Extraction is the only part of the system
// that touches the network; everything downstream is pure computation.
package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/answerlens/aeoscan/domain"
)

const (
	defaultTimeout   = 30 * time.Second
	maxResponseBytes = 10 << 20
	userAgent        = "aeoscan/1.0 (+https://github.com/answerlens/aeoscan)"
)

// Extractor fetches pages over HTTP and parses them into Evidence.
type Extractor struct {
	client *http.Client
	logger *zap.Logger
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) ExtractorOption {
	return func(e *Extractor) {
		if c != nil {
			e.client = c
		}
	}
}

// WithLogger installs a structured logger.
func WithLogger(l *zap.Logger) ExtractorOption {
	return func(e *Extractor) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewExtractor builds an Extractor with a timeout-bounded default client.
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		client: &http.Client{Timeout: defaultTimeout},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract fetches the page once, timing the response, and parses the body.
// The single GET doubles as the TTFB sample, so analysis costs exactly one
// request per page.
func (e *Extractor) Extract(ctx context.Context, pageURL string) (*domain.Evidence, error) {
	if !strings.HasPrefix(pageURL, "http://") && !strings.HasPrefix(pageURL, "https://") {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("url must be http or https: %s", pageURL), nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("invalid url: %s", pageURL), err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	start := time.Now()
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, domain.NewExtractionError(fmt.Sprintf("failed to fetch %s", pageURL), err)
	}
	defer resp.Body.Close()
	ttfb := time.Since(start).Milliseconds()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domain.NewExtractionError(fmt.Sprintf("unexpected status %d for %s", resp.StatusCode, pageURL), nil)
	}

	// Oversized pages are truncated, not rejected; partial evidence
	// still scores.
	ev, err := ParseHTML(pageURL, io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}

	ev.Performance.TTFBMillis = &ttfb
	ev.Technical.HTTPS = strings.HasPrefix(pageURL, "https://")
	ev.Technical.CacheControl = resp.Header.Get("Cache-Control")

	e.logger.Debug("page extracted",
		zap.String("url", pageURL),
		zap.Int64("ttfb_ms", ttfb),
		zap.Int("word_count", ev.Content.WordCount),
		zap.Int("structured_data_blocks", len(ev.Technical.StructuredData)))

	return ev, nil
}
