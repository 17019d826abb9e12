// Package fulltext upgrades a truncated article body to the full paragraph
// text scraped from the source page.
package fulltext

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"NewsEnricher/internal/ports"
)

// maxBodyRunes bounds the extracted text so the model context stays bounded.
const maxBodyRunes = 4000

// Extractor downloads a source page and collects its paragraph text.
type Extractor struct {
	client *http.Client
}

var _ ports.BodyExtractor = (*Extractor)(nil)

// NewExtractor wires an HTTP client; a nil client gets a default timeout.
func NewExtractor(client *http.Client) *Extractor {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Extractor{client: client}
}

// Extract fetches pageURL and returns the joined paragraph text, trimmed to
// a bounded length. An empty result is returned when the page has no usable
// paragraphs.
func (e *Extractor) Extract(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "NewsEnricher/1.0")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("source returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse document: %w", err)
	}

	var parts []string
	doc.Find("article p, main p, p").Each(func(i int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text != "" {
			parts = append(parts, text)
		}
	})

	body := strings.Join(dedupe(parts), "\n\n")
	runes := []rune(body)
	if len(runes) > maxBodyRunes {
		body = string(runes[:maxBodyRunes])
	}

	return body, nil
}

// dedupe drops repeated paragraphs; the selector union visits nested
// matches more than once.
func dedupe(parts []string) []string {
	seen := make(map[string]struct{}, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
