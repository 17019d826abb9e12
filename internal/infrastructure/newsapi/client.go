// Package newsapi implements the news source collaborator against the
// NewsAPI top-headlines endpoint.
package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"NewsEnricher/internal/config"
	"NewsEnricher/internal/domain"
	"NewsEnricher/internal/ports"
)

// Client fetches candidate articles for a fixed category.
type Client struct {
	baseURL  string
	apiKey   string
	pageSize int
	client   *http.Client
}

var _ ports.ArticleSource = (*Client)(nil)

// NewClient builds a client from configuration; pageSize defaults to 5.
func NewClient(cfg config.NewsConfig) *Client {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 5
	}
	return &Client{
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:   cfg.APIKey,
		pageSize: pageSize,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

type headlinesResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Title       string     `json:"title"`
		Description string     `json:"description"`
		Content     string     `json:"content"`
		URL         string     `json:"url"`
		Author      string     `json:"author"`
		PublishedAt *time.Time `json:"publishedAt"`
	} `json:"articles"`
}

// FetchTopHeadlines returns the category's candidate articles in rank order.
func (c *Client) FetchTopHeadlines(ctx context.Context, category string) ([]domain.RawArticle, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("newsapi client misconfigured")
	}

	params := url.Values{}
	params.Set("category", category)
	params.Set("pageSize", strconv.Itoa(c.pageSize))
	params.Set("apiKey", c.apiKey)

	endpoint := c.baseURL + "/top-headlines?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch headlines: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi returned %s", resp.Status)
	}

	var parsed headlinesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if parsed.Status != "ok" {
		return nil, fmt.Errorf("newsapi status %q", parsed.Status)
	}

	articles := make([]domain.RawArticle, 0, len(parsed.Articles))
	for _, a := range parsed.Articles {
		articles = append(articles, domain.RawArticle{
			Title:       a.Title,
			Description: a.Description,
			Body:        a.Content,
			SourceURL:   a.URL,
			Publisher:   a.Author,
			PublishedAt: a.PublishedAt,
		})
	}

	return articles, nil
}

// FirstEnrichable returns the first article carrying both a description and
// a body, which is what the pipeline consumes per request.
func FirstEnrichable(articles []domain.RawArticle) (domain.RawArticle, bool) {
	for _, a := range articles {
		if a.Description != "" && a.Body != "" {
			return a, true
		}
	}
	return domain.RawArticle{}, false
}
