// Package media holds the image and video search collaborators. Both return
// at most one result per query; "" means nothing was found.
package media

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"NewsEnricher/internal/ports"
)

// UnsplashClient searches Unsplash photos for a single matching image.
type UnsplashClient struct {
	baseURL   string
	accessKey string
	client    *http.Client
}

var _ ports.ImageSearcher = (*UnsplashClient)(nil)

// NewUnsplashClient registers the access key and endpoint.
func NewUnsplashClient(baseURL, accessKey string) *UnsplashClient {
	return &UnsplashClient{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		accessKey: accessKey,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type unsplashSearchResponse struct {
	Results []struct {
		URLs struct {
			Raw string `json:"raw"`
		} `json:"urls"`
	} `json:"results"`
}

// SearchImage queries for exactly one photo and returns its raw URL.
func (u *UnsplashClient) SearchImage(ctx context.Context, query string) (string, error) {
	if u.accessKey == "" {
		return "", fmt.Errorf("unsplash client misconfigured")
	}

	params := url.Values{}
	params.Set("client_id", u.accessKey)
	params.Set("query", query)
	params.Set("per_page", "1")

	endpoint := u.baseURL + "/search/photos?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("search photos: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unsplash returned %s", resp.Status)
	}

	var parsed unsplashSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(parsed.Results) == 0 {
		return "", nil
	}

	return parsed.Results[0].URLs.Raw, nil
}
