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

const watchURLPrefix = "https://www.youtube.com/watch?v="

// YouTubeClient searches YouTube for a single matching video.
type YouTubeClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

var _ ports.VideoSearcher = (*YouTubeClient)(nil)

// NewYouTubeClient registers the API key and endpoint.
func NewYouTubeClient(baseURL, apiKey string) *YouTubeClient {
	return &YouTubeClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type youtubeSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
}

// SearchVideo queries for exactly one video and returns its canonical watch
// URL built from the result's video identifier.
func (y *YouTubeClient) SearchVideo(ctx context.Context, query string) (string, error) {
	if y.apiKey == "" {
		return "", fmt.Errorf("youtube client misconfigured")
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("key", y.apiKey)
	params.Set("q", query)
	params.Set("maxResults", "1")

	endpoint := y.baseURL + "/search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}

	resp, err := y.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("search videos: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("youtube returned %s", resp.Status)
	}

	var parsed youtubeSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(parsed.Items) == 0 || parsed.Items[0].ID.VideoID == "" {
		return "", nil
	}

	return watchURLPrefix + parsed.Items[0].ID.VideoID, nil
}
