package newsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"NewsEnricher/internal/config"
	"NewsEnricher/internal/domain"
)

func TestFetchTopHeadlines(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/top-headlines" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("category") != "technology" || q.Get("pageSize") != "5" {
			t.Errorf("unexpected query: %v", q)
		}
		_, _ = w.Write([]byte(`{
			"status": "ok",
			"articles": [
				{"title": "No body", "description": "only desc", "content": "", "url": "https://x/0"},
				{"title": "A", "description": "B", "content": "C", "url": "https://x/1", "author": "pub", "publishedAt": "2026-08-29T10:00:00Z"}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(config.NewsConfig{BaseURL: server.URL, APIKey: "key", PageSize: 5})
	articles, err := client.FetchTopHeadlines(context.Background(), "technology")
	if err != nil {
		t.Fatalf("FetchTopHeadlines error: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}
	if articles[1].Body != "C" || articles[1].Publisher != "pub" {
		t.Fatalf("unexpected mapping: %+v", articles[1])
	}
}

func TestFetchTopHeadlinesBadStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "error", "articles": []}`))
	}))
	defer server.Close()

	client := NewClient(config.NewsConfig{BaseURL: server.URL, APIKey: "key"})
	if _, err := client.FetchTopHeadlines(context.Background(), "technology"); err == nil {
		t.Fatal("expected error for non-ok status")
	}
}

func TestFirstEnrichable(t *testing.T) {
	t.Parallel()

	articles := []domain.RawArticle{
		{Title: "no desc", Body: "C", SourceURL: "https://x/0"},
		{Title: "no body", Description: "B", SourceURL: "https://x/1"},
		{Title: "full", Description: "B", Body: "C", SourceURL: "https://x/2"},
		{Title: "also full", Description: "B", Body: "C", SourceURL: "https://x/3"},
	}

	got, ok := FirstEnrichable(articles)
	if !ok {
		t.Fatal("expected an enrichable article")
	}
	if got.SourceURL != "https://x/2" {
		t.Fatalf("expected the first article with description and body, got %s", got.SourceURL)
	}

	if _, ok := FirstEnrichable(articles[:2]); ok {
		t.Fatal("expected no enrichable article")
	}
}
