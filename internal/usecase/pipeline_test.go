package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"NewsEnricher/internal/domain"
	"NewsEnricher/internal/identity"
)

// fakeCache stores serialized records like the Redis adapter does, so tests
// see the same round-trip the real cache performs.
type fakeCache struct {
	entries map[string]string
	ttls    map[string]time.Duration
	getErr  error
	putErr  error
	puts    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (c *fakeCache) Get(_ context.Context, id string) (*domain.EnrichedRecord, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	raw, ok := c.entries[id]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	var record domain.EnrichedRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *fakeCache) Put(_ context.Context, id string, record *domain.EnrichedRecord, ttl time.Duration) error {
	c.puts++
	if c.putErr != nil {
		return c.putErr
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}
	c.entries[id] = string(raw)
	c.ttls[id] = ttl
	return nil
}

type countingEnricher struct {
	result *domain.SemanticResult
	err    error
	calls  int
}

func (e *countingEnricher) Enrich(context.Context, domain.RawArticle) (*domain.SemanticResult, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	return e.result, nil
}

type fakeHistory struct {
	known      bool
	err        error
	knownCalls int
	saveCalls  int
}

func (h *fakeHistory) SaveEnriched(context.Context, domain.HistoryEntry) error {
	h.saveCalls++
	return h.err
}

func (h *fakeHistory) WasEnriched(context.Context, string) (bool, error) {
	h.knownCalls++
	return h.known, h.err
}

func fullSemanticResult() *domain.SemanticResult {
	return &domain.SemanticResult{
		Summary:        "A thing happened.",
		Tags:           []string{"#Tech"},
		RelevanceScore: 0.8,
		Media: domain.MediaSuggestions{
			ImageKeywords:      "rocket",
			VideoKeywords:      "launch",
			MediaJustification: "fits the story",
		},
		Context: map[string]any{"wikipedia_snippet": "note"},
	}
}

func testArticle() domain.RawArticle {
	return domain.RawArticle{
		Title:       "A",
		Description: "B",
		Body:        "C",
		SourceURL:   "https://x/1",
	}
}

func TestProcessMissingSourceURL(t *testing.T) {
	t.Parallel()

	pipeline := NewPipeline(PipelineDeps{Enricher: &countingEnricher{result: fullSemanticResult()}})

	_, err := pipeline.Process(context.Background(), domain.RawArticle{Title: "A"})
	if !errors.Is(err, domain.ErrMissingSourceURL) {
		t.Fatalf("expected ErrMissingSourceURL, got %v", err)
	}
}

func TestProcessFullScenario(t *testing.T) {
	t.Parallel()

	cacheStore := newFakeCache()
	enricher := &countingEnricher{result: fullSemanticResult()}
	resolver := NewMediaResolver(
		&fakeImageSearcher{url: "https://images.unsplash.com/photo-1"},
		&fakeVideoSearcher{url: "https://www.youtube.com/watch?v=abc123"},
		nil,
	)
	pipeline := NewPipeline(PipelineDeps{
		Cache:    cacheStore,
		Enricher: enricher,
		Media:    resolver,
		CacheTTL: 1800 * time.Second,
	})

	record, err := pipeline.Process(context.Background(), testArticle())
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}

	wantID := identity.FromSourceURL("https://x/1")
	if record.ID != wantID {
		t.Fatalf("record id %s, want %s", record.ID, wantID)
	}
	if record.Media.FeaturedImageURL == nil || *record.Media.FeaturedImageURL != "https://images.unsplash.com/photo-1" {
		t.Fatalf("unexpected image url: %v", record.Media.FeaturedImageURL)
	}
	if record.Media.RelatedVideoURL == nil || *record.Media.RelatedVideoURL != "https://www.youtube.com/watch?v=abc123" {
		t.Fatalf("unexpected video url: %v", record.Media.RelatedVideoURL)
	}
	if record.Media.MediaJustification != "fits the story" {
		t.Fatalf("unexpected justification: %q", record.Media.MediaJustification)
	}
	if record.Summary != "A thing happened." || record.Title != "A" || record.Body != "C" {
		t.Fatalf("unexpected record fields: %+v", record)
	}
	if record.IngestedAt.IsZero() {
		t.Fatal("ingested_at was not stamped")
	}

	if _, ok := cacheStore.entries[wantID]; !ok {
		t.Fatal("record was not written to cache")
	}
	if got := cacheStore.ttls[wantID]; got != 1800*time.Second {
		t.Fatalf("cache TTL %v, want 1800s", got)
	}
}

func TestProcessCacheIdempotence(t *testing.T) {
	t.Parallel()

	cacheStore := newFakeCache()
	enricher := &countingEnricher{result: fullSemanticResult()}
	pipeline := NewPipeline(PipelineDeps{
		Cache:    cacheStore,
		Enricher: enricher,
		Media:    NewMediaResolver(&fakeImageSearcher{url: "https://img/1"}, &fakeVideoSearcher{url: "https://vid/1"}, nil),
	})

	first, err := pipeline.Process(context.Background(), testArticle())
	if err != nil {
		t.Fatalf("first Process error: %v", err)
	}

	second, err := pipeline.Process(context.Background(), testArticle())
	if err != nil {
		t.Fatalf("second Process error: %v", err)
	}

	if enricher.calls != 1 {
		t.Fatalf("enricher invoked %d times, want 1", enricher.calls)
	}

	firstJSON, _ := json.Marshal(first)
	secondJSON, _ := json.Marshal(second)
	if string(firstJSON) != string(secondJSON) {
		t.Fatalf("cached record differs:\nfirst:  %s\nsecond: %s", firstJSON, secondJSON)
	}
	if cacheStore.puts != 1 {
		t.Fatalf("expected a single cache write, got %d", cacheStore.puts)
	}
}

func TestProcessCacheUnavailable(t *testing.T) {
	t.Parallel()

	cacheStore := newFakeCache()
	cacheStore.getErr = fmt.Errorf("connection refused")
	cacheStore.putErr = fmt.Errorf("connection refused")
	enricher := &countingEnricher{result: fullSemanticResult()}
	pipeline := NewPipeline(PipelineDeps{
		Cache:    cacheStore,
		Enricher: enricher,
		Media:    NewMediaResolver(&fakeImageSearcher{}, &fakeVideoSearcher{}, nil),
	})

	record, err := pipeline.Process(context.Background(), testArticle())
	if err != nil {
		t.Fatalf("Process must degrade, got error: %v", err)
	}
	if record == nil || record.Summary != "A thing happened." {
		t.Fatalf("unexpected record: %+v", record)
	}
	if enricher.calls != 1 {
		t.Fatalf("enricher invoked %d times, want 1", enricher.calls)
	}
}

func TestProcessEnrichmentFailure(t *testing.T) {
	t.Parallel()

	cacheStore := newFakeCache()
	pipeline := NewPipeline(PipelineDeps{
		Cache:    cacheStore,
		Enricher: &countingEnricher{err: domain.ErrMalformedOutput},
		Media:    NewMediaResolver(&fakeImageSearcher{url: "https://img/1"}, nil, nil),
	})

	_, err := pipeline.Process(context.Background(), testArticle())
	if !errors.Is(err, domain.ErrEnrichmentFailed) {
		t.Fatalf("expected ErrEnrichmentFailed, got %v", err)
	}
	if cacheStore.puts != 0 {
		t.Fatal("failed enrichment must not be cached")
	}
}

func TestProcessWithoutCache(t *testing.T) {
	t.Parallel()

	pipeline := NewPipeline(PipelineDeps{
		Enricher: &countingEnricher{result: fullSemanticResult()},
		Media:    NewMediaResolver(&fakeImageSearcher{}, &fakeVideoSearcher{}, nil),
	})

	record, err := pipeline.Process(context.Background(), testArticle())
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if record.Media.FeaturedImageURL != nil || record.Media.RelatedVideoURL != nil {
		t.Fatal("zero-result providers must yield nil media URLs")
	}
}

func TestProcessHistoryFailureNonFatal(t *testing.T) {
	t.Parallel()

	history := &fakeHistory{err: fmt.Errorf("database on fire")}
	pipeline := NewPipeline(PipelineDeps{
		Cache:    newFakeCache(),
		Enricher: &countingEnricher{result: fullSemanticResult()},
		Media:    NewMediaResolver(&fakeImageSearcher{}, &fakeVideoSearcher{}, nil),
		History:  history,
	})

	if _, err := pipeline.Process(context.Background(), testArticle()); err != nil {
		t.Fatalf("history failure must not fail the request: %v", err)
	}
	if history.saveCalls != 1 {
		t.Fatalf("history save invoked %d times, want 1", history.saveCalls)
	}
}

func TestProcessAuditsReingestionOnMiss(t *testing.T) {
	t.Parallel()

	history := &fakeHistory{known: true}
	enricher := &countingEnricher{result: fullSemanticResult()}
	cacheStore := newFakeCache()
	pipeline := NewPipeline(PipelineDeps{
		Cache:    cacheStore,
		Enricher: enricher,
		Media:    NewMediaResolver(&fakeImageSearcher{}, &fakeVideoSearcher{}, nil),
		History:  history,
	})

	// First pass: cache miss, previously enriched per the audit table —
	// the expired entry is recomputed, not skipped.
	record, err := pipeline.Process(context.Background(), testArticle())
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if record == nil || enricher.calls != 1 {
		t.Fatalf("expected recomputation, enricher calls = %d", enricher.calls)
	}
	if history.knownCalls != 1 {
		t.Fatalf("history consulted %d times, want 1", history.knownCalls)
	}
	if history.saveCalls != 1 {
		t.Fatalf("history save invoked %d times, want 1", history.saveCalls)
	}

	// Second pass hits the cache; the audit table is not consulted again.
	if _, err := pipeline.Process(context.Background(), testArticle()); err != nil {
		t.Fatalf("second Process error: %v", err)
	}
	if history.knownCalls != 1 {
		t.Fatalf("cache hit must skip the history lookup, got %d calls", history.knownCalls)
	}
}
