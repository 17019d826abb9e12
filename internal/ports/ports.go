package ports

import (
	"context"
	"time"

	"NewsEnricher/internal/domain"
)

// ArticleSource pulls candidate articles from an upstream news provider.
type ArticleSource interface {
	FetchTopHeadlines(ctx context.Context, category string) ([]domain.RawArticle, error)
}

// RecordCache is a key-value store for serialized enriched records with
// per-key expiry. Get reports domain.ErrCacheMiss for an absent key; any
// other error is a transport failure the caller may treat as a miss.
type RecordCache interface {
	Get(ctx context.Context, id string) (*domain.EnrichedRecord, error)
	Put(ctx context.Context, id string, record *domain.EnrichedRecord, ttl time.Duration) error
}

// TextModel sends a single prompt to a language model and returns its
// free-form text response. No structured-output guarantee.
type TextModel interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ImageSearcher looks up one image for a free-text query and returns its raw
// URL, or "" when nothing was found.
type ImageSearcher interface {
	SearchImage(ctx context.Context, query string) (string, error)
}

// VideoSearcher looks up one video for a free-text query and returns its
// canonical watch URL, or "" when nothing was found.
type VideoSearcher interface {
	SearchVideo(ctx context.Context, query string) (string, error)
}

// BodyExtractor upgrades a truncated article body to the full text fetched
// from the source page.
type BodyExtractor interface {
	Extract(ctx context.Context, pageURL string) (string, error)
}

// HistoryRepository records successful enrichments for audit. WasEnriched
// reports whether a content id was enriched before, so a recomputation after
// cache expiry can be told apart from a first ingestion.
type HistoryRepository interface {
	SaveEnriched(ctx context.Context, entry domain.HistoryEntry) error
	WasEnriched(ctx context.Context, contentID string) (bool, error)
}
