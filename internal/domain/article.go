package domain

import (
	"errors"
	"time"
)

// RawArticle is the per-request input unit supplied by a news source.
type RawArticle struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Body        string     `json:"body,omitempty"`
	SourceURL   string     `json:"source_url"`
	Publisher   string     `json:"publisher,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// Media groups the discovered visual assets for an enriched record.
type Media struct {
	FeaturedImageURL   *string `json:"featured_image_url"`
	RelatedVideoURL    *string `json:"related_video_url"`
	MediaJustification string  `json:"media_justification"`
}

// EnrichedRecord is the assembled output, persisted in the cache as JSON.
// Once written it is immutable for the cache entry's lifetime; expiry causes
// silent recomputation, never update-in-place.
type EnrichedRecord struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Body        string     `json:"body"`
	SourceURL   string     `json:"source_url"`
	Publisher   string     `json:"publisher"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	IngestedAt  time.Time  `json:"ingested_at"`

	Summary        string         `json:"summary"`
	Tags           []string       `json:"tags"`
	RelevanceScore float64        `json:"relevance_score"`
	Media          Media          `json:"media"`
	Context        map[string]any `json:"context"`
}

// MediaSuggestions carries the model's search keywords for the media lookups.
type MediaSuggestions struct {
	ImageKeywords      string `json:"image_keywords"`
	VideoKeywords      string `json:"video_keywords"`
	MediaJustification string `json:"media_justification"`
}

// SemanticResult holds the normalized fields recovered from the model output.
type SemanticResult struct {
	Summary        string           `json:"summary"`
	Tags           []string         `json:"tags"`
	RelevanceScore float64          `json:"relevance_score"`
	Media          MediaSuggestions `json:"media_suggestions"`
	Context        map[string]any   `json:"context"`
}

// HistoryEntry is the audit snapshot persisted after a successful enrichment.
type HistoryEntry struct {
	ContentID      string
	Title          string
	SourceURL      string
	Summary        string
	RelevanceScore float64
	EnrichedAt     time.Time
}

var (
	// ErrMissingSourceURL marks a caller-contract violation: identity
	// cannot be computed without a canonical URL.
	ErrMissingSourceURL = errors.New("article has no source url")

	// ErrCacheMiss reports an absent cache entry, as opposed to a cache
	// transport failure.
	ErrCacheMiss = errors.New("cache miss")

	// ErrNoStructuredOutput means the model response contained no JSON
	// object at all.
	ErrNoStructuredOutput = errors.New("no structured output in model response")

	// ErrMalformedOutput means the extracted object stayed unparsable
	// after the repair pass.
	ErrMalformedOutput = errors.New("malformed model output")

	// ErrEnrichmentFailed is the terminal pipeline failure; callers render
	// it as the generic placeholder, never as parser internals.
	ErrEnrichmentFailed = errors.New("enrichment failed")
)

// FailurePlaceholder is the fixed user-visible message for a failed pipeline.
const FailurePlaceholder = "An error has occurred. Check server"
