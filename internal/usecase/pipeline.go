package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"NewsEnricher/internal/domain"
	"NewsEnricher/internal/identity"
	"NewsEnricher/internal/ports"
)

const defaultCacheTTL = 30 * time.Minute

// SemanticEnricher produces the semantic fields for an article, or an error
// when no enrichment could be recovered.
type SemanticEnricher interface {
	Enrich(ctx context.Context, article domain.RawArticle) (*domain.SemanticResult, error)
}

// PipelineDeps wires all collaborators into the enrichment pipeline.
type PipelineDeps struct {
	Cache    ports.RecordCache
	Enricher SemanticEnricher
	Media    *MediaResolver
	History  ports.HistoryRepository
	CacheTTL time.Duration
	Logger   *slog.Logger
}

// Pipeline orchestrates the enrichment of a single raw article: identify,
// cache lookup, semantic enrichment, media fan-out, assembly, cache store.
type Pipeline struct {
	cache    ports.RecordCache
	enricher SemanticEnricher
	media    *MediaResolver
	history  ports.HistoryRepository
	cacheTTL time.Duration
	logger   *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	ttl := deps.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Pipeline{
		cache:    deps.Cache,
		enricher: deps.Enricher,
		media:    deps.Media,
		history:  deps.History,
		cacheTTL: ttl,
		logger:   deps.Logger,
	}
}

// Process turns a raw article into an enriched record. Re-processing the
// same source URL within the TTL window returns the previously cached record
// without invoking the enricher again. Only an absent source URL or a full
// enrichment failure produce an error; cache and media outages degrade.
func (p *Pipeline) Process(ctx context.Context, article domain.RawArticle) (*domain.EnrichedRecord, error) {
	if article.SourceURL == "" {
		return nil, domain.ErrMissingSourceURL
	}

	id := identity.FromSourceURL(article.SourceURL)

	if cached := p.cacheLookup(ctx, id); cached != nil {
		p.debug("cache hit", "id", id)
		return cached, nil
	}

	p.auditReingestion(ctx, id)

	semantic, err := p.enricher.Enrich(ctx, article)
	if err != nil {
		p.warn("enrichment failed", "id", id, "error", err)
		return nil, domain.ErrEnrichmentFailed
	}

	image, video := p.resolveMedia(ctx, semantic.Media)

	record := assembleRecord(id, article, semantic, image, video)

	p.cacheStore(ctx, id, record)
	p.recordHistory(ctx, record)

	return record, nil
}

func (p *Pipeline) cacheLookup(ctx context.Context, id string) *domain.EnrichedRecord {
	if p.cache == nil {
		return nil
	}

	record, err := p.cache.Get(ctx, id)
	switch {
	case err == nil:
		return record
	case errors.Is(err, domain.ErrCacheMiss):
		p.debug("cache miss", "id", id)
	default:
		// A transport failure degrades to "always recompute".
		p.warn("cache lookup unavailable", "id", id, "error", err)
	}
	return nil
}

// auditReingestion notes when a cache miss concerns an article enriched
// before: its entry expired and the work is about to be redone.
func (p *Pipeline) auditReingestion(ctx context.Context, id string) {
	if p.history == nil {
		return
	}

	known, err := p.history.WasEnriched(ctx, id)
	switch {
	case err != nil:
		p.debug("history lookup failed", "id", id, "error", err)
	case known:
		p.info("re-enriching expired article", "id", id)
	}
}

func (p *Pipeline) resolveMedia(ctx context.Context, suggestions domain.MediaSuggestions) (Lookup, Lookup) {
	if p.media == nil {
		return Lookup{State: LookupSkipped}, Lookup{State: LookupSkipped}
	}
	return p.media.Resolve(ctx, suggestions)
}

func assembleRecord(id string, article domain.RawArticle, semantic *domain.SemanticResult, image, video Lookup) *domain.EnrichedRecord {
	return &domain.EnrichedRecord{
		ID:          id,
		Title:       article.Title,
		Description: article.Description,
		Body:        article.Body,
		SourceURL:   article.SourceURL,
		Publisher:   article.Publisher,
		PublishedAt: article.PublishedAt,
		IngestedAt:  time.Now().UTC(),

		Summary:        semantic.Summary,
		Tags:           semantic.Tags,
		RelevanceScore: semantic.RelevanceScore,
		Media: domain.Media{
			FeaturedImageURL:   image.URLOrNil(),
			RelatedVideoURL:    video.URLOrNil(),
			MediaJustification: semantic.Media.MediaJustification,
		},
		Context: semantic.Context,
	}
}

func (p *Pipeline) cacheStore(ctx context.Context, id string, record *domain.EnrichedRecord) {
	if p.cache == nil {
		return
	}
	if err := p.cache.Put(ctx, id, record, p.cacheTTL); err != nil {
		p.warn("cache store failed", "id", id, "error", err)
	}
}

func (p *Pipeline) recordHistory(ctx context.Context, record *domain.EnrichedRecord) {
	if p.history == nil {
		return
	}
	entry := domain.HistoryEntry{
		ContentID:      record.ID,
		Title:          record.Title,
		SourceURL:      record.SourceURL,
		Summary:        record.Summary,
		RelevanceScore: record.RelevanceScore,
		EnrichedAt:     record.IngestedAt,
	}
	if err := p.history.SaveEnriched(ctx, entry); err != nil {
		p.warn("history store failed", "id", record.ID, "error", err)
	}
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}

func (p *Pipeline) debug(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}
