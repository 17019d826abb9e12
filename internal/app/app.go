package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"NewsEnricher/internal/config"
	"NewsEnricher/internal/domain"
	"NewsEnricher/internal/infrastructure/cache"
	"NewsEnricher/internal/infrastructure/fulltext"
	"NewsEnricher/internal/infrastructure/llm"
	"NewsEnricher/internal/infrastructure/media"
	"NewsEnricher/internal/infrastructure/newsapi"
	"NewsEnricher/internal/infrastructure/storage"
	"NewsEnricher/internal/logging"
	"NewsEnricher/internal/ports"
	"NewsEnricher/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration. All
// collaborators are constructed here and handed to the pipeline explicitly;
// Close tears down the cache and database connections.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	source    ports.ArticleSource
	extractor ports.BodyExtractor
	pipeline  *usecase.Pipeline

	redisCache *cache.RedisCache
	closers    []func() error
}

// New builds a runnable application instance.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	a := &Application{cfg: cfg, logger: baseLogger}

	redisCache, err := cache.NewRedisCache(cfg.Cache)
	if err != nil {
		// The pipeline treats the unreachable cache as a permanent miss.
		baseLogger.Warn("cache unavailable at startup", "error", err)
	}
	a.redisCache = redisCache
	a.closers = append(a.closers, redisCache.Close)

	var history ports.HistoryRepository
	if cfg.Database.DSN != "" {
		db, err := storage.Open(ctx, cfg.Database.DSN)
		if err != nil {
			baseLogger.Warn("history store unavailable", "error", err)
		} else {
			history = storage.NewPostgresRepository(db)
			a.closers = append(a.closers, db.Close)
		}
	}

	model := llm.NewGeminiClient(cfg.Gemini)
	enricher := usecase.NewEnricher(model, baseLogger.With("component", "enricher"))

	resolver := usecase.NewMediaResolver(
		media.NewUnsplashClient(cfg.Media.UnsplashBaseURL, cfg.Media.UnsplashAccessKey),
		media.NewYouTubeClient(cfg.Media.YouTubeBaseURL, cfg.Media.YouTubeAPIKey),
		baseLogger.With("component", "media"),
	)

	a.source = newsapi.NewClient(cfg.News)
	if cfg.FullText.Enabled {
		a.extractor = fulltext.NewExtractor(nil)
	}

	a.pipeline = usecase.NewPipeline(usecase.PipelineDeps{
		Cache:    redisCache,
		Enricher: enricher,
		Media:    resolver,
		History:  history,
		CacheTTL: cfg.Cache.TTL(),
		Logger:   baseLogger.With("component", "pipeline"),
	})

	return a
}

// Run fetches the top headlines, enriches the first consumable article, and
// prints the record (or the generic placeholder) as JSON.
func (a *Application) Run(ctx context.Context) error {
	record, err := a.EnrichTopHeadline(ctx)
	if err != nil {
		a.logger.Error("pipeline failed", "error", err)
		fmt.Println(domain.FailurePlaceholder)
		return nil
	}

	encoded, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	fmt.Println(string(encoded))
	return nil
}

// EnrichTopHeadline is the single exposed operation: produce an enriched
// record for the first candidate article, or an error the caller renders as
// the failure placeholder.
func (a *Application) EnrichTopHeadline(ctx context.Context) (*domain.EnrichedRecord, error) {
	articles, err := a.source.FetchTopHeadlines(ctx, a.cfg.News.Category)
	if err != nil {
		return nil, fmt.Errorf("fetch headlines: %w", err)
	}

	article, ok := newsapi.FirstEnrichable(articles)
	if !ok {
		return nil, fmt.Errorf("no enrichable article among %d headlines", len(articles))
	}

	a.upgradeBody(ctx, &article)

	record, err := a.pipeline.Process(ctx, article)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// upgradeBody swaps the truncated headline body for full page text when the
// extractor is configured; any failure keeps the truncated body.
func (a *Application) upgradeBody(ctx context.Context, article *domain.RawArticle) {
	if a.extractor == nil || article.SourceURL == "" {
		return
	}

	body, err := a.extractor.Extract(ctx, article.SourceURL)
	if err != nil {
		a.logger.Warn("full-text extraction failed", "url", article.SourceURL, "error", err)
		return
	}
	if body != "" {
		article.Body = body
	}
}

// Close releases cache and database connections.
func (a *Application) Close() {
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			a.logger.Warn("close failed", "error", err)
		}
	}
}
