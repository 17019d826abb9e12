package usecase

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"NewsEnricher/internal/domain"
	"NewsEnricher/internal/ports"
)

const defaultLookupTimeout = 10 * time.Second

// LookupState distinguishes why a media lookup produced no URL, so callers
// can log a skipped lookup differently from a provider failure.
type LookupState int

const (
	// LookupSkipped means no keyword was suggested; no network call is made.
	LookupSkipped LookupState = iota
	// LookupDisabled means no provider is configured for this media kind.
	LookupDisabled
	// LookupFound means the provider returned a usable URL.
	LookupFound
	// LookupNotFound means the provider answered with zero results.
	LookupNotFound
	// LookupFailed means the provider call errored or timed out.
	LookupFailed
)

// Lookup is the tagged outcome of a single media search.
type Lookup struct {
	State LookupState
	URL   string
}

// URLOrNil collapses the outcome to the nullable record field.
func (l Lookup) URLOrNil() *string {
	if l.State == LookupFound {
		url := l.URL
		return &url
	}
	return nil
}

// MediaResolver fans out to the image and video search providers. The two
// lookups are independent and run concurrently; neither ever fails the
// caller — every failure path collapses to an empty outcome plus a logged
// diagnostic.
type MediaResolver struct {
	images  ports.ImageSearcher
	videos  ports.VideoSearcher
	logger  *slog.Logger
	timeout time.Duration
}

// NewMediaResolver wires both search providers; either may be nil, which
// disables that lookup.
func NewMediaResolver(images ports.ImageSearcher, videos ports.VideoSearcher, logger *slog.Logger) *MediaResolver {
	return &MediaResolver{
		images:  images,
		videos:  videos,
		logger:  logger,
		timeout: defaultLookupTimeout,
	}
}

// Resolve runs both lookups concurrently using the suggested keywords.
func (r *MediaResolver) Resolve(ctx context.Context, suggestions domain.MediaSuggestions) (image, video Lookup) {
	g, gctx := errgroup.WithContext(ctx)

	var imageSearch func(context.Context, string) (string, error)
	if r.images != nil {
		imageSearch = r.images.SearchImage
	}
	var videoSearch func(context.Context, string) (string, error)
	if r.videos != nil {
		videoSearch = r.videos.SearchVideo
	}

	g.Go(func() error {
		image = r.lookup(gctx, "image", suggestions.ImageKeywords, imageSearch)
		return nil
	})
	g.Go(func() error {
		video = r.lookup(gctx, "video", suggestions.VideoKeywords, videoSearch)
		return nil
	})

	_ = g.Wait()
	return image, video
}

func (r *MediaResolver) lookup(ctx context.Context, kind, keyword string, search func(context.Context, string) (string, error)) Lookup {
	if keyword == "" {
		return Lookup{State: LookupSkipped}
	}
	if search == nil {
		r.debug("media lookup disabled", "kind", kind, "keyword", keyword)
		return Lookup{State: LookupDisabled}
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	url, err := search(ctx, keyword)
	if err != nil {
		r.warn("media lookup failed", "kind", kind, "keyword", keyword, "error", err)
		return Lookup{State: LookupFailed}
	}
	if url == "" {
		r.debug("media lookup empty", "kind", kind, "keyword", keyword)
		return Lookup{State: LookupNotFound}
	}

	return Lookup{State: LookupFound, URL: url}
}

func (r *MediaResolver) warn(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Warn(msg, args...)
	}
}

func (r *MediaResolver) debug(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}
