package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/urlmin/minify-system/internal/api/metrics"
	"github.com/urlmin/minify-system/internal/core/domain"
	"github.com/urlmin/minify-system/internal/core/ports"
)

// LinkCache abstracts the hot-path store for minified→canonical resolution
// (Redis). The cache only short-circuits the document read on redirect; the
// counter write always reaches the repository.
type LinkCache interface {
	Get(ctx context.Context, minifiedURL string) (string, bool)
	Set(ctx context.Context, minifiedURL, url string)
}

// LinkService implements the short-link engine on top of a LinkRepository.
type LinkService struct {
	repo    ports.LinkRepository
	cache   LinkCache
	baseURL string
	log     zerolog.Logger
}

// NewLinkService builds a LinkService. cache may be nil; every operation
// works without it.
func NewLinkService(repo ports.LinkRepository, cache LinkCache, baseURL string, log zerolog.Logger) *LinkService {
	return &LinkService{repo: repo, cache: cache, baseURL: baseURL, log: log}
}

// Minify shortens url for ownerID. The write is one atomic upsert on the
// natural key, so repeats never mint a second minified URL for the pair and
// two concurrent first-minifies converge on a single record.
func (s *LinkService) Minify(ctx context.Context, url, ownerID string) (*domain.UrlStats, error) {
	candidate := fmt.Sprintf("%s/r/%s", s.baseURL, NewShortToken())

	rec, err := s.repo.Upsert(ctx, url, ownerID, candidate)
	if err != nil {
		s.log.Error().Err(err).Str("url", url).Str("user_id", ownerID).Msg("minify upsert failed")
		return nil, fmt.Errorf("minify: %w", err)
	}

	outcome := "repeat"
	if rec.MinifyCount == 1 {
		outcome = "created"
	}
	metrics.LinksMinifiedTotal.WithLabelValues(outcome).Inc()
	s.log.Info().
		Str("url", url).
		Str("user_id", ownerID).
		Str("minified_url", rec.MinifiedURL).
		Int64("minify_count", rec.MinifyCount).
		Msg("url minified")

	return rec, nil
}

// Redirect resolves minifiedURL to its canonical URL and atomically bumps
// redirect_count. The counter is persisted before the caller issues the 302.
func (s *LinkService) Redirect(ctx context.Context, minifiedURL string) (string, error) {
	target, cached := s.cachedTarget(ctx, minifiedURL)
	if !cached {
		rec, err := s.repo.FindByMinified(ctx, minifiedURL)
		if err != nil {
			return "", fmt.Errorf("redirect: %w", err)
		}
		target = rec.URL
		if s.cache != nil {
			s.cache.Set(ctx, minifiedURL, target)
		}
	}

	// Atomic server-side increment; also catches a stale cache entry for a
	// record deleted since it was cached.
	if err := s.repo.IncrementRedirects(ctx, minifiedURL); err != nil {
		return "", fmt.Errorf("redirect: %w", err)
	}

	metrics.RedirectsTotal.Inc()
	s.log.Info().Str("minified_url", minifiedURL).Msg("redirect served")
	return target, nil
}

func (s *LinkService) cachedTarget(ctx context.Context, minifiedURL string) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	target, ok := s.cache.Get(ctx, minifiedURL)
	if ok {
		metrics.RedirectCacheTotal.WithLabelValues("hit").Inc()
		return target, true
	}
	metrics.RedirectCacheTotal.WithLabelValues("miss").Inc()
	return "", false
}

// StatsByURL returns the record for (url, ownerID).
func (s *LinkService) StatsByURL(ctx context.Context, url, ownerID string) (*domain.UrlStats, error) {
	rec, err := s.repo.Find(ctx, url, ownerID)
	if err != nil {
		return nil, fmt.Errorf("stats by url: %w", err)
	}
	return rec, nil
}

// StatsByUser returns every record owned by userID. No records is not an
// error: the projection is an empty slice.
func (s *LinkService) StatsByUser(ctx context.Context, userID string) ([]domain.UrlStats, error) {
	recs, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("stats by user: %w", err)
	}
	return recs, nil
}

// StatsByPattern returns every record whose canonical URL matches the
// case-insensitive pattern, across all owners.
func (s *LinkService) StatsByPattern(ctx context.Context, pattern string) ([]domain.UrlStats, error) {
	recs, err := s.repo.SearchByURLPattern(ctx, pattern)
	if err != nil {
		return nil, fmt.Errorf("stats by pattern: %w", err)
	}
	return recs, nil
}

// AllStatsByUser groups every record by owning user id.
func (s *LinkService) AllStatsByUser(ctx context.Context) (map[string][]domain.UrlStats, error) {
	recs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("all stats: %w", err)
	}

	grouped := make(map[string][]domain.UrlStats, len(recs))
	for _, rec := range recs {
		grouped[rec.UserID] = append(grouped[rec.UserID], rec)
	}
	return grouped, nil
}

// Delete removes one record by natural key.
func (s *LinkService) Delete(ctx context.Context, url, ownerID string) error {
	if err := s.repo.Delete(ctx, url, ownerID); err != nil {
		return fmt.Errorf("delete link: %w", err)
	}
	s.log.Info().Str("url", url).Str("user_id", ownerID).Msg("link deleted")
	return nil
}
