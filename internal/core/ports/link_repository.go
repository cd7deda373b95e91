package ports

import (
	"context"

	"github.com/urlmin/minify-system/internal/core/domain"
)

// LinkRepository defines persistence operations for short-link records.
//
// Counter updates are contractually atomic on the storage side: callers
// never read a counter, add one, and write it back as two round-trips.
type LinkRepository interface {
	// Upsert performs the minify write for the natural key (url, userID) in
	// a single atomic operation: minify_count is incremented when the record
	// exists, and candidateMinified is installed with minify_count=1 and
	// redirect_count=0 when it does not. The post-update record is returned,
	// so concurrent first-minifies of one pair converge on one minified URL.
	Upsert(ctx context.Context, url, userID, candidateMinified string) (*domain.UrlStats, error)

	// IncrementRedirects atomically bumps redirect_count for the record with
	// the exact minified URL. domain.ErrLinkNotFound when no record matches.
	IncrementRedirects(ctx context.Context, minifiedURL string) error

	Find(ctx context.Context, url, userID string) (*domain.UrlStats, error)
	FindByMinified(ctx context.Context, minifiedURL string) (*domain.UrlStats, error)
	FindByUser(ctx context.Context, userID string) ([]domain.UrlStats, error)
	FindAll(ctx context.Context) ([]domain.UrlStats, error)
	// SearchByURLPattern returns records whose canonical URL matches the
	// pattern (case-insensitive substring).
	SearchByURLPattern(ctx context.Context, pattern string) ([]domain.UrlStats, error)
	Delete(ctx context.Context, url, userID string) error
	EnsureIndexes(ctx context.Context) error
}
