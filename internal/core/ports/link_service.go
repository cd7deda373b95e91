package ports

import (
	"context"

	"github.com/urlmin/minify-system/internal/core/domain"
)

// LinkService defines the use-case operations of the URL-shortening service.
type LinkService interface {
	// Minify shortens url for ownerID. Idempotent per (url, ownerID): the
	// first call mints a minified URL, every repeat returns the same one
	// with minify_count incremented.
	Minify(ctx context.Context, url, ownerID string) (*domain.UrlStats, error)

	// Redirect resolves a minified URL back to its canonical URL and bumps
	// redirect_count. domain.ErrLinkNotFound for unknown links.
	Redirect(ctx context.Context, minifiedURL string) (string, error)

	StatsByURL(ctx context.Context, url, ownerID string) (*domain.UrlStats, error)
	StatsByUser(ctx context.Context, userID string) ([]domain.UrlStats, error)
	// StatsByPattern returns every record whose canonical URL matches the
	// case-insensitive pattern, across all owners.
	StatsByPattern(ctx context.Context, pattern string) ([]domain.UrlStats, error)
	// AllStatsByUser groups every record by owning user. Empty map when no
	// records exist.
	AllStatsByUser(ctx context.Context) (map[string][]domain.UrlStats, error)

	// Delete removes one record by natural key. Administrative use only; it
	// is not reachable from the public HTTP surface.
	Delete(ctx context.Context, url, ownerID string) error
}
