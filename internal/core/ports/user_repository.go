package ports

import (
	"context"

	"github.com/urlmin/minify-system/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Insert(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByName(ctx context.Context, name string) (*domain.User, error)
	// Search returns users whose name matches the pattern
	// (case-insensitive substring). An empty pattern returns everyone.
	Search(ctx context.Context, namePattern string) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
	EnsureIndexes(ctx context.Context) error
}
