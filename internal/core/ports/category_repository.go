package ports

import (
	"context"

	"github.com/sonsdetaville/sounds-api/internal/core/domain"
)

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) (*domain.Category, error)
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	FindByName(ctx context.Context, name string) (*domain.Category, error)
	// List returns all categories sorted by name.
	List(ctx context.Context) ([]*domain.Category, error)
	DeleteByName(ctx context.Context, name string) (*domain.Category, error)
}
