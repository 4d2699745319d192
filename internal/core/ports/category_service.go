package ports

import (
	"context"

	"github.com/sonsdetaville/sounds-api/internal/core/domain"
)

// CategoryService defines use-case operations for categories. Mutations are
// admin-only; there is no ownership concept on categories.
type CategoryService interface {
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	GetCategory(ctx context.Context, name string) (*domain.Category, error)
	CreateCategory(ctx context.Context, actor Actor, name, color string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, actor Actor, name string) (*domain.Category, error)
}
