package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sonsdetaville/sounds-api/internal/core/domain"
	"github.com/sonsdetaville/sounds-api/internal/core/ports"
)

// CategoryService implements category queries and admin-only mutations.
type CategoryService struct {
	categories ports.CategoryRepository
	logger     zerolog.Logger
}

func NewCategoryService(categories ports.CategoryRepository, logger zerolog.Logger) *CategoryService {
	return &CategoryService{categories: categories, logger: logger}
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *CategoryService) GetCategory(ctx context.Context, name string) (*domain.Category, error) {
	return s.categories.FindByName(ctx, name)
}

// CreateCategory creates a new category. Admin only; there is no ownership
// concept on categories.
func (s *CategoryService) CreateCategory(ctx context.Context, actor ports.Actor, name, color string) (*domain.Category, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.Unauthorized("Unauthorized")
	}
	if name == "" {
		return nil, domain.BadRequest("Category name is required")
	}

	created, err := s.categories.Create(ctx, &domain.Category{Name: name, Color: color})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("category_id", created.ID).Str("name", created.Name).Msg("category created")
	return created, nil
}

// DeleteCategory removes a category by name and returns it. Admin only.
func (s *CategoryService) DeleteCategory(ctx context.Context, actor ports.Actor, name string) (*domain.Category, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.Unauthorized("Unauthorized")
	}

	deleted, err := s.categories.DeleteByName(ctx, name)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("category_id", deleted.ID).Str("name", deleted.Name).Msg("category deleted")
	return deleted, nil
}
