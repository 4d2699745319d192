package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sonsdetaville/sounds-api/internal/core/domain"
	"github.com/sonsdetaville/sounds-api/internal/core/ports"
)

const categoryTTL = 5 * time.Minute

// CachedCategoryRepository is a read-through cache in front of the Mongo
// category repository. Category resolution runs on every filtered sound
// query, so id and name lookups are cached with a short TTL. Cache failures
// fall through to the inner repository.
// Key format: category:id:<id> / category:name:<name>
type CachedCategoryRepository struct {
	inner  ports.CategoryRepository
	client *redis.Client
}

// NewCachedCategoryRepository wraps inner with a Redis lookaside cache.
func NewCachedCategoryRepository(inner ports.CategoryRepository, client *redis.Client) *CachedCategoryRepository {
	return &CachedCategoryRepository{inner: inner, client: client}
}

func (r *CachedCategoryRepository) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	if cat := r.get(ctx, "category:id:"+id); cat != nil {
		return cat, nil
	}

	cat, err := r.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.put(ctx, cat)
	return cat, nil
}

func (r *CachedCategoryRepository) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	if cat := r.get(ctx, "category:name:"+name); cat != nil {
		return cat, nil
	}

	cat, err := r.inner.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	r.put(ctx, cat)
	return cat, nil
}

func (r *CachedCategoryRepository) Create(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	created, err := r.inner.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	r.put(ctx, created)
	return created, nil
}

// List is not cached: it only backs the category listing endpoint.
func (r *CachedCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	return r.inner.List(ctx)
}

func (r *CachedCategoryRepository) DeleteByName(ctx context.Context, name string) (*domain.Category, error) {
	deleted, err := r.inner.DeleteByName(ctx, name)
	if err != nil {
		return nil, err
	}
	r.client.Del(ctx, "category:id:"+deleted.ID, "category:name:"+deleted.Name)
	return deleted, nil
}

func (r *CachedCategoryRepository) get(ctx context.Context, key string) *domain.Category {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	var cat domain.Category
	if err := json.Unmarshal(raw, &cat); err != nil {
		return nil
	}
	return &cat
}

func (r *CachedCategoryRepository) put(ctx context.Context, cat *domain.Category) {
	raw, err := json.Marshal(cat)
	if err != nil {
		return
	}
	r.client.Set(ctx, "category:id:"+cat.ID, raw, categoryTTL)
	r.client.Set(ctx, "category:name:"+cat.Name, raw, categoryTTL)
}
