package ports

import (
	"context"
	"time"

	"github.com/sonsdetaville/sounds-api/internal/core/domain"
)

// GeoFilter restricts results to within RadiusMeters of a coordinate point,
// nearest first.
type GeoFilter struct {
	Lng          float64
	Lat          float64
	RadiusMeters float64
}

// ListSoundsFilter is the validated, immutable query produced by the sound
// query builder. All non-zero fields are combined with AND. Results are
// always sorted by creation time, newest first.
type ListSoundsFilter struct {
	Near       *GeoFilter // optional geo constraint
	CategoryID string     // optional, already resolved to an existing category
	OwnerID    string     // optional, already resolved to an existing user
	Since      time.Time  // optional: created_at >= Since
	Limit      int        // clamped to [1, 100] by the service
	Offset     int        // non-negative skip count
}

// SoundRepository defines persistence operations for sounds.
type SoundRepository interface {
	Create(ctx context.Context, s *domain.Sound) (*domain.Sound, error)
	// FindByID loads the full document including the audio payload.
	FindByID(ctx context.Context, id string) (*domain.Sound, error)
	List(ctx context.Context, filter ListSoundsFilter) ([]*domain.Sound, error)
	UpdateCategory(ctx context.Context, id, categoryID string) error
	Delete(ctx context.Context, id string) error
	// IDsByOwner returns the IDs of every sound owned by the given user,
	// used to cascade comment deletion before the sounds themselves go.
	IDsByOwner(ctx context.Context, ownerID string) ([]string, error)
	DeleteByOwner(ctx context.Context, ownerID string) error
	PushCommentID(ctx context.Context, soundID, commentID string) error
	PullCommentID(ctx context.Context, soundID, commentID string) error
}
