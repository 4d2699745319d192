package ports

import (
	"context"

	"github.com/sonsdetaville/sounds-api/internal/core/domain"
)

// ListCommentsFilter is the validated query for listing comments. Sorted by
// creation time, newest first.
type ListCommentsFilter struct {
	SoundID  string // optional, already resolved
	AuthorID string // optional, already resolved
	Limit    int
	Offset   int
}

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	List(ctx context.Context, filter ListCommentsFilter) ([]*domain.Comment, error)
	UpdateText(ctx context.Context, id, text string) error
	Delete(ctx context.Context, id string) error
	DeleteBySound(ctx context.Context, soundID string) error
	DeleteByAuthor(ctx context.Context, authorID string) error
	DeleteBySounds(ctx context.Context, soundIDs []string) error
}
