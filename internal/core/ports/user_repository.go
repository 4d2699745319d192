package ports

import (
	"context"

	"github.com/sonsdetaville/sounds-api/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Create inserts a new user and returns it with its generated ID.
	// Returns domain.ErrUserExists on a username or email collision.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// Update persists email and password hash changes for the given user ID.
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}
