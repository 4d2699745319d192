package ports

import (
	"context"

	"github.com/sonsdetaville/sounds-api/internal/core/domain"
)

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// UpdateUserInput carries the mutable user fields. Empty strings mean "not
// supplied". A non-empty Username is always rejected: usernames are
// immutable.
type UpdateUserInput struct {
	Username string
	Email    string
	Password string
}

// UserService defines use-case operations for users.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	GetUser(ctx context.Context, username string) (*domain.User, error)
	// UpdateUser patches email and/or password. Self-or-admin only.
	UpdateUser(ctx context.Context, actor Actor, username string, in UpdateUserInput) (*domain.User, error)
	// DeleteUser removes the user and cascades to their comments, their
	// sounds, and the comments attached to those sounds.
	DeleteUser(ctx context.Context, actor Actor, username string) error
}
