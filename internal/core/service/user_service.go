package service

import (
	"context"
	"regexp"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sonsdetaville/sounds-api/internal/core/domain"
	"github.com/sonsdetaville/sounds-api/internal/core/ports"
)

const (
	minUsernameLen = 2
	maxUsernameLen = 20
	minPasswordLen = 8
)

var emailPattern = regexp.MustCompile(`^.+@.+\..+$`)

// UserService implements registration and user lifecycle, including the
// cascading delete of a user's comments and sounds.
type UserService struct {
	users    ports.UserRepository
	sounds   ports.SoundRepository
	comments ports.CommentRepository
	logger   zerolog.Logger
}

func NewUserService(users ports.UserRepository, sounds ports.SoundRepository, comments ports.CommentRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, sounds: sounds, comments: comments, logger: logger}
}

// Register validates the input, hashes the password, and creates the user.
func (s *UserService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if err := validateUsername(in.Username); err != nil {
		return nil, err
	}
	if !emailPattern.MatchString(in.Email) {
		return nil, domain.BadRequest("Invalid email")
	}
	if len(in.Password) < minPasswordLen {
		return nil, domain.BadRequest("Password is too short")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return created, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) GetUser(ctx context.Context, username string) (*domain.User, error) {
	return s.users.FindByUsername(ctx, username)
}

// UpdateUser patches email and/or password on the target account. Resource
// existence is checked before authorization; usernames are immutable.
func (s *UserService) UpdateUser(ctx context.Context, actor ports.Actor, username string, in ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if !domain.CanMutate(actor.ID, actor.Role, user.ID) {
		return nil, domain.Unauthorized("You are not authorized to update this user")
	}
	if in.Username != "" {
		return nil, domain.Unauthorized("Username cannot be modified")
	}

	if in.Password != "" {
		if len(in.Password) < minPasswordLen {
			return nil, domain.BadRequest("Password is too short")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if in.Email != "" {
		if !emailPattern.MatchString(in.Email) {
			return nil, domain.BadRequest("Invalid email")
		}
		user.Email = in.Email
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user updated")
	return user, nil
}

// DeleteUser removes the account and everything hanging off it: the user's
// own comments, the comments attached to the user's sounds, and the sounds.
// The cascade is best-effort: the first failing step aborts the rest.
func (s *UserService) DeleteUser(ctx context.Context, actor ports.Actor, username string) error {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}

	if !domain.CanMutate(actor.ID, actor.Role, user.ID) {
		return domain.Unauthorized("You are not authorized to delete this user")
	}

	if err := s.comments.DeleteByAuthor(ctx, user.ID); err != nil {
		return err
	}

	soundIDs, err := s.sounds.IDsByOwner(ctx, user.ID)
	if err != nil {
		return err
	}
	if len(soundIDs) > 0 {
		if err := s.comments.DeleteBySounds(ctx, soundIDs); err != nil {
			return err
		}
		if err := s.sounds.DeleteByOwner(ctx, user.ID); err != nil {
			return err
		}
	}

	if err := s.users.Delete(ctx, user.ID); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", user.ID).Int("sounds_removed", len(soundIDs)).Msg("user deleted")
	return nil
}

func validateUsername(username string) error {
	if len(username) < minUsernameLen {
		return domain.BadRequest("Username is too short")
	}
	if len(username) > maxUsernameLen {
		return domain.BadRequest("Username is too long")
	}
	return nil
}
