package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/sonsdetaville/sounds-api/internal/core/domain"
	"github.com/sonsdetaville/sounds-api/internal/core/ports"
)

// CommentService implements comment queries and lifecycle, including the
// "New comment" push to the sound's owner.
type CommentService struct {
	comments ports.CommentRepository
	sounds   ports.SoundRepository
	users    ports.UserRepository
	notifier ports.Notifier
	logger   zerolog.Logger
}

func NewCommentService(
	comments ports.CommentRepository,
	sounds ports.SoundRepository,
	users ports.UserRepository,
	notifier ports.Notifier,
	logger zerolog.Logger,
) *CommentService {
	return &CommentService{
		comments: comments,
		sounds:   sounds,
		users:    users,
		notifier: notifier,
		logger:   logger,
	}
}

// ListComments resolves the sound and user filters, then returns matching
// comments newest first with their authors populated.
func (s *CommentService) ListComments(ctx context.Context, params ports.ListCommentsParams) ([]ports.CommentView, error) {
	var filter ports.ListCommentsFilter

	if params.Sound != "" {
		sound, err := s.sounds.FindByID(ctx, params.Sound)
		if err != nil {
			return nil, err
		}
		filter.SoundID = sound.ID
	}

	if params.User != "" {
		user, err := s.resolveUser(ctx, params.User)
		if err != nil {
			return nil, err
		}
		filter.AuthorID = user.ID
	}

	limit, err := parseLimit(params.Limit)
	if err != nil {
		return nil, err
	}
	filter.Limit = limit

	offset, err := parseOffset(params.Offset)
	if err != nil {
		return nil, err
	}
	filter.Offset = offset

	comments, err := s.comments.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return s.populate(ctx, comments)
}

// CreateComment attaches a comment to an existing sound and notifies the
// sound's owner. A missing owner after the insert is a hard error, not a
// swallowed one.
func (s *CommentService) CreateComment(ctx context.Context, actor ports.Actor, soundID, text string) (*ports.CommentView, error) {
	sound, err := s.sounds.FindByID(ctx, soundID)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, domain.BadRequest("Comment cannot be empty")
	}

	comment := &domain.Comment{
		SoundID:   sound.ID,
		AuthorID:  actor.ID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.comments.Create(ctx, comment)
	if err != nil {
		s.logger.Error().Err(err).Str("sound_id", sound.ID).Msg("failed to create comment")
		return nil, err
	}

	if err := s.sounds.PushCommentID(ctx, sound.ID, created.ID); err != nil {
		s.logger.Warn().Err(err).Str("sound_id", sound.ID).Str("comment_id", created.ID).Msg("failed to link comment to sound")
	}

	owner, err := s.users.FindByID(ctx, sound.OwnerID)
	if err != nil {
		return nil, err
	}
	s.notifier.Push(owner.ID, "New comment", http.StatusOK)

	s.logger.Info().Str("comment_id", created.ID).Str("sound_id", sound.ID).Str("author_id", actor.ID).Msg("comment created")

	views, err := s.populate(ctx, []*domain.Comment{created})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// UpdateComment replaces the text of a comment. Existence is checked before
// authorization; empty text is rejected before persistence.
func (s *CommentService) UpdateComment(ctx context.Context, actor ports.Actor, commentID, text string) error {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return err
	}

	if !domain.CanMutate(actor.ID, actor.Role, comment.AuthorID) {
		return domain.Unauthorized("You are not authorized to edit this comment")
	}
	if text == "" {
		return domain.BadRequest("Comment cannot be empty")
	}

	return s.comments.UpdateText(ctx, comment.ID, text)
}

// DeleteComment removes a comment. Unlinking it from its sound is
// best-effort.
func (s *CommentService) DeleteComment(ctx context.Context, actor ports.Actor, commentID string) error {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return err
	}

	if !domain.CanMutate(actor.ID, actor.Role, comment.AuthorID) {
		return domain.Unauthorized("You are not authorized to delete this comment")
	}

	if err := s.comments.Delete(ctx, comment.ID); err != nil {
		return err
	}
	if err := s.sounds.PullCommentID(ctx, comment.SoundID, comment.ID); err != nil {
		s.logger.Warn().Err(err).Str("comment_id", comment.ID).Msg("failed to unlink comment from sound")
	}

	s.logger.Info().Str("comment_id", comment.ID).Msg("comment deleted")
	return nil
}

// resolveUser accepts a username or a user id; username wins when both
// could match.
func (s *CommentService) resolveUser(ctx context.Context, usernameOrID string) (*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, usernameOrID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	return s.users.FindByID(ctx, usernameOrID)
}

func (s *CommentService) populate(ctx context.Context, comments []*domain.Comment) ([]ports.CommentView, error) {
	authorCache := make(map[string]*domain.User)

	views := make([]ports.CommentView, 0, len(comments))
	for _, comment := range comments {
		author, ok := authorCache[comment.AuthorID]
		if !ok {
			var err error
			author, err = s.users.FindByID(ctx, comment.AuthorID)
			if err != nil {
				return nil, err
			}
			authorCache[comment.AuthorID] = author
		}

		views = append(views, ports.CommentView{
			ID:        comment.ID,
			SoundID:   comment.SoundID,
			Author:    ports.UserSummary{ID: author.ID, Username: author.Username},
			Text:      comment.Text,
			CreatedAt: comment.CreatedAt,
		})
	}
	return views, nil
}
