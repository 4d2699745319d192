package ports

import (
	"context"
	"time"
)

// ListCommentsParams carries the raw query parameters of GET /comments.
type ListCommentsParams struct {
	Sound  string // sound id
	User   string // username or user id
	Limit  string
	Offset string
}

// CommentView is a comment with its author populated.
type CommentView struct {
	ID        string      `json:"id"`
	SoundID   string      `json:"sound"`
	Author    UserSummary `json:"author"`
	Text      string      `json:"comment"`
	CreatedAt time.Time   `json:"date"`
}

// CommentService defines use-case operations for comments.
type CommentService interface {
	ListComments(ctx context.Context, params ListCommentsParams) ([]CommentView, error)
	// CreateComment attaches a comment to an existing sound and pushes a
	// "New comment" notification to the sound's owner.
	CreateComment(ctx context.Context, actor Actor, soundID, text string) (*CommentView, error)
	// UpdateComment replaces the comment text. Author-or-admin only; empty
	// text is rejected before persistence.
	UpdateComment(ctx context.Context, actor Actor, commentID, text string) error
	// DeleteComment removes the comment. Author-or-admin only.
	DeleteComment(ctx context.Context, actor Actor, commentID string) error
}
