package domain

import "errors"

// Sentinel errors shared across services.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("username or email already taken")
)

// NotFoundError marks a missing resource. The message is user-facing and
// rendered verbatim by the HTTP error handler.
type NotFoundError struct {
	msg string
}

func (e *NotFoundError) Error() string { return e.msg }

// NotFound returns a NotFoundError with the given user-facing message.
func NotFound(msg string) error { return &NotFoundError{msg: msg} }

// UnauthorizedError marks a role or ownership violation.
type UnauthorizedError struct {
	msg string
}

func (e *UnauthorizedError) Error() string { return e.msg }

// Unauthorized returns an UnauthorizedError with the given user-facing message.
func Unauthorized(msg string) error { return &UnauthorizedError{msg: msg} }

// ValidationError marks malformed or rejected input.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// BadRequest returns a ValidationError with the given user-facing message.
func BadRequest(msg string) error { return &ValidationError{msg: msg} }

// Common instances. Comparing with errors.Is works because each is a single
// shared value; handlers and tests rely on that.
var (
	ErrUserNotFound     = NotFound("User not found")
	ErrSoundNotFound    = NotFound("Sound not found")
	ErrCommentNotFound  = NotFound("Comment not found")
	ErrCategoryNotFound = NotFound("Category not found")
)
