package ports

import "context"

// AuthService authenticates users and issues bearer tokens.
type AuthService interface {
	// Login verifies the email/password pair and returns a signed JWT
	// carrying the user id (sub) and role (scope), valid for 7 days.
	// Returns domain.ErrInvalidCredentials on any mismatch.
	Login(ctx context.Context, email, password string) (string, error)
}
