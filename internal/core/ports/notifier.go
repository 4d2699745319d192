package ports

// Notifier pushes best-effort event messages to a connected user session.
// Pushing to a user without an open session is a no-op.
type Notifier interface {
	Push(userID, message string, code int)
}
