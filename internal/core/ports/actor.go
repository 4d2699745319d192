package ports

// Actor is the authenticated identity performing a request, extracted from
// the bearer token by the auth middleware.
type Actor struct {
	ID   string
	Role string // "admin" or "user"
}
