package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User models a registered account. The password hash never leaves the
// process: it is excluded from JSON serialization.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Admin        bool      `json:"admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// Role maps the admin flag to the token scope claim.
func (u *User) Role() string {
	if u.Admin {
		return RoleAdmin
	}
	return RoleUser
}

// CanMutate is the single authorization predicate applied to every mutating
// endpoint: the resource owner and any admin may mutate, nobody else.
func CanMutate(actorID, actorRole, ownerID string) bool {
	return actorRole == RoleAdmin || actorID == ownerID
}
