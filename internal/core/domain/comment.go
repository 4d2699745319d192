package domain

import "time"

// Comment is a user-authored note attached to a sound.
type Comment struct {
	ID        string    `json:"id"`
	SoundID   string    `json:"sound"`
	AuthorID  string    `json:"author"`
	Text      string    `json:"comment"`
	CreatedAt time.Time `json:"date"`
}
