package ports

import (
	"context"
	"time"

	"github.com/sonsdetaville/sounds-api/internal/core/domain"
)

// ListSoundsParams carries the raw, untrusted query parameters of
// GET /sounds. The service validates, clamps, and resolves them into a
// ListSoundsFilter before touching the sounds collection.
type ListSoundsParams struct {
	Location string // JSON {"lat": .., "lng": .., "radius": ..}
	Category string // category id or name
	Username string
	UserID   string
	Date     string // strict YYYY-MM-DD
	Limit    string
	Offset   string
}

// CreateSoundInput carries all data needed to publish a new sound.
type CreateSoundInput struct {
	Actor       Actor
	Lat         float64
	Lng         float64
	Category    string // category id or name, required
	Audio       []byte
	ContentType string
}

// UserSummary is the populated owner/author view embedded in responses.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// CategorySummary is the populated category view embedded in responses.
type CategorySummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// SoundView is a sound with its owner and category populated. The audio
// payload is never included; clients fetch it from /sounds/data/:id.
type SoundView struct {
	ID         string           `json:"id"`
	Owner      UserSummary      `json:"user"`
	Location   domain.GeoPoint  `json:"location"`
	Category   *CategorySummary `json:"category,omitempty"`
	CommentIDs []string         `json:"comments"`
	CreatedAt  time.Time        `json:"date"`
}

// SoundData is the raw audio payload of a sound.
type SoundData struct {
	Bytes       []byte
	ContentType string
}

// SoundService defines use-case operations for sounds.
type SoundService interface {
	ListSounds(ctx context.Context, params ListSoundsParams) ([]SoundView, error)
	GetSound(ctx context.Context, id string) (*SoundView, error)
	GetSoundData(ctx context.Context, id string) (*SoundData, error)
	CreateSound(ctx context.Context, in CreateSoundInput) (*SoundView, error)
	// UpdateSoundCategory reassigns the sound's category, resolved by name.
	// Owner-or-admin only.
	UpdateSoundCategory(ctx context.Context, actor Actor, soundID, categoryName string) (*SoundView, error)
	// DeleteSound removes the sound and cascades to its comments.
	// Owner-or-admin only.
	DeleteSound(ctx context.Context, actor Actor, soundID string) error
}
