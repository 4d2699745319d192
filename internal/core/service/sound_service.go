package service

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/sonsdetaville/sounds-api/internal/core/domain"
	"github.com/sonsdetaville/sounds-api/internal/core/ports"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// SoundService implements sound queries and lifecycle. The query builder
// turns the raw GET /sounds parameters into a validated ListSoundsFilter:
// every referenced entity is resolved up front and numeric inputs are
// clamped, so the repository only ever sees a safe, bounded query.
type SoundService struct {
	sounds     ports.SoundRepository
	comments   ports.CommentRepository
	categories ports.CategoryRepository
	users      ports.UserRepository
	logger     zerolog.Logger
}

func NewSoundService(
	sounds ports.SoundRepository,
	comments ports.CommentRepository,
	categories ports.CategoryRepository,
	users ports.UserRepository,
	logger zerolog.Logger,
) *SoundService {
	return &SoundService{
		sounds:     sounds,
		comments:   comments,
		categories: categories,
		users:      users,
		logger:     logger,
	}
}

// locationParam is the JSON shape of the ?location= query parameter.
// Radius is in meters; absent or zero means "maximum".
type locationParam struct {
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Radius float64 `json:"radius"`
}

// buildFilter validates and resolves the raw query parameters. The user
// filter is resolved before the category filter, so when both are unknown
// the "User not found" error wins.
func (s *SoundService) buildFilter(ctx context.Context, params ports.ListSoundsParams) (ports.ListSoundsFilter, error) {
	var filter ports.ListSoundsFilter

	if params.Username != "" || params.UserID != "" {
		var (
			user *domain.User
			err  error
		)
		if params.Username != "" {
			user, err = s.users.FindByUsername(ctx, params.Username)
		} else {
			user, err = s.users.FindByID(ctx, params.UserID)
		}
		if err != nil {
			return filter, err
		}
		filter.OwnerID = user.ID
	}

	if params.Category != "" {
		cat, err := s.resolveCategory(ctx, params.Category)
		if err != nil {
			return filter, err
		}
		filter.CategoryID = cat.ID
	}

	if params.Location != "" {
		var loc locationParam
		if err := json.Unmarshal([]byte(params.Location), &loc); err != nil {
			return filter, domain.BadRequest("Invalid location")
		}
		if !domain.ValidLatitude(loc.Lat) || !domain.ValidLongitude(loc.Lng) {
			return filter, domain.BadRequest("Invalid location")
		}
		filter.Near = &ports.GeoFilter{
			Lng:          loc.Lng,
			Lat:          loc.Lat,
			RadiusMeters: domain.ClampRadius(loc.Radius),
		}
	}

	if params.Date != "" {
		if !datePattern.MatchString(params.Date) {
			return filter, domain.BadRequest("Invalid date")
		}
		since, err := time.Parse("2006-01-02", params.Date)
		if err != nil {
			return filter, domain.BadRequest("Invalid date")
		}
		filter.Since = since
	}

	limit, err := parseLimit(params.Limit)
	if err != nil {
		return filter, err
	}
	filter.Limit = limit

	offset, err := parseOffset(params.Offset)
	if err != nil {
		return filter, err
	}
	filter.Offset = offset

	return filter, nil
}

// ListSounds builds the filter and returns matching sounds, newest first,
// with owner and category populated.
func (s *SoundService) ListSounds(ctx context.Context, params ports.ListSoundsParams) ([]ports.SoundView, error) {
	filter, err := s.buildFilter(ctx, params)
	if err != nil {
		return nil, err
	}

	sounds, err := s.sounds.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return s.populate(ctx, sounds)
}

func (s *SoundService) GetSound(ctx context.Context, id string) (*ports.SoundView, error) {
	sound, err := s.sounds.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	views, err := s.populate(ctx, []*domain.Sound{sound})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// GetSoundData returns the raw audio payload of a sound.
func (s *SoundService) GetSoundData(ctx context.Context, id string) (*ports.SoundData, error) {
	sound, err := s.sounds.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	contentType := sound.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &ports.SoundData{Bytes: sound.Audio, ContentType: contentType}, nil
}

// CreateSound publishes a new sound owned by the acting user. The category
// must resolve and the coordinates must be within geographic bounds.
func (s *SoundService) CreateSound(ctx context.Context, in ports.CreateSoundInput) (*ports.SoundView, error) {
	if !domain.ValidLatitude(in.Lat) || !domain.ValidLongitude(in.Lng) {
		return nil, domain.BadRequest("Invalid location")
	}
	if len(in.Audio) == 0 {
		return nil, domain.BadRequest("Audio file is required")
	}

	cat, err := s.resolveCategory(ctx, in.Category)
	if err != nil {
		return nil, err
	}

	sound := &domain.Sound{
		OwnerID:     in.Actor.ID,
		Location:    domain.NewGeoPoint(in.Lng, in.Lat),
		CategoryID:  cat.ID,
		Audio:       in.Audio,
		ContentType: in.ContentType,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.sounds.Create(ctx, sound)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create sound")
		return nil, err
	}

	s.logger.Info().Str("sound_id", created.ID).Str("owner_id", created.OwnerID).Str("category", cat.Name).Msg("sound created")

	views, err := s.populate(ctx, []*domain.Sound{created})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// UpdateSoundCategory reassigns the category of a sound. Existence is
// checked before authorization; the new category is resolved by name.
func (s *SoundService) UpdateSoundCategory(ctx context.Context, actor ports.Actor, soundID, categoryName string) (*ports.SoundView, error) {
	sound, err := s.sounds.FindByID(ctx, soundID)
	if err != nil {
		return nil, err
	}

	if !domain.CanMutate(actor.ID, actor.Role, sound.OwnerID) {
		return nil, domain.Unauthorized("You are not authorized to update this sound")
	}

	cat, err := s.categories.FindByName(ctx, categoryName)
	if err != nil {
		return nil, err
	}

	if err := s.sounds.UpdateCategory(ctx, sound.ID, cat.ID); err != nil {
		return nil, err
	}
	sound.CategoryID = cat.ID

	views, err := s.populate(ctx, []*domain.Sound{sound})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// DeleteSound removes a sound and all comments attached to it. The cascade
// is best-effort: a comment deletion failure leaves the sound in place.
func (s *SoundService) DeleteSound(ctx context.Context, actor ports.Actor, soundID string) error {
	sound, err := s.sounds.FindByID(ctx, soundID)
	if err != nil {
		return err
	}

	if !domain.CanMutate(actor.ID, actor.Role, sound.OwnerID) {
		return domain.Unauthorized("You are not authorized to delete this sound")
	}

	if err := s.comments.DeleteBySound(ctx, sound.ID); err != nil {
		return err
	}
	if err := s.sounds.Delete(ctx, sound.ID); err != nil {
		return err
	}

	s.logger.Info().Str("sound_id", sound.ID).Msg("sound deleted")
	return nil
}

// resolveCategory accepts a category id or name. Lookup by id is attempted
// first; anything that does not resolve falls through to a name lookup.
func (s *SoundService) resolveCategory(ctx context.Context, idOrName string) (*domain.Category, error) {
	cat, err := s.categories.FindByID(ctx, idOrName)
	if err == nil {
		return cat, nil
	}
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		return nil, err
	}
	return s.categories.FindByName(ctx, idOrName)
}

// populate turns sounds into views with owner and category summaries,
// memoizing lookups across the page.
func (s *SoundService) populate(ctx context.Context, sounds []*domain.Sound) ([]ports.SoundView, error) {
	userCache := make(map[string]*domain.User)
	catCache := make(map[string]*domain.Category)

	views := make([]ports.SoundView, 0, len(sounds))
	for _, sound := range sounds {
		owner, ok := userCache[sound.OwnerID]
		if !ok {
			var err error
			owner, err = s.users.FindByID(ctx, sound.OwnerID)
			if err != nil {
				return nil, err
			}
			userCache[sound.OwnerID] = owner
		}

		view := ports.SoundView{
			ID:         sound.ID,
			Owner:      ports.UserSummary{ID: owner.ID, Username: owner.Username},
			Location:   sound.Location,
			CommentIDs: sound.CommentIDs,
			CreatedAt:  sound.CreatedAt,
		}

		if sound.CategoryID != "" {
			cat, ok := catCache[sound.CategoryID]
			if !ok {
				var err error
				cat, err = s.categories.FindByID(ctx, sound.CategoryID)
				if err != nil {
					return nil, err
				}
				catCache[sound.CategoryID] = cat
			}
			view.Category = &ports.CategorySummary{ID: cat.ID, Name: cat.Name, Color: cat.Color}
		}

		views = append(views, view)
	}
	return views, nil
}

// parseLimit applies the default and clamps the page size to [1, 100].
func parseLimit(raw string) (int, error) {
	if raw == "" {
		return domain.DefaultLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.BadRequest("Invalid limit")
	}
	return domain.ClampLimit(limit), nil
}

// parseOffset rejects non-numeric input and floors negatives at zero.
func parseOffset(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	offset, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.BadRequest("Invalid offset")
	}
	if offset < 0 {
		return 0, nil
	}
	return offset, nil
}
