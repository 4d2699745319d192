package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sonsdetaville/sounds-api/internal/core/domain"
	"github.com/sonsdetaville/sounds-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID      map[string]*domain.User
	nextID    int
	createErr error
	updateErr error
	deleted   []string
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func (r *stubUserRepo) add(u *domain.User) *domain.User {
	if u.ID == "" {
		r.nextID++
		u.ID = fmt.Sprintf("user_%d", r.nextID)
	}
	clone := *u
	r.byID[u.ID] = &clone
	return u
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, existing := range r.byID {
		if existing.Username == u.Username || existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}
	return r.add(u), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		clone := *u
		users = append(users, &clone)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.byID[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *u
	r.byID[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type stubSoundRepo struct {
	byID       map[string]*domain.Sound
	nextID     int
	lastFilter ports.ListSoundsFilter
	listCalled bool
	pushErr    error
}

func newStubSoundRepo() *stubSoundRepo {
	return &stubSoundRepo{byID: make(map[string]*domain.Sound)}
}

func (r *stubSoundRepo) add(s *domain.Sound) *domain.Sound {
	if s.ID == "" {
		r.nextID++
		s.ID = fmt.Sprintf("sound_%d", r.nextID)
	}
	clone := *s
	r.byID[s.ID] = &clone
	return s
}

func (r *stubSoundRepo) Create(_ context.Context, s *domain.Sound) (*domain.Sound, error) {
	return r.add(s), nil
}

func (r *stubSoundRepo) FindByID(_ context.Context, id string) (*domain.Sound, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrSoundNotFound
	}
	clone := *s
	return &clone, nil
}

// List records the filter it was handed so tests can assert on the query the
// builder produced, and applies the owner/category/limit parts in memory.
func (r *stubSoundRepo) List(_ context.Context, filter ports.ListSoundsFilter) ([]*domain.Sound, error) {
	r.lastFilter = filter
	r.listCalled = true

	var matched []*domain.Sound
	for _, s := range r.byID {
		if filter.OwnerID != "" && s.OwnerID != filter.OwnerID {
			continue
		}
		if filter.CategoryID != "" && s.CategoryID != filter.CategoryID {
			continue
		}
		if !filter.Since.IsZero() && s.CreatedAt.Before(filter.Since) {
			continue
		}
		clone := *s
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	if filter.Offset > len(matched) {
		return nil, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func (r *stubSoundRepo) UpdateCategory(_ context.Context, id, categoryID string) error {
	s, ok := r.byID[id]
	if !ok {
		return domain.ErrSoundNotFound
	}
	s.CategoryID = categoryID
	return nil
}

func (r *stubSoundRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrSoundNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubSoundRepo) IDsByOwner(_ context.Context, ownerID string) ([]string, error) {
	var ids []string
	for _, s := range r.byID {
		if s.OwnerID == ownerID {
			ids = append(ids, s.ID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *stubSoundRepo) DeleteByOwner(_ context.Context, ownerID string) error {
	for id, s := range r.byID {
		if s.OwnerID == ownerID {
			delete(r.byID, id)
		}
	}
	return nil
}

func (r *stubSoundRepo) PushCommentID(_ context.Context, soundID, commentID string) error {
	if r.pushErr != nil {
		return r.pushErr
	}
	s, ok := r.byID[soundID]
	if !ok {
		return domain.ErrSoundNotFound
	}
	s.CommentIDs = append(s.CommentIDs, commentID)
	return nil
}

func (r *stubSoundRepo) PullCommentID(_ context.Context, soundID, commentID string) error {
	s, ok := r.byID[soundID]
	if !ok {
		return domain.ErrSoundNotFound
	}
	kept := s.CommentIDs[:0]
	for _, id := range s.CommentIDs {
		if id != commentID {
			kept = append(kept, id)
		}
	}
	s.CommentIDs = kept
	return nil
}

type stubCommentRepo struct {
	byID   map[string]*domain.Comment
	nextID int
}

func newStubCommentRepo() *stubCommentRepo {
	return &stubCommentRepo{byID: make(map[string]*domain.Comment)}
}

func (r *stubCommentRepo) add(c *domain.Comment) *domain.Comment {
	if c.ID == "" {
		r.nextID++
		c.ID = fmt.Sprintf("comment_%d", r.nextID)
	}
	clone := *c
	r.byID[c.ID] = &clone
	return c
}

func (r *stubCommentRepo) Create(_ context.Context, c *domain.Comment) (*domain.Comment, error) {
	return r.add(c), nil
}

func (r *stubCommentRepo) FindByID(_ context.Context, id string) (*domain.Comment, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCommentRepo) List(_ context.Context, filter ports.ListCommentsFilter) ([]*domain.Comment, error) {
	var matched []*domain.Comment
	for _, c := range r.byID {
		if filter.SoundID != "" && c.SoundID != filter.SoundID {
			continue
		}
		if filter.AuthorID != "" && c.AuthorID != filter.AuthorID {
			continue
		}
		clone := *c
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	if filter.Offset > len(matched) {
		return nil, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func (r *stubCommentRepo) UpdateText(_ context.Context, id, text string) error {
	c, ok := r.byID[id]
	if !ok {
		return domain.ErrCommentNotFound
	}
	c.Text = text
	return nil
}

func (r *stubCommentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrCommentNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubCommentRepo) DeleteBySound(_ context.Context, soundID string) error {
	for id, c := range r.byID {
		if c.SoundID == soundID {
			delete(r.byID, id)
		}
	}
	return nil
}

func (r *stubCommentRepo) DeleteByAuthor(_ context.Context, authorID string) error {
	for id, c := range r.byID {
		if c.AuthorID == authorID {
			delete(r.byID, id)
		}
	}
	return nil
}

func (r *stubCommentRepo) DeleteBySounds(_ context.Context, soundIDs []string) error {
	for id, c := range r.byID {
		for _, sid := range soundIDs {
			if c.SoundID == sid {
				delete(r.byID, id)
				break
			}
		}
	}
	return nil
}

type stubCategoryRepo struct {
	byID   map[string]*domain.Category
	nextID int
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{byID: make(map[string]*domain.Category)}
}

func (r *stubCategoryRepo) add(c *domain.Category) *domain.Category {
	if c.ID == "" {
		r.nextID++
		c.ID = fmt.Sprintf("category_%d", r.nextID)
	}
	clone := *c
	r.byID[c.ID] = &clone
	return c
}

func (r *stubCategoryRepo) Create(_ context.Context, c *domain.Category) (*domain.Category, error) {
	for _, existing := range r.byID {
		if existing.Name == c.Name {
			return nil, domain.BadRequest("Category already exists")
		}
	}
	return r.add(c), nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id string) (*domain.Category, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCategoryRepo) FindByName(_ context.Context, name string) (*domain.Category, error) {
	for _, c := range r.byID {
		if strings.EqualFold(c.Name, name) {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func (r *stubCategoryRepo) List(_ context.Context) ([]*domain.Category, error) {
	categories := make([]*domain.Category, 0, len(r.byID))
	for _, c := range r.byID {
		clone := *c
		categories = append(categories, &clone)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (r *stubCategoryRepo) DeleteByName(_ context.Context, name string) (*domain.Category, error) {
	for id, c := range r.byID {
		if strings.EqualFold(c.Name, name) {
			clone := *c
			delete(r.byID, id)
			return &clone, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

// stubNotifier records every push so tests can assert on delivery.
type stubNotifier struct {
	pushes []stubPush
}

type stubPush struct {
	userID  string
	message string
	code    int
}

func (n *stubNotifier) Push(userID, message string, code int) {
	n.pushes = append(n.pushes, stubPush{userID: userID, message: message, code: code})
}
