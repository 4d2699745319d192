package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sonsdetaville/sounds-api/internal/core/domain"
	"github.com/sonsdetaville/sounds-api/internal/core/ports"
)

type userFixture struct {
	users    *stubUserRepo
	sounds   *stubSoundRepo
	comments *stubCommentRepo
	svc      *UserService
}

func newUserFixture() *userFixture {
	f := &userFixture{
		users:    newStubUserRepo(),
		sounds:   newStubSoundRepo(),
		comments: newStubCommentRepo(),
	}
	f.svc = NewUserService(f.users, f.sounds, f.comments, discardLogger)
	return f
}

func validRegistration() ports.RegisterInput {
	return ports.RegisterInput{Username: "jules", Email: "jules@x.com", Password: "Test1234"}
}

func TestUserService_Register_Success(t *testing.T) {
	f := newUserFixture()

	user, err := f.svc.Register(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.ID == "" {
		t.Error("expected a generated id")
	}
	if user.PasswordHash == "Test1234" {
		t.Error("password must be hashed before storage")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Test1234")) != nil {
		t.Error("stored hash does not verify against the original password")
	}
	if user.Admin {
		t.Error("new accounts must not be admins")
	}
}

func TestUserService_Register_Validation(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*ports.RegisterInput)
		wantMsg string
	}{
		{"username too short", func(in *ports.RegisterInput) { in.Username = "j" }, "Username is too short"},
		{"username too long", func(in *ports.RegisterInput) { in.Username = "abcdefghijklmnopqrstu" }, "Username is too long"},
		{"bad email", func(in *ports.RegisterInput) { in.Email = "not-an-email" }, "Invalid email"},
		{"short password", func(in *ports.RegisterInput) { in.Password = "short" }, "Password is too short"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newUserFixture()
			in := validRegistration()
			tc.mutate(&in)

			_, err := f.svc.Register(context.Background(), in)
			if err == nil || err.Error() != tc.wantMsg {
				t.Fatalf("expected %q, got %v", tc.wantMsg, err)
			}
			if len(f.users.byID) != 0 {
				t.Error("invalid registration must not be persisted")
			}
		})
	}
}

func TestUserService_Register_DuplicateUsername(t *testing.T) {
	f := newUserFixture()

	if _, err := f.svc.Register(context.Background(), validRegistration()); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	_, err := f.svc.Register(context.Background(), validRegistration())
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserService_Update_UsernameImmutable(t *testing.T) {
	f := newUserFixture()
	user := f.users.add(&domain.User{Username: "jules", Email: "jules@x.com"})
	actor := ports.Actor{ID: user.ID, Role: domain.RoleUser}

	_, err := f.svc.UpdateUser(context.Background(), actor, "jules", ports.UpdateUserInput{Username: "newname"})
	if err == nil || err.Error() != "Username cannot be modified" {
		t.Fatalf("expected immutable username error, got %v", err)
	}
}

func TestUserService_Update_SelfOrAdminOnly(t *testing.T) {
	f := newUserFixture()
	f.users.add(&domain.User{Username: "jules", Email: "jules@x.com"})
	stranger := f.users.add(&domain.User{Username: "mallory", Email: "m@x.com"})

	_, err := f.svc.UpdateUser(context.Background(), ports.Actor{ID: stranger.ID, Role: domain.RoleUser}, "jules", ports.UpdateUserInput{Email: "new@x.com"})
	if err == nil || err.Error() != "You are not authorized to update this user" {
		t.Fatalf("expected authorization error, got %v", err)
	}

	updated, err := f.svc.UpdateUser(context.Background(), ports.Actor{ID: stranger.ID, Role: domain.RoleAdmin}, "jules", ports.UpdateUserInput{Email: "new@x.com"})
	if err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
	if updated.Email != "new@x.com" {
		t.Errorf("expected updated email, got %q", updated.Email)
	}
}

func TestUserService_Update_ShortPasswordRejected(t *testing.T) {
	f := newUserFixture()
	user := f.users.add(&domain.User{Username: "jules", Email: "jules@x.com", PasswordHash: "old"})
	actor := ports.Actor{ID: user.ID, Role: domain.RoleUser}

	_, err := f.svc.UpdateUser(context.Background(), actor, "jules", ports.UpdateUserInput{Password: "short"})
	if err == nil || err.Error() != "Password is too short" {
		t.Fatalf("expected short password error, got %v", err)
	}
	if got := f.users.byID[user.ID].PasswordHash; got != "old" {
		t.Error("password hash was modified on rejected update")
	}
}

func TestUserService_Update_MissingUserBeatsAuthorization(t *testing.T) {
	f := newUserFixture()

	_, err := f.svc.UpdateUser(context.Background(), ports.Actor{ID: "nobody", Role: domain.RoleUser}, "ghost", ports.UpdateUserInput{})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected User not found, got %v", err)
	}
}

func TestUserService_Delete_Cascade(t *testing.T) {
	f := newUserFixture()
	target := f.users.add(&domain.User{Username: "jules", Email: "jules@x.com"})
	other := f.users.add(&domain.User{Username: "ada", Email: "ada@x.com"})

	// Two sounds owned by the target, one by someone else.
	s1 := f.sounds.add(&domain.Sound{OwnerID: target.ID, CreatedAt: time.Now()})
	s2 := f.sounds.add(&domain.Sound{OwnerID: target.ID, CreatedAt: time.Now()})
	kept := f.sounds.add(&domain.Sound{OwnerID: other.ID, CreatedAt: time.Now()})

	// Comments: authored by the target elsewhere, by others on the target's
	// sounds, and one fully unrelated.
	f.comments.add(&domain.Comment{SoundID: kept.ID, AuthorID: target.ID, Text: "by target"})
	f.comments.add(&domain.Comment{SoundID: s1.ID, AuthorID: other.ID, Text: "on target sound"})
	f.comments.add(&domain.Comment{SoundID: s2.ID, AuthorID: other.ID, Text: "on target sound"})
	unrelated := f.comments.add(&domain.Comment{SoundID: kept.ID, AuthorID: other.ID, Text: "unrelated"})

	err := f.svc.DeleteUser(context.Background(), ports.Actor{ID: target.ID, Role: domain.RoleUser}, "jules")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := f.users.byID[target.ID]; ok {
		t.Error("user still present after delete")
	}
	if _, ok := f.sounds.byID[s1.ID]; ok {
		t.Error("target's sound s1 still present")
	}
	if _, ok := f.sounds.byID[s2.ID]; ok {
		t.Error("target's sound s2 still present")
	}
	if _, ok := f.sounds.byID[kept.ID]; !ok {
		t.Error("another user's sound was removed")
	}

	if len(f.comments.byID) != 1 {
		t.Fatalf("expected only the unrelated comment to remain, got %d", len(f.comments.byID))
	}
	if _, ok := f.comments.byID[unrelated.ID]; !ok {
		t.Error("unrelated comment was removed")
	}
}

func TestUserService_Delete_SelfOrAdminOnly(t *testing.T) {
	f := newUserFixture()
	f.users.add(&domain.User{Username: "jules", Email: "jules@x.com"})
	stranger := f.users.add(&domain.User{Username: "mallory", Email: "m@x.com"})

	err := f.svc.DeleteUser(context.Background(), ports.Actor{ID: stranger.ID, Role: domain.RoleUser}, "jules")
	if err == nil || err.Error() != "You are not authorized to delete this user" {
		t.Fatalf("expected authorization error, got %v", err)
	}
}
