package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/sonsdetaville/sounds-api/internal/core/domain"
)

const testSecret = "test-secret"

func addCredentialedUser(t *testing.T, repo *stubUserRepo, password string, admin bool) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return repo.add(&domain.User{
		Username:     "jules",
		Email:        "jules@x.com",
		PasswordHash: string(hash),
		Admin:        admin,
	})
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	user := addCredentialedUser(t, repo, "Test1234", false)
	svc := NewAuthService(repo, testSecret, 0, discardLogger)

	token, err := svc.Login(context.Background(), "jules@x.com", "Test1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}

	if claims["sub"] != user.ID {
		t.Errorf("expected sub %q, got %v", user.ID, claims["sub"])
	}
	if claims["scope"] != domain.RoleUser {
		t.Errorf("expected scope %q, got %v", domain.RoleUser, claims["scope"])
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		t.Fatal("missing exp claim")
	}
	want := time.Now().Add(7 * 24 * time.Hour).Unix()
	if delta := int64(exp) - want; delta < -60 || delta > 60 {
		t.Errorf("expected ~7 day expiry, off by %d seconds", delta)
	}
}

func TestAuthService_Login_AdminScope(t *testing.T) {
	repo := newStubUserRepo()
	addCredentialedUser(t, repo, "Test1234", true)
	svc := NewAuthService(repo, testSecret, 0, discardLogger)

	token, err := svc.Login(context.Background(), "jules@x.com", "Test1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims["scope"] != domain.RoleAdmin {
		t.Errorf("expected admin scope, got %v", claims["scope"])
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	addCredentialedUser(t, repo, "Test1234", false)
	svc := NewAuthService(repo, testSecret, 0, discardLogger)

	_, err := svc.Login(context.Background(), "jules@x.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmailIndistinguishable(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, testSecret, 0, discardLogger)

	_, err := svc.Login(context.Background(), "nobody@x.com", "whatever")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestAuthService_Login_EmptyInput(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, testSecret, 0, discardLogger)

	for _, pair := range [][2]string{{"", "pass"}, {"a@b.c", ""}, {"", ""}} {
		if _, err := svc.Login(context.Background(), pair[0], pair[1]); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("email=%q password=%q: expected invalid credentials, got %v", pair[0], pair[1], err)
		}
	}
}
