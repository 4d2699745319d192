package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sonsdetaville/sounds-api/internal/core/domain"
	"github.com/sonsdetaville/sounds-api/internal/core/ports"
)

var (
	adminActor = ports.Actor{ID: "admin_1", Role: domain.RoleAdmin}
	plainActor = ports.Actor{ID: "user_1", Role: domain.RoleUser}
)

func TestCategoryService_Create_AdminOnly(t *testing.T) {
	repo := newStubCategoryRepo()
	svc := NewCategoryService(repo, discardLogger)

	_, err := svc.CreateCategory(context.Background(), plainActor, "Nature", "#00ff00")
	if err == nil || err.Error() != "Unauthorized" {
		t.Fatalf("expected Unauthorized for non-admin, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Error("category must not be persisted on rejection")
	}

	created, err := svc.CreateCategory(context.Background(), adminActor, "Nature", "#00ff00")
	if err != nil {
		t.Fatalf("admin create failed: %v", err)
	}
	if created.ID == "" || created.Name != "Nature" {
		t.Errorf("unexpected category: %+v", created)
	}
}

func TestCategoryService_Create_NameRequired(t *testing.T) {
	svc := NewCategoryService(newStubCategoryRepo(), discardLogger)

	_, err := svc.CreateCategory(context.Background(), adminActor, "", "#fff")
	if err == nil || err.Error() != "Category name is required" {
		t.Fatalf("expected name required error, got %v", err)
	}
}

func TestCategoryService_Delete_AdminOnly(t *testing.T) {
	repo := newStubCategoryRepo()
	repo.add(&domain.Category{Name: "Nature"})
	svc := NewCategoryService(repo, discardLogger)

	_, err := svc.DeleteCategory(context.Background(), plainActor, "Nature")
	if err == nil || err.Error() != "Unauthorized" {
		t.Fatalf("expected Unauthorized for non-admin, got %v", err)
	}

	deleted, err := svc.DeleteCategory(context.Background(), adminActor, "Nature")
	if err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
	if deleted.Name != "Nature" {
		t.Errorf("expected the deleted category back, got %+v", deleted)
	}
	if len(repo.byID) != 0 {
		t.Error("category still present after delete")
	}
}

func TestCategoryService_Delete_Unknown(t *testing.T) {
	svc := NewCategoryService(newStubCategoryRepo(), discardLogger)

	_, err := svc.DeleteCategory(context.Background(), adminActor, "ghost")
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected Category not found, got %v", err)
	}
}

func TestCategoryService_Get(t *testing.T) {
	repo := newStubCategoryRepo()
	repo.add(&domain.Category{Name: "Traffic", Color: "#ff0000"})
	svc := NewCategoryService(repo, discardLogger)

	cat, err := svc.GetCategory(context.Background(), "Traffic")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cat.Color != "#ff0000" {
		t.Errorf("unexpected category: %+v", cat)
	}

	if _, err := svc.GetCategory(context.Background(), "ghost"); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected Category not found, got %v", err)
	}
}
