package services

import (
	"context"
	"errors"
	"testing"

	"github.com/pixalara/placement-service/internal/models"
	"github.com/pixalara/placement-service/internal/validator"
)

func newSettingsFixture(repo *stubRepository) (SettingsService, *fakeProvider) {
	provider := newFakeProvider()
	return NewSettingsService(repo, provider, validator.New(), testLogger()), provider
}

func TestSettingsService_CreateAdmin(t *testing.T) {
	repo := fullStubRepository()
	service, provider := newSettingsFixture(repo)
	ctx := context.Background()

	t.Run("provisions a fresh account", func(t *testing.T) {
		admin, err := service.CreateAdmin(ctx, &CreateAdminRequest{
			Name:     "Priya",
			Email:    "priya@example.com",
			Password: "secret123",
		})
		if err != nil {
			t.Fatalf("CreateAdmin() error = %v", err)
		}
		if _, ok := provider.principals[admin.UID]; !ok {
			t.Error("expected a provider account for the new admin")
		}
	})

	t.Run("promotes an existing account in place", func(t *testing.T) {
		repo.directory.(*fakeDirectoryRepo).users["u-mentor"] = &models.DirectoryUser{
			UID:   "u-mentor",
			Email: "meera@example.com",
		}

		admin, err := service.CreateAdmin(ctx, &CreateAdminRequest{
			Name:     "Meera",
			Email:    "meera@example.com",
			Password: "ignored-pass",
		})
		if err != nil {
			t.Fatalf("CreateAdmin() error = %v", err)
		}
		if admin.UID != "u-mentor" {
			t.Errorf("admin uid = %s, want the existing account u-mentor", admin.UID)
		}
	})

	t.Run("rejects a second admin record for the same account", func(t *testing.T) {
		_, err := service.CreateAdmin(ctx, &CreateAdminRequest{
			Name:     "Meera",
			Email:    "meera@example.com",
			Password: "secret123",
		})
		if !errors.Is(err, ErrRoleAlreadyAssigned) {
			t.Errorf("CreateAdmin() error = %v, want ErrRoleAlreadyAssigned", err)
		}
	})
}

func TestSettingsService_RemoveAdmin(t *testing.T) {
	repo := fullStubRepository()
	repo.admin = newFakeAdminRepo(
		&models.Admin{UID: "a1", Email: "a1@example.com"},
		&models.Admin{UID: "a2", Email: "a2@example.com"},
	)
	service, _ := newSettingsFixture(repo)
	ctx := context.Background()

	actor := Actor{UID: "a1", Role: models.RoleAdmin}

	if err := service.RemoveAdmin(ctx, actor, "a1"); !errors.Is(err, ErrForbidden) {
		t.Errorf("self-removal error = %v, want ErrForbidden", err)
	}

	if err := service.RemoveAdmin(ctx, actor, "a2"); err != nil {
		t.Fatalf("RemoveAdmin() error = %v", err)
	}

	if err := service.RemoveAdmin(ctx, actor, "a2"); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("removing a missing admin error = %v, want ErrProfileNotFound", err)
	}
}

func TestSettingsService_UpdateProfile(t *testing.T) {
	repo := fullStubRepository()
	repo.admin = newFakeAdminRepo(
		&models.Admin{UID: "a1", Name: "Asha", Email: "asha@example.com", Phone: "111"},
	)
	service, _ := newSettingsFixture(repo)
	ctx := context.Background()

	t.Run("merges only the provided fields", func(t *testing.T) {
		phone := "999"
		admin, err := service.UpdateProfile(ctx, "a1", &UpdateAdminProfileRequest{Phone: &phone})
		if err != nil {
			t.Fatalf("UpdateProfile() error = %v", err)
		}
		if admin.Phone != "999" {
			t.Errorf("phone = %s, want 999", admin.Phone)
		}
		if admin.Name != "Asha" {
			t.Errorf("name = %s, want the original Asha", admin.Name)
		}
	})

	t.Run("unknown admin", func(t *testing.T) {
		name := "Nobody"
		_, err := service.UpdateProfile(ctx, "missing", &UpdateAdminProfileRequest{Name: &name})
		if !errors.Is(err, ErrProfileNotFound) {
			t.Errorf("UpdateProfile() error = %v, want ErrProfileNotFound", err)
		}
	})
}
