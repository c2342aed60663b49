package services

import (
	"FamCare/cache"
	"FamCare/models"
	"FamCare/repositories"
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"
)

func newUserService(db *gorm.DB) UserService {
	return NewUserService(repositories.NewUserRepository(db, cache.New(nil)))
}

func TestRegisterAndAuthenticate(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newUserService(db)
	ctx := context.Background()

	user := models.User{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Password: "Str0ng@Pass",
		Role:     models.RoleHeadOfFamily,
	}
	if err := svc.ValidateAndCreateUser(ctx, &user); err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Password == "Str0ng@Pass" {
		t.Fatal("expected password to be hashed before storage")
	}

	got, err := svc.AuthenticateUser(ctx, "jane@example.com", "Str0ng@Pass")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.Email != "jane@example.com" {
		t.Fatalf("expected jane@example.com got %s", got.Email)
	}

	if _, err := svc.AuthenticateUser(ctx, "jane@example.com", "wrong-password"); err == nil {
		t.Fatal("expected wrong password to be rejected")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newUserService(db)
	ctx := context.Background()

	first := models.User{Name: "Jane Doe", Email: "jane@example.com", Password: "Str0ng@Pass", Role: models.RoleHeadOfFamily}
	if err := svc.ValidateAndCreateUser(ctx, &first); err != nil {
		t.Fatalf("register: %v", err)
	}

	second := models.User{Name: "Other Jane", Email: "jane@example.com", Password: "Str0ng@Pass", Role: models.RoleDoctor}
	if err := svc.ValidateAndCreateUser(ctx, &second); err == nil {
		t.Fatal("expected duplicate email to be rejected")
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newUserService(db)
	ctx := context.Background()

	user := models.User{Name: "Jane Doe", Email: "jane@example.com", Password: "short", Role: models.RoleHeadOfFamily}
	if err := svc.ValidateAndCreateUser(ctx, &user); err == nil {
		t.Fatal("expected weak password to be rejected")
	}
}

func TestAuthenticateRejectsLockedAccount(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newUserService(db)
	ctx := context.Background()

	user := models.User{Name: "Jane Doe", Email: "jane@example.com", Password: "Str0ng@Pass", Role: models.RoleHeadOfFamily}
	if err := svc.ValidateAndCreateUser(ctx, &user); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := svc.SetUserLocked(ctx, user.ID, true); err != nil {
		t.Fatalf("lock: %v", err)
	}

	if _, err := svc.AuthenticateUser(ctx, "jane@example.com", "Str0ng@Pass"); !errors.Is(err, ErrAccountLocked) {
		t.Fatalf("expected ErrAccountLocked got %v", err)
	}

	if err := svc.SetUserLocked(ctx, user.ID, false); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if _, err := svc.AuthenticateUser(ctx, "jane@example.com", "Str0ng@Pass"); err != nil {
		t.Fatalf("expected unlocked login to succeed: %v", err)
	}
}
