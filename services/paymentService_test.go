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

func newPaymentService(db *gorm.DB) *PaymentService {
	c := cache.New(nil)
	return NewPaymentService(
		repositories.NewPaymentRepository(db),
		repositories.NewUserRepository(db, c),
	)
}

func TestPaymentCreateStartsPendingWithCode(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newPaymentService(db)
	ctx := context.Background()

	user := seedUser(t, db, "Head", "head@example.com", models.RoleHeadOfFamily)

	payment := models.Payment{
		UserID:      user.ID,
		PackageType: models.PackagePremium,
		Amount:      49.99,
		Status:      models.PaymentCompleted, // client-supplied status is ignored
	}
	if err := svc.Create(ctx, &payment); err != nil {
		t.Fatalf("create: %v", err)
	}
	if payment.Status != models.PaymentPending {
		t.Fatalf("expected status Pending got %s", payment.Status)
	}
	if payment.TransactionCode == "" {
		t.Fatal("expected a generated transaction code")
	}
}

func TestPaymentCreateRequiresExistingUser(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newPaymentService(db)
	ctx := context.Background()

	payment := models.Payment{
		UserID:      9999,
		PackageType: models.PackageBasic,
		Amount:      9.99,
	}
	if err := svc.Create(ctx, &payment); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound got %v", err)
	}
}

func TestHandleProviderResult(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newPaymentService(db)
	ctx := context.Background()

	user := seedUser(t, db, "Head", "head@example.com", models.RoleHeadOfFamily)
	payment := models.Payment{
		UserID:      user.ID,
		PackageType: models.PackageFamily,
		Amount:      99.00,
	}
	if err := svc.Create(ctx, &payment); err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.HandleProviderResult(ctx, payment.TransactionCode, models.PaymentCompleted)
	if err != nil {
		t.Fatalf("provider result: %v", err)
	}
	if updated.Status != models.PaymentCompleted {
		t.Fatalf("expected status Completed got %s", updated.Status)
	}

	got, err := svc.GetByID(ctx, payment.ID, user.ID, models.RoleHeadOfFamily)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != models.PaymentCompleted {
		t.Fatalf("expected persisted status Completed got %s", got.Status)
	}

	other := seedUser(t, db, "Other", "other@example.com", models.RoleHeadOfFamily)
	if _, err := svc.GetByID(ctx, payment.ID, other.ID, models.RoleHeadOfFamily); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for another user's payment got %v", err)
	}

	if _, err := svc.HandleProviderResult(ctx, "no-such-code", models.PaymentFailed); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound got %v", err)
	}
}
