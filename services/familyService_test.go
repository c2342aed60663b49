package services

import (
	"FamCare/cache"
	"FamCare/models"
	"FamCare/repositories"
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"
)

func seedAssignment(t *testing.T, db *gorm.DB, doctorID int64, familyID uint) *models.DoctorAssignment {
	assignment := models.DoctorAssignment{
		DoctorID:  doctorID,
		FamilyID:  familyID,
		Status:    models.AssignmentActive,
		StartDate: time.Now(),
	}
	if err := db.Create(&assignment).Error; err != nil {
		t.Fatalf("seed assignment: %v", err)
	}
	return &assignment
}

func newFamilyService(db *gorm.DB) *FamilyService {
	c := cache.New(nil)
	return NewFamilyService(
		repositories.NewFamilyRepository(db, c),
		repositories.NewUserRepository(db, c),
		repositories.NewDoctorRepository(db),
	)
}

func TestFamilyCreateRequiresHeadRole(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newFamilyService(db)
	ctx := context.Background()

	doctor := seedUser(t, db, "Doc", "doc@example.com", models.RoleDoctor)
	family := models.Family{Name: "Smith", HeadID: doctor.ID}
	if err := svc.Create(ctx, &family); err == nil {
		t.Fatal("expected error for non-head user")
	}

	missing := models.Family{Name: "Ghost", HeadID: 9999}
	if err := svc.Create(ctx, &missing); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound got %v", err)
	}
}

func TestFamilyCreateOnePerHead(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newFamilyService(db)
	ctx := context.Background()

	head := seedUser(t, db, "Head", "head@example.com", models.RoleHeadOfFamily)

	first := models.Family{Name: "Smith", HeadID: head.ID}
	if err := svc.Create(ctx, &first); err != nil {
		t.Fatalf("create: %v", err)
	}

	second := models.Family{Name: "Smith II", HeadID: head.ID}
	if err := svc.Create(ctx, &second); err == nil {
		t.Fatal("expected error when head already has a family")
	}
}

func TestFamilyGetByIDLoadsMembers(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newFamilyService(db)
	ctx := context.Background()

	head := seedUser(t, db, "Head", "head@example.com", models.RoleHeadOfFamily)
	family := seedFamily(t, db, "Smith", head.ID)
	seedMember(t, db, family.ID, "Alice")
	seedMember(t, db, family.ID, "Bob")

	got, err := svc.GetByID(ctx, family.ID, head.ID, models.RoleHeadOfFamily)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.MemberCount() != 2 {
		t.Fatalf("expected member count 2 got %d", got.MemberCount())
	}

	head2 := seedUser(t, db, "Head2", "head2@example.com", models.RoleHeadOfFamily)
	empty := seedFamily(t, db, "Jones", head2.ID)
	got, err = svc.GetByID(ctx, empty.ID, head2.ID, models.RoleHeadOfFamily)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.MemberCount() != 0 {
		t.Fatalf("expected member count 0 got %d", got.MemberCount())
	}
}

func TestFamilyGetByIDReadAuthorization(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newFamilyService(db)
	ctx := context.Background()

	head := seedUser(t, db, "Head", "head@example.com", models.RoleHeadOfFamily)
	stranger := seedUser(t, db, "Stranger", "stranger@example.com", models.RoleHeadOfFamily)
	doctor := seedUser(t, db, "Doc", "doc@example.com", models.RoleDoctor)
	outsiderDoc := seedUser(t, db, "OtherDoc", "otherdoc@example.com", models.RoleDoctor)
	family := seedFamily(t, db, "Smith", head.ID)
	seedAssignment(t, db, doctor.ID, family.ID)

	if _, err := svc.GetByID(ctx, family.ID, stranger.ID, models.RoleHeadOfFamily); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for unrelated head got %v", err)
	}
	if _, err := svc.GetByID(ctx, family.ID, outsiderDoc.ID, models.RoleDoctor); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for unassigned doctor got %v", err)
	}
	if _, err := svc.GetByID(ctx, family.ID, doctor.ID, models.RoleDoctor); err != nil {
		t.Fatalf("assigned doctor read: %v", err)
	}
	if _, err := svc.GetByID(ctx, family.ID, 0, models.RoleAdmin); err != nil {
		t.Fatalf("admin read: %v", err)
	}
}

func TestFamilyUpdateAuthorization(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newFamilyService(db)
	ctx := context.Background()

	head := seedUser(t, db, "Head", "head@example.com", models.RoleHeadOfFamily)
	stranger := seedUser(t, db, "Stranger", "stranger@example.com", models.RoleHeadOfFamily)
	family := seedFamily(t, db, "Smith", head.ID)

	family.Name = "Smith-Jones"
	if err := svc.Update(ctx, family, stranger.ID, models.RoleHeadOfFamily); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden got %v", err)
	}
	if err := svc.Update(ctx, family, head.ID, models.RoleHeadOfFamily); err != nil {
		t.Fatalf("head update: %v", err)
	}
	if err := svc.Delete(ctx, family.ID, models.RoleHeadOfFamily); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin delete got %v", err)
	}
	if err := svc.Delete(ctx, family.ID, models.RoleAdmin); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
}
