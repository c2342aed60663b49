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

func newRecordService(db *gorm.DB) *RecordService {
	c := cache.New(nil)
	return NewRecordService(
		repositories.NewRecordRepository(db),
		repositories.NewMemberRepository(db, c),
		repositories.NewFamilyRepository(db, c),
		repositories.NewDoctorRepository(db),
	)
}

func TestRecordReadsRestrictedToCareTeam(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newRecordService(db)
	ctx := context.Background()

	head := seedUser(t, db, "Head", "head@example.com", models.RoleHeadOfFamily)
	stranger := seedUser(t, db, "Stranger", "stranger@example.com", models.RoleHeadOfFamily)
	doctor := seedUser(t, db, "Doc", "doc@example.com", models.RoleDoctor)
	outsiderDoc := seedUser(t, db, "OtherDoc", "otherdoc@example.com", models.RoleDoctor)
	family := seedFamily(t, db, "Smith", head.ID)
	member := seedMember(t, db, family.ID, "Alice")
	seedAssignment(t, db, doctor.ID, family.ID)

	record := models.MedicalRecord{
		MemberID:  member.ID,
		Symptoms:  "Cough",
		Diagnosis: "Cold",
		TreatmentPlan: "Rest",
	}
	if err := svc.Create(ctx, &record, doctor.ID, models.RoleDoctor); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.GetByID(ctx, record.ID, stranger.ID, models.RoleHeadOfFamily); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for unrelated head got %v", err)
	}
	if _, err := svc.GetByMember(ctx, member.ID, stranger.ID, models.RoleHeadOfFamily); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for unrelated head listing got %v", err)
	}
	if _, err := svc.GetByMember(ctx, member.ID, outsiderDoc.ID, models.RoleDoctor); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for unassigned doctor got %v", err)
	}

	if _, err := svc.GetByID(ctx, record.ID, head.ID, models.RoleHeadOfFamily); err != nil {
		t.Fatalf("head read: %v", err)
	}
	records, err := svc.GetByMember(ctx, member.ID, doctor.ID, models.RoleDoctor)
	if err != nil {
		t.Fatalf("assigned doctor listing: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record got %d", len(records))
	}
	if _, err := svc.GetByMember(ctx, member.ID, 0, models.RoleAdmin); err != nil {
		t.Fatalf("admin listing: %v", err)
	}
}

func TestRecordGetByMemberUnknownMember(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newRecordService(db)
	ctx := context.Background()

	if _, err := svc.GetByMember(ctx, 9999, 0, models.RoleAdmin); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound got %v", err)
	}
}
