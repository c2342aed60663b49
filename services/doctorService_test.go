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

func newDoctorService(db *gorm.DB) *DoctorService {
	c := cache.New(nil)
	return NewDoctorService(
		repositories.NewDoctorRepository(db),
		repositories.NewFamilyRepository(db, c),
		repositories.NewUserRepository(db, c),
	)
}

func seedRequest(t *testing.T, db *gorm.DB, doctorID int64, familyID uint) *models.DoctorRequest {
	request := models.DoctorRequest{
		DoctorID:    doctorID,
		FamilyID:    familyID,
		Message:     "I would like to care for your family",
		Status:      models.RequestPending,
		RequestDate: time.Now(),
	}
	if err := db.Create(&request).Error; err != nil {
		t.Fatalf("seed request: %v", err)
	}
	return &request
}

func TestRespondToRequestAcceptCreatesAssignment(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newDoctorService(db)
	ctx := context.Background()

	head := seedUser(t, db, "Head", "head@example.com", models.RoleHeadOfFamily)
	doctor := seedUser(t, db, "Doc", "doc@example.com", models.RoleDoctor)
	family := seedFamily(t, db, "Smith", head.ID)
	request := seedRequest(t, db, doctor.ID, family.ID)

	responseDate := time.Date(2026, 8, 30, 14, 30, 0, 0, time.UTC)
	updated, err := svc.RespondToRequest(ctx, request.ID, models.RequestAccepted, "Welcome aboard", responseDate, head.ID, models.RoleHeadOfFamily)
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if updated.Status != models.RequestAccepted {
		t.Fatalf("expected status ACCEPTED got %s", updated.Status)
	}
	if updated.ResponseMessage != "Welcome aboard" {
		t.Fatalf("expected response message persisted, got %q", updated.ResponseMessage)
	}
	if updated.ResponseDate == nil || !updated.ResponseDate.Equal(responseDate) {
		t.Fatalf("expected response date %v got %v", responseDate, updated.ResponseDate)
	}

	active, err := svc.HasActiveAssignment(ctx, doctor.ID, family.ID)
	if err != nil {
		t.Fatalf("has active assignment: %v", err)
	}
	if !active {
		t.Fatal("expected an active assignment after acceptance")
	}
}

func TestRespondToRequestRejectLeavesNoAssignment(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newDoctorService(db)
	ctx := context.Background()

	head := seedUser(t, db, "Head", "head@example.com", models.RoleHeadOfFamily)
	doctor := seedUser(t, db, "Doc", "doc@example.com", models.RoleDoctor)
	family := seedFamily(t, db, "Smith", head.ID)
	request := seedRequest(t, db, doctor.ID, family.ID)

	updated, err := svc.RespondToRequest(ctx, request.ID, models.RequestRejected, "Not at this time", time.Now(), head.ID, models.RoleHeadOfFamily)
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if updated.Status != models.RequestRejected {
		t.Fatalf("expected status REJECTED got %s", updated.Status)
	}

	active, err := svc.HasActiveAssignment(ctx, doctor.ID, family.ID)
	if err != nil {
		t.Fatalf("has active assignment: %v", err)
	}
	if active {
		t.Fatal("expected no assignment after rejection")
	}
}

func TestRespondToRequestIsTerminal(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newDoctorService(db)
	ctx := context.Background()

	head := seedUser(t, db, "Head", "head@example.com", models.RoleHeadOfFamily)
	doctor := seedUser(t, db, "Doc", "doc@example.com", models.RoleDoctor)
	family := seedFamily(t, db, "Smith", head.ID)
	request := seedRequest(t, db, doctor.ID, family.ID)

	if _, err := svc.RespondToRequest(ctx, request.ID, models.RequestRejected, "", time.Now(), head.ID, models.RoleHeadOfFamily); err != nil {
		t.Fatalf("first respond: %v", err)
	}
	_, err := svc.RespondToRequest(ctx, request.ID, models.RequestAccepted, "", time.Now(), head.ID, models.RoleHeadOfFamily)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition got %v", err)
	}
}

func TestRespondToRequestOnlyFamilyHead(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newDoctorService(db)
	ctx := context.Background()

	head := seedUser(t, db, "Head", "head@example.com", models.RoleHeadOfFamily)
	doctor := seedUser(t, db, "Doc", "doc@example.com", models.RoleDoctor)
	stranger := seedUser(t, db, "Stranger", "stranger@example.com", models.RoleHeadOfFamily)
	family := seedFamily(t, db, "Smith", head.ID)
	request := seedRequest(t, db, doctor.ID, family.ID)

	_, err := svc.RespondToRequest(ctx, request.ID, models.RequestAccepted, "", time.Now(), stranger.ID, models.RoleHeadOfFamily)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden got %v", err)
	}
}

func TestDeactivateAssignment(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newDoctorService(db)
	ctx := context.Background()

	head := seedUser(t, db, "Head", "head@example.com", models.RoleHeadOfFamily)
	doctor := seedUser(t, db, "Doc", "doc@example.com", models.RoleDoctor)
	family := seedFamily(t, db, "Smith", head.ID)

	assignment := models.DoctorAssignment{
		DoctorID:  doctor.ID,
		FamilyID:  family.ID,
		Status:    models.AssignmentActive,
		StartDate: time.Now(),
	}
	if err := db.Create(&assignment).Error; err != nil {
		t.Fatalf("seed assignment: %v", err)
	}

	if err := svc.DeactivateAssignment(ctx, assignment.ID, doctor.ID, models.RoleDoctor); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	active, err := svc.HasActiveAssignment(ctx, doctor.ID, family.ID)
	if err != nil {
		t.Fatalf("has active assignment: %v", err)
	}
	if active {
		t.Fatal("expected assignment inactive")
	}
}

func TestFamilyRequestAndAssignmentListsRestricted(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newDoctorService(db)
	ctx := context.Background()

	head := seedUser(t, db, "Head", "head@example.com", models.RoleHeadOfFamily)
	stranger := seedUser(t, db, "Stranger", "stranger@example.com", models.RoleHeadOfFamily)
	doctor := seedUser(t, db, "Doc", "doc@example.com", models.RoleDoctor)
	outsiderDoc := seedUser(t, db, "OtherDoc", "otherdoc@example.com", models.RoleDoctor)
	family := seedFamily(t, db, "Smith", head.ID)
	seedRequest(t, db, doctor.ID, family.ID)
	seedAssignment(t, db, doctor.ID, family.ID)

	if _, err := svc.GetRequestsByFamily(ctx, family.ID, "", stranger.ID, models.RoleHeadOfFamily); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for unrelated head got %v", err)
	}
	if _, err := svc.GetRequestsByFamily(ctx, family.ID, "", doctor.ID, models.RoleDoctor); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for doctor reading requests got %v", err)
	}
	requests, err := svc.GetRequestsByFamily(ctx, family.ID, "", head.ID, models.RoleHeadOfFamily)
	if err != nil {
		t.Fatalf("head request listing: %v", err)
	}
	if len(requests) != 1 {
		t.Fatalf("expected 1 request got %d", len(requests))
	}

	if _, err := svc.GetAssignmentsByFamily(ctx, family.ID, outsiderDoc.ID, models.RoleDoctor); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for unassigned doctor got %v", err)
	}
	assignments, err := svc.GetAssignmentsByFamily(ctx, family.ID, doctor.ID, models.RoleDoctor)
	if err != nil {
		t.Fatalf("assigned doctor listing: %v", err)
	}
	if len(assignments) != 1 {
		t.Fatalf("expected 1 assignment got %d", len(assignments))
	}
}
