package services

import (
	"FamCare/cache"
	"FamCare/models"
	"FamCare/repositories"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Family{},
		&models.Member{},
		&models.DoctorAssignment{},
		&models.DoctorRequest{},
		&models.Appointment{},
		&models.MedicalRecord{},
		&models.Conversation{},
		&models.Message{},
		&models.MessageAttachment{},
		&models.Notification{},
		&models.Payment{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, email, role string) *models.User {
	user := models.User{Name: name, Email: email, Password: "hash", Role: role, Verified: true}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return &user
}

func seedFamily(t *testing.T, db *gorm.DB, name string, headID int64) *models.Family {
	family := models.Family{Name: name, HeadID: headID}
	if err := db.Create(&family).Error; err != nil {
		t.Fatalf("seed family: %v", err)
	}
	return &family
}

func seedMember(t *testing.T, db *gorm.DB, familyID uint, name string) *models.Member {
	member := models.Member{FamilyID: familyID, Name: name, DateOfBirth: "2010-04-12", Gender: "Female", Relationship: "Daughter"}
	if err := db.Create(&member).Error; err != nil {
		t.Fatalf("seed member: %v", err)
	}
	return &member
}

func newAppointmentService(db *gorm.DB) *AppointmentService {
	c := cache.New(nil)
	return NewAppointmentService(
		repositories.NewAppointmentRepository(db, c),
		repositories.NewFamilyRepository(db, c),
		repositories.NewMemberRepository(db, c),
		repositories.NewDoctorRepository(db),
	)
}

func TestAppointmentCreateDerivesEndTime(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newAppointmentService(db)
	ctx := context.Background()

	head := seedUser(t, db, "Head", "head@example.com", models.RoleHeadOfFamily)
	doctor := seedUser(t, db, "Doc", "doc@example.com", models.RoleDoctor)
	family := seedFamily(t, db, "Smith", head.ID)
	member := seedMember(t, db, family.ID, "Alice")

	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	appointment := models.Appointment{
		Title:           "Annual checkup",
		Type:            models.AppointmentCheckup,
		DoctorID:        doctor.ID,
		FamilyID:        family.ID,
		MemberID:        member.ID,
		StartTime:       start,
		DurationMinutes: 30,
	}
	if err := svc.Create(ctx, &appointment); err != nil {
		t.Fatalf("create: %v", err)
	}
	if !appointment.EndTime.Equal(start.Add(30 * time.Minute)) {
		t.Fatalf("expected end time %v got %v", start.Add(30*time.Minute), appointment.EndTime)
	}
	if appointment.Status != models.AppointmentScheduled {
		t.Fatalf("expected status SCHEDULED got %s", appointment.Status)
	}
}

func TestAppointmentCreateRejectsOverlap(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newAppointmentService(db)
	ctx := context.Background()

	head := seedUser(t, db, "Head", "head@example.com", models.RoleHeadOfFamily)
	doctor := seedUser(t, db, "Doc", "doc@example.com", models.RoleDoctor)
	family := seedFamily(t, db, "Smith", head.ID)
	member := seedMember(t, db, family.ID, "Alice")

	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	first := models.Appointment{
		Title:           "First",
		Type:            models.AppointmentCheckup,
		DoctorID:        doctor.ID,
		FamilyID:        family.ID,
		MemberID:        member.ID,
		StartTime:       start,
		DurationMinutes: 30,
	}
	if err := svc.Create(ctx, &first); err != nil {
		t.Fatalf("create first: %v", err)
	}

	overlapping := models.Appointment{
		Title:           "Second",
		Type:            models.AppointmentConsultation,
		DoctorID:        doctor.ID,
		FamilyID:        family.ID,
		MemberID:        member.ID,
		StartTime:       start.Add(15 * time.Minute),
		DurationMinutes: 30,
	}
	if err := svc.Create(ctx, &overlapping); !errors.Is(err, ErrOverlap) {
		t.Fatalf("expected ErrOverlap got %v", err)
	}

	// An appointment starting exactly when the first ends does not overlap.
	adjacent := models.Appointment{
		Title:           "Adjacent",
		Type:            models.AppointmentConsultation,
		DoctorID:        doctor.ID,
		FamilyID:        family.ID,
		MemberID:        member.ID,
		StartTime:       start.Add(30 * time.Minute),
		DurationMinutes: 30,
	}
	if err := svc.Create(ctx, &adjacent); err != nil {
		t.Fatalf("create adjacent: %v", err)
	}
}

func TestAppointmentCancelledDoesNotBlockBooking(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newAppointmentService(db)
	ctx := context.Background()

	head := seedUser(t, db, "Head", "head@example.com", models.RoleHeadOfFamily)
	doctor := seedUser(t, db, "Doc", "doc@example.com", models.RoleDoctor)
	family := seedFamily(t, db, "Smith", head.ID)
	member := seedMember(t, db, family.ID, "Alice")

	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	cancelled := models.Appointment{
		Title:           "Cancelled",
		Type:            models.AppointmentCheckup,
		DoctorID:        doctor.ID,
		FamilyID:        family.ID,
		MemberID:        member.ID,
		StartTime:       start,
		DurationMinutes: 30,
	}
	if err := svc.Create(ctx, &cancelled); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.UpdateStatus(ctx, cancelled.ID, models.AppointmentCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	rebooked := models.Appointment{
		Title:           "Rebooked",
		Type:            models.AppointmentCheckup,
		DoctorID:        doctor.ID,
		FamilyID:        family.ID,
		MemberID:        member.ID,
		StartTime:       start,
		DurationMinutes: 30,
	}
	if err := svc.Create(ctx, &rebooked); err != nil {
		t.Fatalf("expected cancelled slot to be bookable, got %v", err)
	}
}

func TestAppointmentRescheduledCancellationRechecksOverlap(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newAppointmentService(db)
	ctx := context.Background()

	head := seedUser(t, db, "Head", "head@example.com", models.RoleHeadOfFamily)
	doctor := seedUser(t, db, "Doc", "doc@example.com", models.RoleDoctor)
	family := seedFamily(t, db, "Smith", head.ID)
	member := seedMember(t, db, family.ID, "Alice")

	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	first := models.Appointment{
		Title:           "First",
		Type:            models.AppointmentCheckup,
		DoctorID:        doctor.ID,
		FamilyID:        family.ID,
		MemberID:        member.ID,
		StartTime:       start,
		DurationMinutes: 30,
	}
	if err := svc.Create(ctx, &first); err != nil {
		t.Fatalf("create first: %v", err)
	}
	if err := svc.UpdateStatus(ctx, first.ID, models.AppointmentCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	second := models.Appointment{
		Title:           "Second",
		Type:            models.AppointmentConsultation,
		DoctorID:        doctor.ID,
		FamilyID:        family.ID,
		MemberID:        member.ID,
		StartTime:       start.Add(15 * time.Minute),
		DurationMinutes: 30,
	}
	if err := svc.Create(ctx, &second); err != nil {
		t.Fatalf("create second: %v", err)
	}

	// The second booking now holds the window; the cancelled slot cannot come
	// back as scheduled on top of it.
	if err := svc.UpdateStatus(ctx, first.ID, models.AppointmentScheduled); !errors.Is(err, ErrOverlap) {
		t.Fatalf("expected ErrOverlap got %v", err)
	}

	// With a free window the slot can be revived.
	if err := svc.UpdateStatus(ctx, second.ID, models.AppointmentCancelled); err != nil {
		t.Fatalf("cancel second: %v", err)
	}
	if err := svc.UpdateStatus(ctx, first.ID, models.AppointmentScheduled); err != nil {
		t.Fatalf("revive into free window: %v", err)
	}
}

func TestAppointmentReadAuthorization(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newAppointmentService(db)
	ctx := context.Background()

	head := seedUser(t, db, "Head", "head@example.com", models.RoleHeadOfFamily)
	stranger := seedUser(t, db, "Stranger", "stranger@example.com", models.RoleHeadOfFamily)
	doctor := seedUser(t, db, "Doc", "doc@example.com", models.RoleDoctor)
	outsiderDoc := seedUser(t, db, "OtherDoc", "otherdoc@example.com", models.RoleDoctor)
	family := seedFamily(t, db, "Smith", head.ID)
	member := seedMember(t, db, family.ID, "Alice")

	appointment := models.Appointment{
		Title:           "Checkup",
		Type:            models.AppointmentCheckup,
		DoctorID:        doctor.ID,
		FamilyID:        family.ID,
		MemberID:        member.ID,
		StartTime:       time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
	}
	if err := svc.Create(ctx, &appointment); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.GetByID(ctx, appointment.ID, stranger.ID, models.RoleHeadOfFamily); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for unrelated head got %v", err)
	}
	if _, err := svc.GetByFamily(ctx, family.ID, outsiderDoc.ID, models.RoleDoctor); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for unassigned doctor got %v", err)
	}
	if _, err := svc.GetByMember(ctx, member.ID, stranger.ID, models.RoleHeadOfFamily); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for unrelated member listing got %v", err)
	}
	if _, err := svc.GetByDoctor(ctx, doctor.ID, "", outsiderDoc.ID, models.RoleDoctor); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for another doctor's schedule got %v", err)
	}

	// The appointment's own doctor can read it without a standing assignment.
	if _, err := svc.GetByID(ctx, appointment.ID, doctor.ID, models.RoleDoctor); err != nil {
		t.Fatalf("appointment doctor read: %v", err)
	}
	if _, err := svc.GetByFamily(ctx, family.ID, head.ID, models.RoleHeadOfFamily); err != nil {
		t.Fatalf("head listing: %v", err)
	}
	if _, err := svc.GetByDoctor(ctx, doctor.ID, "", doctor.ID, models.RoleDoctor); err != nil {
		t.Fatalf("doctor own schedule: %v", err)
	}
}

func TestAppointmentUpdateRecomputesEndTime(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newAppointmentService(db)
	ctx := context.Background()

	head := seedUser(t, db, "Head", "head@example.com", models.RoleHeadOfFamily)
	doctor := seedUser(t, db, "Doc", "doc@example.com", models.RoleDoctor)
	family := seedFamily(t, db, "Smith", head.ID)
	member := seedMember(t, db, family.ID, "Alice")

	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	appointment := models.Appointment{
		Title:           "Checkup",
		Type:            models.AppointmentCheckup,
		DoctorID:        doctor.ID,
		FamilyID:        family.ID,
		MemberID:        member.ID,
		StartTime:       start,
		DurationMinutes: 30,
	}
	if err := svc.Create(ctx, &appointment); err != nil {
		t.Fatalf("create: %v", err)
	}

	appointment.StartTime = start.Add(time.Hour)
	appointment.DurationMinutes = 45
	if err := svc.Update(ctx, &appointment); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := svc.GetByID(ctx, appointment.ID, head.ID, models.RoleHeadOfFamily)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	want := start.Add(time.Hour).Add(45 * time.Minute)
	if !got.EndTime.Equal(want) {
		t.Fatalf("expected end time %v got %v", want, got.EndTime)
	}
}

func TestAppointmentDoctorNotesRestrictedToAssignedDoctor(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newAppointmentService(db)
	ctx := context.Background()

	head := seedUser(t, db, "Head", "head@example.com", models.RoleHeadOfFamily)
	doctor := seedUser(t, db, "Doc", "doc@example.com", models.RoleDoctor)
	other := seedUser(t, db, "Other", "other@example.com", models.RoleDoctor)
	family := seedFamily(t, db, "Smith", head.ID)
	member := seedMember(t, db, family.ID, "Alice")

	appointment := models.Appointment{
		Title:           "Checkup",
		Type:            models.AppointmentCheckup,
		DoctorID:        doctor.ID,
		FamilyID:        family.ID,
		MemberID:        member.ID,
		StartTime:       time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
	}
	if err := svc.Create(ctx, &appointment); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.UpdateDoctorNotes(ctx, appointment.ID, "BP normal", other.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden got %v", err)
	}
	if err := svc.UpdateDoctorNotes(ctx, appointment.ID, "BP normal", doctor.ID); err != nil {
		t.Fatalf("assigned doctor notes: %v", err)
	}

	got, err := svc.GetByID(ctx, appointment.ID, head.ID, models.RoleHeadOfFamily)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.DoctorNotes != "BP normal" {
		t.Fatalf("expected doctor notes persisted, got %q", got.DoctorNotes)
	}
}
