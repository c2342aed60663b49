package repositories

import (
	"FamCare/cache"
	"FamCare/models"
	"context"
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
		&models.Appointment{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedAppointment(t *testing.T, db *gorm.DB, doctorID int64, familyID, memberID uint, start time.Time, minutes int, status string) *models.Appointment {
	appointment := models.Appointment{
		Title:           "Visit",
		Type:            models.AppointmentCheckup,
		DoctorID:        doctorID,
		FamilyID:        familyID,
		MemberID:        memberID,
		StartTime:       start,
		DurationMinutes: minutes,
		EndTime:         start.Add(time.Duration(minutes) * time.Minute),
		Status:          status,
	}
	if err := db.Create(&appointment).Error; err != nil {
		t.Fatalf("seed appointment: %v", err)
	}
	return &appointment
}

func seedSchedulingFixtures(t *testing.T, db *gorm.DB) (int64, uint, uint) {
	doctor := models.User{Name: "Doc", Email: "doc@example.com", Password: "hash", Role: models.RoleDoctor}
	if err := db.Create(&doctor).Error; err != nil {
		t.Fatalf("seed doctor: %v", err)
	}
	head := models.User{Name: "Head", Email: "head@example.com", Password: "hash", Role: models.RoleHeadOfFamily}
	if err := db.Create(&head).Error; err != nil {
		t.Fatalf("seed head: %v", err)
	}
	family := models.Family{Name: "Smith", HeadID: head.ID}
	if err := db.Create(&family).Error; err != nil {
		t.Fatalf("seed family: %v", err)
	}
	member := models.Member{FamilyID: family.ID, Name: "Alice", DateOfBirth: "2010-04-12", Gender: "Female"}
	if err := db.Create(&member).Error; err != nil {
		t.Fatalf("seed member: %v", err)
	}
	return doctor.ID, family.ID, member.ID
}

func TestGetByDoctorAndStatus(t *testing.T) {
	db := setupTestDB(t, t.Name())
	repo := NewAppointmentRepository(db, cache.New(nil))
	ctx := context.Background()

	doctorID, familyID, memberID := seedSchedulingFixtures(t, db)
	base := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	seedAppointment(t, db, doctorID, familyID, memberID, base, 30, models.AppointmentScheduled)
	seedAppointment(t, db, doctorID, familyID, memberID, base.Add(time.Hour), 30, models.AppointmentScheduled)
	seedAppointment(t, db, doctorID, familyID, memberID, base.Add(2*time.Hour), 30, models.AppointmentCompleted)
	seedAppointment(t, db, doctorID, familyID, memberID, base.Add(3*time.Hour), 30, models.AppointmentCancelled)

	cases := []struct {
		status string
		want   int
	}{
		{models.AppointmentScheduled, 2},
		{models.AppointmentCompleted, 1},
		{models.AppointmentCancelled, 1},
		{"", 4},
	}
	for _, tc := range cases {
		got, err := repo.GetByDoctorAndStatus(ctx, doctorID, tc.status)
		if err != nil {
			t.Fatalf("get by doctor and status %q: %v", tc.status, err)
		}
		if len(got) != tc.want {
			t.Fatalf("status %q: expected %d appointments got %d", tc.status, tc.want, len(got))
		}
	}
}

func TestFindOverlapping(t *testing.T) {
	db := setupTestDB(t, t.Name())
	repo := NewAppointmentRepository(db, cache.New(nil))
	ctx := context.Background()

	doctorID, familyID, memberID := seedSchedulingFixtures(t, db)
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	seedAppointment(t, db, doctorID, familyID, memberID, start, 30, models.AppointmentScheduled)

	// Range crossing into the booked slot overlaps.
	got, err := repo.FindOverlapping(ctx, doctorID, start.Add(15*time.Minute), start.Add(45*time.Minute))
	if err != nil {
		t.Fatalf("find overlapping: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 overlap got %d", len(got))
	}

	// Range ending exactly at the booked start does not overlap.
	got, err = repo.FindOverlapping(ctx, doctorID, start.Add(-time.Hour), start)
	if err != nil {
		t.Fatalf("find overlapping: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected 0 overlaps got %d", len(got))
	}

	// Range starting exactly at the booked end does not overlap.
	got, err = repo.FindOverlapping(ctx, doctorID, start.Add(30*time.Minute), start.Add(time.Hour))
	if err != nil {
		t.Fatalf("find overlapping: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected 0 overlaps got %d", len(got))
	}

	// Another doctor's calendar is unaffected.
	got, err = repo.FindOverlapping(ctx, doctorID+1, start, start.Add(30*time.Minute))
	if err != nil {
		t.Fatalf("find overlapping: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected 0 overlaps for other doctor got %d", len(got))
	}
}
