package services

import (
	"FamCare/models"
	"FamCare/repositories"
	"FamCare/utils"
	"context"
	"fmt"
	"time"
)

type AppointmentService struct {
	appointmentRepo *repositories.AppointmentRepository
	familyRepo      *repositories.FamilyRepository
	memberRepo      *repositories.MemberRepository
	doctorRepo      *repositories.DoctorRepository
}

func NewAppointmentService(appointmentRepo *repositories.AppointmentRepository, familyRepo *repositories.FamilyRepository, memberRepo *repositories.MemberRepository, doctorRepo *repositories.DoctorRepository) *AppointmentService {
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		familyRepo:      familyRepo,
		memberRepo:      memberRepo,
		doctorRepo:      doctorRepo,
	}
}

// Create books an appointment. The family and member must exist and belong
// together, the end time is derived from start plus duration, and a booking
// that overlaps one of the doctor's scheduled appointments is rejected.
func (s *AppointmentService) Create(ctx context.Context, appointment *models.Appointment) error {
	if err := utils.ValidateAppointmentData(*appointment); err != nil {
		return fmt.Errorf("invalid appointment data: %w", err)
	}

	family, err := s.familyRepo.GetByID(ctx, appointment.FamilyID)
	if err != nil {
		return err
	}
	if family == nil {
		return fmt.Errorf("%w: family %d", ErrNotFound, appointment.FamilyID)
	}

	member, err := s.memberRepo.GetByID(ctx, appointment.MemberID)
	if err != nil {
		return err
	}
	if member == nil {
		return fmt.Errorf("%w: member %d", ErrNotFound, appointment.MemberID)
	}
	if member.FamilyID != appointment.FamilyID {
		return fmt.Errorf("member %d does not belong to family %d", appointment.MemberID, appointment.FamilyID)
	}

	appointment.EndTime = deriveEndTime(appointment.StartTime, appointment.DurationMinutes)
	if appointment.Status == "" {
		appointment.Status = models.AppointmentScheduled
	}

	overlapping, err := s.appointmentRepo.FindOverlapping(ctx, appointment.DoctorID, appointment.StartTime, appointment.EndTime)
	if err != nil {
		return err
	}
	if len(overlapping) > 0 {
		return fmt.Errorf("%w: doctor %d at %s", ErrOverlap, appointment.DoctorID, appointment.StartTime)
	}

	return s.appointmentRepo.Create(ctx, appointment)
}

// GetByID returns an appointment. Readable by its doctor, the family's head,
// a doctor actively assigned to the family, or an admin.
func (s *AppointmentService) GetByID(ctx context.Context, id uint, actorID int64, actorRole string) (*models.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, nil
	}
	if appointment.DoctorID == actorID {
		return appointment, nil
	}
	if err := s.authorizeRead(ctx, appointment.FamilyID, actorID, actorRole); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (s *AppointmentService) GetByFamily(ctx context.Context, familyID uint, actorID int64, actorRole string) ([]models.Appointment, error) {
	if err := s.authorizeRead(ctx, familyID, actorID, actorRole); err != nil {
		return nil, err
	}
	return s.appointmentRepo.GetByFamily(ctx, familyID)
}

func (s *AppointmentService) GetByMember(ctx context.Context, memberID uint, actorID int64, actorRole string) ([]models.Appointment, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, fmt.Errorf("%w: member %d", ErrNotFound, memberID)
	}
	if err := s.authorizeRead(ctx, member.FamilyID, actorID, actorRole); err != nil {
		return nil, err
	}
	return s.appointmentRepo.GetByMember(ctx, memberID)
}

// GetByDoctor lists a doctor's appointments. Doctors may only list their own.
func (s *AppointmentService) GetByDoctor(ctx context.Context, doctorID int64, status string, actorID int64, actorRole string) ([]models.Appointment, error) {
	if actorRole != models.RoleAdmin && actorID != doctorID {
		return nil, ErrForbidden
	}
	return s.appointmentRepo.GetByDoctorAndStatus(ctx, doctorID, status)
}

func (s *AppointmentService) authorizeRead(ctx context.Context, familyID uint, actorID int64, actorRole string) error {
	if actorRole == models.RoleAdmin {
		return nil
	}
	if actorRole == models.RoleDoctor {
		assigned, err := s.doctorRepo.HasActiveAssignment(ctx, actorID, familyID)
		if err != nil {
			return err
		}
		if !assigned {
			return ErrForbidden
		}
		return nil
	}
	family, err := s.familyRepo.GetByID(ctx, familyID)
	if err != nil {
		return err
	}
	if family == nil || family.HeadID != actorID {
		return ErrForbidden
	}
	return nil
}

// Update reschedules or edits an appointment, recomputing the end time.
func (s *AppointmentService) Update(ctx context.Context, appointment *models.Appointment) error {
	if err := utils.ValidateAppointmentData(*appointment); err != nil {
		return fmt.Errorf("invalid appointment data: %w", err)
	}

	existing, err := s.appointmentRepo.GetByID(ctx, appointment.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}

	appointment.EndTime = deriveEndTime(appointment.StartTime, appointment.DurationMinutes)
	if appointment.Status == "" {
		appointment.Status = existing.Status
	}
	return s.appointmentRepo.Update(ctx, appointment)
}

// UpdateStatus moves the appointment to a new status (complete, cancel).
func (s *AppointmentService) UpdateStatus(ctx context.Context, id uint, status string) error {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if appointment == nil {
		return ErrNotFound
	}

	// A slot re-entering SCHEDULED must pass the same overlap check as a new
	// booking; anything booked while it was cancelled holds the window.
	if status == models.AppointmentScheduled && appointment.Status != models.AppointmentScheduled {
		overlapping, err := s.appointmentRepo.FindOverlapping(ctx, appointment.DoctorID, appointment.StartTime, appointment.EndTime)
		if err != nil {
			return err
		}
		if len(overlapping) > 0 {
			return fmt.Errorf("%w: doctor %d at %s", ErrOverlap, appointment.DoctorID, appointment.StartTime)
		}
	}

	appointment.Status = status
	return s.appointmentRepo.Update(ctx, appointment)
}

// UpdateDoctorNotes writes the doctor's notes. Only the assigned doctor may
// write them.
func (s *AppointmentService) UpdateDoctorNotes(ctx context.Context, id uint, notes string, actorID int64) error {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if appointment == nil {
		return ErrNotFound
	}
	if appointment.DoctorID != actorID {
		return ErrForbidden
	}
	appointment.DoctorNotes = notes
	return s.appointmentRepo.Update(ctx, appointment)
}

func (s *AppointmentService) Delete(ctx context.Context, id uint) error {
	return s.appointmentRepo.Delete(ctx, id)
}

func deriveEndTime(start time.Time, durationMinutes int) time.Time {
	return start.Add(time.Duration(durationMinutes) * time.Minute)
}
