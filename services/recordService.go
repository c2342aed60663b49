package services

import (
	"FamCare/models"
	"FamCare/repositories"
	"context"
	"fmt"
	"time"
)

type RecordService struct {
	recordRepo *repositories.RecordRepository
	memberRepo *repositories.MemberRepository
	familyRepo *repositories.FamilyRepository
	doctorRepo *repositories.DoctorRepository
}

func NewRecordService(recordRepo *repositories.RecordRepository, memberRepo *repositories.MemberRepository, familyRepo *repositories.FamilyRepository, doctorRepo *repositories.DoctorRepository) *RecordService {
	return &RecordService{
		recordRepo: recordRepo,
		memberRepo: memberRepo,
		familyRepo: familyRepo,
		doctorRepo: doctorRepo,
	}
}

// Create stores a medical record for a member. The actor must be the family's
// head, a doctor actively assigned to the family, or an admin.
func (s *RecordService) Create(ctx context.Context, record *models.MedicalRecord, actorID int64, actorRole string) error {
	member, err := s.memberRepo.GetByID(ctx, record.MemberID)
	if err != nil {
		return err
	}
	if member == nil {
		return fmt.Errorf("%w: member %d", ErrNotFound, record.MemberID)
	}

	if err := s.authorize(ctx, member.FamilyID, actorID, actorRole); err != nil {
		return err
	}

	if actorRole == models.RoleDoctor {
		record.DoctorID = &actorID
	}
	if record.RecordDate.IsZero() {
		record.RecordDate = time.Now()
	}
	return s.recordRepo.Create(ctx, record)
}

// GetByID returns a record. Readable by the treating doctor, the owning
// family's head, a doctor actively assigned to the family, or an admin.
func (s *RecordService) GetByID(ctx context.Context, id uint, actorID int64, actorRole string) (*models.MedicalRecord, error) {
	record, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}
	if record.DoctorID != nil && *record.DoctorID == actorID {
		return record, nil
	}

	member, err := s.memberRepo.GetByID(ctx, record.MemberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, fmt.Errorf("%w: member %d", ErrNotFound, record.MemberID)
	}
	if err := s.authorize(ctx, member.FamilyID, actorID, actorRole); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *RecordService) GetByMember(ctx context.Context, memberID uint, actorID int64, actorRole string) ([]models.MedicalRecord, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, fmt.Errorf("%w: member %d", ErrNotFound, memberID)
	}
	if err := s.authorize(ctx, member.FamilyID, actorID, actorRole); err != nil {
		return nil, err
	}
	return s.recordRepo.GetByMember(ctx, memberID)
}

// Update edits a record. Only the treating doctor, the owning family's head,
// or an admin may edit.
func (s *RecordService) Update(ctx context.Context, record *models.MedicalRecord, actorID int64, actorRole string) error {
	existing, err := s.recordRepo.GetByID(ctx, record.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}

	if err := s.authorizeEdit(ctx, existing, actorID, actorRole); err != nil {
		return err
	}

	// The owning member and treating doctor are fixed at creation.
	record.MemberID = existing.MemberID
	record.DoctorID = existing.DoctorID
	return s.recordRepo.Update(ctx, record)
}

func (s *RecordService) Delete(ctx context.Context, id uint, actorID int64, actorRole string) error {
	existing, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	if err := s.authorizeEdit(ctx, existing, actorID, actorRole); err != nil {
		return err
	}
	return s.recordRepo.Delete(ctx, id)
}

// authorizeEdit allows the treating doctor, the owning family's head, or an
// admin.
func (s *RecordService) authorizeEdit(ctx context.Context, record *models.MedicalRecord, actorID int64, actorRole string) error {
	if actorRole == models.RoleAdmin {
		return nil
	}
	if record.DoctorID != nil && *record.DoctorID == actorID {
		return nil
	}
	member, err := s.memberRepo.GetByID(ctx, record.MemberID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrNotFound
	}
	family, err := s.familyRepo.GetByID(ctx, member.FamilyID)
	if err != nil {
		return err
	}
	if family == nil || family.HeadID != actorID {
		return ErrForbidden
	}
	return nil
}

func (s *RecordService) authorize(ctx context.Context, familyID uint, actorID int64, actorRole string) error {
	switch actorRole {
	case models.RoleAdmin:
		return nil
	case models.RoleDoctor:
		assigned, err := s.doctorRepo.HasActiveAssignment(ctx, actorID, familyID)
		if err != nil {
			return err
		}
		if !assigned {
			return ErrForbidden
		}
		return nil
	default:
		family, err := s.familyRepo.GetByID(ctx, familyID)
		if err != nil {
			return err
		}
		if family == nil || family.HeadID != actorID {
			return ErrForbidden
		}
		return nil
	}
}
