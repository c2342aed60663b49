package services

import (
	"FamCare/models"
	"FamCare/repositories"
	"context"
	"errors"
	"fmt"
	"time"
)

type DoctorService struct {
	doctorRepo *repositories.DoctorRepository
	familyRepo *repositories.FamilyRepository
	userRepo   repositories.UserRepository
}

func NewDoctorService(doctorRepo *repositories.DoctorRepository, familyRepo *repositories.FamilyRepository, userRepo repositories.UserRepository) *DoctorService {
	return &DoctorService{doctorRepo: doctorRepo, familyRepo: familyRepo, userRepo: userRepo}
}

// CreateRequest files a doctor's request to join a family. The requester must
// be a doctor and the family must exist.
func (s *DoctorService) CreateRequest(ctx context.Context, request *models.DoctorRequest) error {
	doctor, err := s.userRepo.GetUserByID(ctx, request.DoctorID)
	if err != nil {
		return err
	}
	if doctor == nil || doctor.Role != models.RoleDoctor {
		return errors.New("requester is not a doctor")
	}

	family, err := s.familyRepo.GetByID(ctx, request.FamilyID)
	if err != nil {
		return err
	}
	if family == nil {
		return fmt.Errorf("%w: family %d", ErrNotFound, request.FamilyID)
	}

	request.Status = models.RequestPending
	if request.RequestDate.IsZero() {
		request.RequestDate = time.Now()
	}
	return s.doctorRepo.CreateRequest(ctx, request)
}

// RespondToRequest accepts or rejects a pending request. Only the family's
// head may respond, transitions out of PENDING are terminal, and the response
// message and date are persisted exactly as supplied. Acceptance creates an
// active assignment.
func (s *DoctorService) RespondToRequest(ctx context.Context, requestID uint, status, responseMessage string, responseDate time.Time, actorID int64, actorRole string) (*models.DoctorRequest, error) {
	if status != models.RequestAccepted && status != models.RequestRejected {
		return nil, errors.New("response status must be ACCEPTED or REJECTED")
	}

	request, err := s.doctorRepo.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, ErrNotFound
	}

	family, err := s.familyRepo.GetByID(ctx, request.FamilyID)
	if err != nil {
		return nil, err
	}
	if family == nil {
		return nil, fmt.Errorf("%w: family %d", ErrNotFound, request.FamilyID)
	}
	if actorRole != models.RoleAdmin && family.HeadID != actorID {
		return nil, ErrForbidden
	}

	if request.Status != models.RequestPending {
		return nil, fmt.Errorf("%w: request already %s", ErrInvalidTransition, request.Status)
	}

	request.Status = status
	request.ResponseMessage = responseMessage
	request.ResponseDate = &responseDate
	if err := s.doctorRepo.UpdateRequest(ctx, request); err != nil {
		return nil, err
	}

	if status == models.RequestAccepted {
		assignment := &models.DoctorAssignment{
			DoctorID:  request.DoctorID,
			FamilyID:  request.FamilyID,
			Status:    models.AssignmentActive,
			StartDate: responseDate,
		}
		if err := s.doctorRepo.CreateAssignment(ctx, assignment); err != nil {
			return nil, err
		}
	}

	return request, nil
}

// GetRequestsByFamily lists a family's requests. Only the family's head or an
// admin may read them.
func (s *DoctorService) GetRequestsByFamily(ctx context.Context, familyID uint, status string, actorID int64, actorRole string) ([]models.DoctorRequest, error) {
	if err := s.authorizeFamilyRead(ctx, familyID, actorID, actorRole, false); err != nil {
		return nil, err
	}
	return s.doctorRepo.GetRequestsByFamily(ctx, familyID, status)
}

func (s *DoctorService) GetRequestsByDoctor(ctx context.Context, doctorID int64) ([]models.DoctorRequest, error) {
	return s.doctorRepo.GetRequestsByDoctor(ctx, doctorID)
}

// GetAssignmentsByFamily lists a family's assignments. Readable by the head,
// an actively assigned doctor, or an admin.
func (s *DoctorService) GetAssignmentsByFamily(ctx context.Context, familyID uint, actorID int64, actorRole string) ([]models.DoctorAssignment, error) {
	if err := s.authorizeFamilyRead(ctx, familyID, actorID, actorRole, true); err != nil {
		return nil, err
	}
	return s.doctorRepo.GetAssignmentsByFamily(ctx, familyID)
}

func (s *DoctorService) authorizeFamilyRead(ctx context.Context, familyID uint, actorID int64, actorRole string, allowAssignedDoctor bool) error {
	if actorRole == models.RoleAdmin {
		return nil
	}
	if allowAssignedDoctor && actorRole == models.RoleDoctor {
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

func (s *DoctorService) GetAssignmentsByDoctor(ctx context.Context, doctorID int64, status string) ([]models.DoctorAssignment, error) {
	return s.doctorRepo.GetAssignmentsByDoctor(ctx, doctorID, status)
}

// DeactivateAssignment ends a care relationship. The family head, the doctor
// involved, or an admin may end it.
func (s *DoctorService) DeactivateAssignment(ctx context.Context, assignmentID uint, actorID int64, actorRole string) error {
	assignment, err := s.doctorRepo.GetAssignmentByID(ctx, assignmentID)
	if err != nil {
		return err
	}
	if assignment == nil {
		return ErrNotFound
	}

	if actorRole != models.RoleAdmin && assignment.DoctorID != actorID {
		family, err := s.familyRepo.GetByID(ctx, assignment.FamilyID)
		if err != nil {
			return err
		}
		if family == nil || family.HeadID != actorID {
			return ErrForbidden
		}
	}

	return s.doctorRepo.UpdateAssignmentStatus(ctx, assignmentID, models.AssignmentInactive)
}

// HasActiveAssignment reports whether the doctor currently cares for the family.
func (s *DoctorService) HasActiveAssignment(ctx context.Context, doctorID int64, familyID uint) (bool, error) {
	return s.doctorRepo.HasActiveAssignment(ctx, doctorID, familyID)
}
