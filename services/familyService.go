package services

import (
	"FamCare/models"
	"FamCare/repositories"
	"context"
	"errors"
	"fmt"
)

type FamilyService struct {
	familyRepo *repositories.FamilyRepository
	userRepo   repositories.UserRepository
	doctorRepo *repositories.DoctorRepository
}

func NewFamilyService(familyRepo *repositories.FamilyRepository, userRepo repositories.UserRepository, doctorRepo *repositories.DoctorRepository) *FamilyService {
	return &FamilyService{familyRepo: familyRepo, userRepo: userRepo, doctorRepo: doctorRepo}
}

// Create registers a family for the given head user. The head must exist and
// hold the head-of-family role.
func (s *FamilyService) Create(ctx context.Context, family *models.Family) error {
	head, err := s.userRepo.GetUserByID(ctx, family.HeadID)
	if err != nil {
		return fmt.Errorf("failed to look up head of family: %w", err)
	}
	if head == nil {
		return fmt.Errorf("%w: head user %d", ErrNotFound, family.HeadID)
	}
	if head.Role != models.RoleHeadOfFamily {
		return errors.New("head user must have the head-of-family role")
	}

	existing, err := s.familyRepo.GetByHeadID(ctx, family.HeadID)
	if err != nil {
		return err
	}
	if existing != nil {
		return errors.New("user already heads a family")
	}

	return s.familyRepo.Create(ctx, family)
}

// GetByID returns a family. Only the family's head, a doctor actively
// assigned to it, or an admin may read it.
func (s *FamilyService) GetByID(ctx context.Context, id uint, actorID int64, actorRole string) (*models.Family, error) {
	family, err := s.familyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if family == nil {
		return nil, nil
	}
	if err := s.authorizeRead(ctx, family, actorID, actorRole); err != nil {
		return nil, err
	}
	return family, nil
}

func (s *FamilyService) GetByHead(ctx context.Context, headID int64) (*models.Family, error) {
	return s.familyRepo.GetByHeadID(ctx, headID)
}

func (s *FamilyService) GetAll(ctx context.Context) ([]models.Family, error) {
	return s.familyRepo.GetAll(ctx)
}

// Update changes family name/address. Only the head or an admin may update.
func (s *FamilyService) Update(ctx context.Context, family *models.Family, actorID int64, actorRole string) error {
	existing, err := s.familyRepo.GetByID(ctx, family.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	if actorRole != models.RoleAdmin && existing.HeadID != actorID {
		return ErrForbidden
	}
	return s.familyRepo.Update(ctx, family)
}

// Delete removes a family and cascades to its members and assignments.
// Admin only.
func (s *FamilyService) Delete(ctx context.Context, id uint, actorRole string) error {
	if actorRole != models.RoleAdmin {
		return ErrForbidden
	}
	return s.familyRepo.Delete(ctx, id)
}

func (s *FamilyService) authorizeRead(ctx context.Context, family *models.Family, actorID int64, actorRole string) error {
	if actorRole == models.RoleAdmin || family.HeadID == actorID {
		return nil
	}
	if actorRole == models.RoleDoctor {
		assigned, err := s.doctorRepo.HasActiveAssignment(ctx, actorID, family.ID)
		if err != nil {
			return err
		}
		if assigned {
			return nil
		}
	}
	return ErrForbidden
}

// AuthorizeHead checks that the actor heads the family (or is an admin).
func (s *FamilyService) AuthorizeHead(ctx context.Context, familyID uint, actorID int64, actorRole string) (*models.Family, error) {
	family, err := s.familyRepo.GetByID(ctx, familyID)
	if err != nil {
		return nil, err
	}
	if family == nil {
		return nil, ErrNotFound
	}
	if actorRole != models.RoleAdmin && family.HeadID != actorID {
		return nil, ErrForbidden
	}
	return family, nil
}
