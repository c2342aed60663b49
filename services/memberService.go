package services

import (
	"FamCare/models"
	"FamCare/repositories"
	"FamCare/utils"
	"context"
	"fmt"
)

type MemberService struct {
	memberRepo *repositories.MemberRepository
	familyRepo *repositories.FamilyRepository
	doctorRepo *repositories.DoctorRepository
}

func NewMemberService(memberRepo *repositories.MemberRepository, familyRepo *repositories.FamilyRepository, doctorRepo *repositories.DoctorRepository) *MemberService {
	return &MemberService{memberRepo: memberRepo, familyRepo: familyRepo, doctorRepo: doctorRepo}
}

// Create adds a member to a family. Only the family's head or an admin may
// manage members, and the family must exist.
func (s *MemberService) Create(ctx context.Context, member *models.Member, actorID int64, actorRole string) error {
	if err := utils.ValidateMemberData(*member); err != nil {
		return fmt.Errorf("invalid member data: %w", err)
	}
	if err := s.authorize(ctx, member.FamilyID, actorID, actorRole); err != nil {
		return err
	}
	return s.memberRepo.Create(ctx, member)
}

// GetByID returns a member. Readable by the family's head, a doctor actively
// assigned to the family, or an admin.
func (s *MemberService) GetByID(ctx context.Context, id uint, actorID int64, actorRole string) (*models.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, nil
	}
	if err := s.authorizeRead(ctx, member.FamilyID, actorID, actorRole); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *MemberService) GetByFamily(ctx context.Context, familyID uint, actorID int64, actorRole string) ([]models.Member, error) {
	if err := s.authorizeRead(ctx, familyID, actorID, actorRole); err != nil {
		return nil, err
	}
	return s.memberRepo.GetByFamilyID(ctx, familyID)
}

func (s *MemberService) Update(ctx context.Context, member *models.Member, actorID int64, actorRole string) error {
	if err := utils.ValidateMemberData(*member); err != nil {
		return fmt.Errorf("invalid member data: %w", err)
	}
	existing, err := s.memberRepo.GetByID(ctx, member.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	// Members cannot be moved between families through an update.
	member.FamilyID = existing.FamilyID
	if err := s.authorize(ctx, existing.FamilyID, actorID, actorRole); err != nil {
		return err
	}
	return s.memberRepo.Update(ctx, member)
}

func (s *MemberService) Delete(ctx context.Context, id uint, actorID int64, actorRole string) error {
	existing, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	if err := s.authorize(ctx, existing.FamilyID, actorID, actorRole); err != nil {
		return err
	}
	return s.memberRepo.Delete(ctx, id)
}

// authorizeRead admits the family's head, an actively assigned doctor, or an
// admin. Writes stay restricted to the head and admins via authorize.
func (s *MemberService) authorizeRead(ctx context.Context, familyID uint, actorID int64, actorRole string) error {
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
	return s.authorize(ctx, familyID, actorID, actorRole)
}

func (s *MemberService) authorize(ctx context.Context, familyID uint, actorID int64, actorRole string) error {
	family, err := s.familyRepo.GetByID(ctx, familyID)
	if err != nil {
		return err
	}
	if family == nil {
		return fmt.Errorf("%w: family %d", ErrNotFound, familyID)
	}
	if actorRole != models.RoleAdmin && family.HeadID != actorID {
		return ErrForbidden
	}
	return nil
}
