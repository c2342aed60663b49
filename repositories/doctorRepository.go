package repositories

import (
	"FamCare/models"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// DoctorRepository persists doctor-family assignments and the requests that
// precede them.
type DoctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) *DoctorRepository {
	return &DoctorRepository{db: db}
}

func (r *DoctorRepository) CreateAssignment(ctx context.Context, assignment *models.DoctorAssignment) error {
	if err := r.db.Create(assignment).Error; err != nil {
		return fmt.Errorf("failed to create doctor assignment: %w", err)
	}
	return nil
}

func (r *DoctorRepository) GetAssignmentByID(ctx context.Context, id uint) (*models.DoctorAssignment, error) {
	var assignment models.DoctorAssignment
	err := r.db.Preload("Doctor", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, name, email, role")
	}).First(&assignment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get doctor assignment: %w", err)
	}
	return &assignment, nil
}

func (r *DoctorRepository) GetAssignmentsByFamily(ctx context.Context, familyID uint) ([]models.DoctorAssignment, error) {
	var assignments []models.DoctorAssignment
	err := r.db.Preload("Doctor", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, name, email, role")
	}).Where("family_id = ?", familyID).Order("start_date DESC").Find(&assignments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get family assignments: %w", err)
	}
	return assignments, nil
}

func (r *DoctorRepository) GetAssignmentsByDoctor(ctx context.Context, doctorID int64, status string) ([]models.DoctorAssignment, error) {
	query := r.db.Where("doctor_id = ?", doctorID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var assignments []models.DoctorAssignment
	if err := query.Order("start_date DESC").Find(&assignments).Error; err != nil {
		return nil, fmt.Errorf("failed to get doctor assignments: %w", err)
	}
	return assignments, nil
}

// HasActiveAssignment reports whether the doctor currently cares for the family.
func (r *DoctorRepository) HasActiveAssignment(ctx context.Context, doctorID int64, familyID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.DoctorAssignment{}).
		Where("doctor_id = ? AND family_id = ? AND status = ?", doctorID, familyID, models.AssignmentActive).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check assignment: %w", err)
	}
	return count > 0, nil
}

func (r *DoctorRepository) UpdateAssignmentStatus(ctx context.Context, id uint, status string) error {
	if status != models.AssignmentActive && status != models.AssignmentInactive {
		return errors.New("invalid status value")
	}
	return r.db.Model(&models.DoctorAssignment{}).Where("id = ?", id).Update("status", status).Error
}

func (r *DoctorRepository) CreateRequest(ctx context.Context, request *models.DoctorRequest) error {
	if err := r.db.Create(request).Error; err != nil {
		return fmt.Errorf("failed to create doctor request: %w", err)
	}
	return nil
}

func (r *DoctorRepository) GetRequestByID(ctx context.Context, id uint) (*models.DoctorRequest, error) {
	var request models.DoctorRequest
	err := r.db.Preload("Doctor", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, name, email, role")
	}).First(&request, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get doctor request: %w", err)
	}
	return &request, nil
}

func (r *DoctorRepository) GetRequestsByFamily(ctx context.Context, familyID uint, status string) ([]models.DoctorRequest, error) {
	query := r.db.Preload("Doctor", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, name, email, role")
	}).Where("family_id = ?", familyID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var requests []models.DoctorRequest
	if err := query.Order("request_date DESC").Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to get family requests: %w", err)
	}
	return requests, nil
}

func (r *DoctorRepository) GetRequestsByDoctor(ctx context.Context, doctorID int64) ([]models.DoctorRequest, error) {
	var requests []models.DoctorRequest
	err := r.db.Where("doctor_id = ?", doctorID).Order("request_date DESC").Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor requests: %w", err)
	}
	return requests, nil
}

func (r *DoctorRepository) UpdateRequest(ctx context.Context, request *models.DoctorRequest) error {
	if err := r.db.Save(request).Error; err != nil {
		return fmt.Errorf("failed to update doctor request: %w", err)
	}
	return nil
}
