package repositories

import (
	"FamCare/models"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// RecordRepository persists medical records. The attached file lives in
// external storage; only its URL is stored.
type RecordRepository struct {
	db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

func (r *RecordRepository) Create(ctx context.Context, record *models.MedicalRecord) error {
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to create medical record: %w", err)
	}
	return nil
}

func (r *RecordRepository) GetByID(ctx context.Context, id uint) (*models.MedicalRecord, error) {
	var record models.MedicalRecord
	err := r.db.Preload("Doctor", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, name, email, role")
	}).First(&record, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get medical record: %w", err)
	}
	return &record, nil
}

func (r *RecordRepository) GetByMember(ctx context.Context, memberID uint) ([]models.MedicalRecord, error) {
	var records []models.MedicalRecord
	err := r.db.Preload("Doctor", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, name, email, role")
	}).Where("member_id = ?", memberID).Order("record_date DESC").Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get member records: %w", err)
	}
	return records, nil
}

func (r *RecordRepository) Update(ctx context.Context, record *models.MedicalRecord) error {
	if err := r.db.Save(record).Error; err != nil {
		return fmt.Errorf("failed to update medical record: %w", err)
	}
	return nil
}

func (r *RecordRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.Delete(&models.MedicalRecord{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete medical record: %w", err)
	}
	return nil
}
