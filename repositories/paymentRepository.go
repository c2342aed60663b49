package repositories

import (
	"FamCare/database"
	"FamCare/models"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// PaymentRepository persists subscription payment records. Status changes are
// guarded by a lock keyed on the transaction code since the external provider
// callback can race a manual admin update.
type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	if !models.IsValidPaymentStatus(payment.Status) {
		return errors.New("invalid status value")
	}
	if err := r.db.Create(payment).Error; err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.First(&payment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &payment, nil
}

func (r *PaymentRepository) GetByTransactionCode(ctx context.Context, code string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.Where("transaction_code = ?", code).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payment by transaction code: %w", err)
	}
	return &payment, nil
}

func (r *PaymentRepository) GetByUser(ctx context.Context, userID int64) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get user payments: %w", err)
	}
	return payments, nil
}

// GetAll lists payments, optionally filtered by status.
func (r *PaymentRepository) GetAll(ctx context.Context, status string) ([]models.Payment, error) {
	query := r.db.Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var payments []models.Payment
	if err := query.Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to get payments: %w", err)
	}
	return payments, nil
}

func (r *PaymentRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	if !models.IsValidPaymentStatus(status) {
		return errors.New("invalid status value")
	}
	lockKey := fmt.Sprintf("payment_lock:%d", id)
	return database.WithLock(ctx, lockKey, func() error {
		return r.db.Model(&models.Payment{}).Where("id = ?", id).Update("status", status).Error
	})
}

func (r *PaymentRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.Delete(&models.Payment{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	return nil
}
