package services

import (
	"FamCare/models"
	"FamCare/repositories"
	"FamCare/utils"
	"context"
	"fmt"

	"github.com/google/uuid"
)

type PaymentService struct {
	paymentRepo *repositories.PaymentRepository
	userRepo    repositories.UserRepository
}

func NewPaymentService(paymentRepo *repositories.PaymentRepository, userRepo repositories.UserRepository) *PaymentService {
	return &PaymentService{paymentRepo: paymentRepo, userRepo: userRepo}
}

// Create records a payment placeholder in Pending state with a generated
// transaction code. The paying user is always the explicitly supplied user ID.
func (s *PaymentService) Create(ctx context.Context, payment *models.Payment) error {
	if err := utils.ValidatePaymentData(*payment); err != nil {
		return fmt.Errorf("invalid payment data: %w", err)
	}

	user, err := s.userRepo.GetUserByID(ctx, payment.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: user %d", ErrNotFound, payment.UserID)
	}

	payment.Status = models.PaymentPending
	if payment.TransactionCode == "" {
		payment.TransactionCode = uuid.New().String()
	}
	return s.paymentRepo.Create(ctx, payment)
}

// GetByID returns a payment. Only the paying user or an admin may read it.
func (s *PaymentService) GetByID(ctx context.Context, id uint, actorID int64, actorRole string) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, nil
	}
	if actorRole != models.RoleAdmin && payment.UserID != actorID {
		return nil, ErrForbidden
	}
	return payment, nil
}

func (s *PaymentService) GetByUser(ctx context.Context, userID int64) ([]models.Payment, error) {
	return s.paymentRepo.GetByUser(ctx, userID)
}

func (s *PaymentService) GetAll(ctx context.Context, status string) ([]models.Payment, error) {
	return s.paymentRepo.GetAll(ctx, status)
}

// HandleProviderResult records the outcome reported by the external payment
// provider for a transaction code.
func (s *PaymentService) HandleProviderResult(ctx context.Context, transactionCode, status string) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByTransactionCode(ctx, transactionCode)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrNotFound
	}

	if err := s.paymentRepo.UpdateStatus(ctx, payment.ID, status); err != nil {
		return nil, err
	}
	payment.Status = status
	return payment, nil
}

// UpdateStatus sets a payment's status directly (admin bookkeeping).
func (s *PaymentService) UpdateStatus(ctx context.Context, id uint, status string) error {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if payment == nil {
		return ErrNotFound
	}
	return s.paymentRepo.UpdateStatus(ctx, id, status)
}

func (s *PaymentService) Delete(ctx context.Context, id uint) error {
	return s.paymentRepo.Delete(ctx, id)
}
