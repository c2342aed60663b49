package services

import (
	"FamCare/models"
	"FamCare/repositories"
	"context"
	"time"
)

type NotificationService struct {
	notificationRepo *repositories.NotificationRepository
}

func NewNotificationService(notificationRepo *repositories.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

func (s *NotificationService) Create(ctx context.Context, notification *models.Notification) error {
	return s.notificationRepo.Create(ctx, notification)
}

func (s *NotificationService) GetForUser(ctx context.Context, userID int64, unreadOnly bool) ([]models.Notification, error) {
	return s.notificationRepo.GetByUser(ctx, userID, unreadOnly)
}

func (s *NotificationService) MarkRead(ctx context.Context, id uint, userID int64) error {
	return s.notificationRepo.MarkRead(ctx, id, userID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

// PruneRead removes read notifications older than the retention window.
func (s *NotificationService) PruneRead(ctx context.Context, retention time.Duration) error {
	return s.notificationRepo.DeleteOlderThan(ctx, time.Now().Add(-retention))
}
