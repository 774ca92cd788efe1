package services

import (
	"errors"

	"gorm.io/gorm"

	"askpro_backend/internal/repositories"
	"askpro_backend/internal/services/dto"
	"askpro_backend/pkg/apperrors"
)

// NotificationService - лента уведомлений. Запись append-only:
// после создания меняется только флаг прочтения, и только получателем.
type NotificationService struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

func (s *NotificationService) ListNotifications(db *gorm.DB, userID string, page, pageSize int) (*dto.NotificationListResponse, error) {
	notifications, total, err := s.notificationRepo.FindByUser(db, userID, page, pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.NotificationListResponse{
		Notifications: notifications,
		Total:         total,
		Page:          page,
		PageSize:      pageSize,
	}, nil
}

func (s *NotificationService) CountUnread(db *gorm.DB, userID string) (int64, error) {
	count, err := s.notificationRepo.CountUnread(db, userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

func (s *NotificationService) MarkAsRead(db *gorm.DB, notificationID, userID string) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	notification, err := s.notificationRepo.FindByID(tx, notificationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotFound(err, "notification", "Notification not found")
		}
		return apperrors.InternalError(err)
	}

	if notification.UserID != userID {
		return apperrors.NewForbiddenError("You can only mark your own notifications as read")
	}
	if notification.IsRead {
		return tx.Commit().Error
	}

	if err := s.notificationRepo.MarkAsRead(tx, notification); err != nil {
		return apperrors.InternalError(err)
	}
	return tx.Commit().Error
}
