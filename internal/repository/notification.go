package repository

import (
	"context"

	"ripple/internal/cache"
	"ripple/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository defines persistence operations for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByReceiver(ctx context.Context, receiverID uint) ([]models.Notification, error)
	ClearForReceiver(ctx context.Context, receiverID uint) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository returns a new NotificationRepository implementation.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateNotifications(ctx, notification.ReceiverID)
	return nil
}

func (r *notificationRepository) ListByReceiver(ctx context.Context, receiverID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("receiver_id = ?", receiverID).
		// Newest first; id breaks ties within the same timestamp.
		Order("created_at DESC, id DESC").
		Find(&notifications).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return notifications, nil
}

func (r *notificationRepository) ClearForReceiver(ctx context.Context, receiverID uint) error {
	if err := r.db.WithContext(ctx).
		Where("receiver_id = ?", receiverID).
		Delete(&models.Notification{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateNotifications(ctx, receiverID)
	return nil
}
