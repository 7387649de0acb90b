package service

import (
	"context"

	"ripple/internal/cache"
	"ripple/internal/repository"
)

// NotificationService serves a user's notification feed.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
}

func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

// List returns the user's notifications newest first. The polling client hits
// this every few seconds, so the result is served cache-aside with a short TTL.
func (s *NotificationService) List(ctx context.Context, userID uint) ([]NotificationView, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	var views []NotificationView
	err := cache.Aside(ctx, cache.NotificationsKey(userID), &views, cache.NotificationsTTL, func() error {
		notifications, err := s.notificationRepo.ListByReceiver(ctx, userID)
		if err != nil {
			return err
		}
		views = notificationViews(notifications)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

// Clear deletes all of the user's notifications. Clearing an empty feed is a
// no-op, not an error.
func (s *NotificationService) Clear(ctx context.Context, userID uint) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.notificationRepo.ClearForReceiver(ctx, userID)
}
