package service

import (
	"context"
	"fmt"
	"log/slog"

	"ripple/internal/cache"
	"ripple/internal/middleware"
	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/repository"
)

// SocialService handles the user directory and follow relationships.
type SocialService struct {
	userRepo         repository.UserRepository
	followRepo       repository.FollowRepository
	notificationRepo repository.NotificationRepository
}

func NewSocialService(
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	notificationRepo repository.NotificationRepository,
) *SocialService {
	return &SocialService{
		userRepo:         userRepo,
		followRepo:       followRepo,
		notificationRepo: notificationRepo,
	}
}

// ToggleFollow flips the follow edge from userID to targetID and reports
// whether userID follows targetID afterwards. Creating the edge emits a
// follow notification; removing it does not.
func (s *SocialService) ToggleFollow(ctx context.Context, userID, targetID uint) (bool, error) {
	if userID == targetID {
		return false, models.NewSelfFollowError()
	}

	follower, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return false, err
	}

	following, err := s.followRepo.Toggle(ctx, userID, targetID)
	if err != nil {
		return false, err
	}

	if following {
		notifyBestEffort(ctx, s.notificationRepo, &models.Notification{
			Kind:       models.NotificationKindFollow,
			SenderID:   follower.ID,
			ReceiverID: targetID,
			Content:    fmt.Sprintf("%s followed you.", follower.Username),
		})
	}
	return following, nil
}

// ListUsers returns every user with their follower/following id lists.
func (s *SocialService) ListUsers(ctx context.Context) ([]UserSummary, error) {
	var summaries []UserSummary
	err := cache.Aside(ctx, cache.UsersListKey, &summaries, cache.UsersListTTL, func() error {
		users, err := s.userRepo.List(ctx, 0, 0)
		if err != nil {
			return err
		}

		summaries = make([]UserSummary, 0, len(users))
		for _, u := range users {
			followers, err := s.followRepo.FollowerIDs(ctx, u.ID)
			if err != nil {
				return err
			}
			following, err := s.followRepo.FollowingIDs(ctx, u.ID)
			if err != nil {
				return err
			}
			summaries = append(summaries, UserSummary{
				ID:             u.ID,
				Username:       u.Username,
				FollowersCount: followers,
				FollowingCount: following,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// notifyBestEffort writes a notification without letting a failure surface to
// the triggering operation. Failures are logged and counted.
func notifyBestEffort(ctx context.Context, repo repository.NotificationRepository, n *models.Notification) {
	if err := repo.Create(ctx, n); err != nil {
		middleware.NotificationFanoutFailures.WithLabelValues(n.Kind).Inc()
		observability.RecordErrorInContext(ctx, err)
		middleware.Logger.ErrorContext(ctx, "notification fan-out failed",
			slog.String("kind", n.Kind),
			slog.Uint64("receiver_id", uint64(n.ReceiverID)),
			slog.String("error", err.Error()),
		)
		return
	}
	middleware.NotificationsCreated.WithLabelValues(n.Kind).Inc()
}
