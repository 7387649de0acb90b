package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"ripple/internal/cache"
	"ripple/internal/middleware"
	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// PostService handles posts, likes and comments.
type PostService struct {
	postRepo         repository.PostRepository
	userRepo         repository.UserRepository
	followRepo       repository.FollowRepository
	notificationRepo repository.NotificationRepository
}

type CreatePostInput struct {
	UserID  uint
	Content string
}

type CommentInput struct {
	PostID uint
	UserID uint
	Text   string
}

func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	notificationRepo repository.NotificationRepository,
) *PostService {
	return &PostService{
		postRepo:         postRepo,
		userRepo:         userRepo,
		followRepo:       followRepo,
		notificationRepo: notificationRepo,
	}
}

const maxContentLen = 5000

// CreatePost persists the post and fans out a notification to each of the
// author's followers. A failed fan-out write never fails the post.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*PostView, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 5000 characters)")
	}

	author, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{Content: in.Content, UserID: author.ID}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	followerIDs, err := s.followRepo.FollowerIDs(ctx, author.ID)
	if err != nil {
		// The post is already persisted; a failed follower lookup skips the
		// whole fan-out, which must stay as observable as a per-recipient miss.
		middleware.NotificationFanoutFailures.WithLabelValues(models.NotificationKindPost).Inc()
		observability.RecordErrorInContext(ctx, err)
		middleware.Logger.ErrorContext(ctx, "post fan-out skipped: follower lookup failed",
			slog.Uint64("author_id", uint64(author.ID)),
			slog.String("error", err.Error()),
		)
	} else {
		span, spanCtx := observability.NewSpan(ctx, "post.fanout")
		span.AddAttributes(
			attribute.Int("fanout.followers", len(followerIDs)),
			attribute.Int("post.id", int(post.ID)),
		)
		content := fmt.Sprintf("%s made a new post.", author.Username)
		for _, followerID := range followerIDs {
			notifyBestEffort(spanCtx, s.notificationRepo, &models.Notification{
				Kind:       models.NotificationKindPost,
				SenderID:   author.ID,
				ReceiverID: followerID,
				Content:    content,
			})
		}
		span.End()
	}

	created, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	view := postView(created)
	return &view, nil
}

// ListPosts returns all posts in creation order with usernames resolved.
func (s *PostService) ListPosts(ctx context.Context) ([]PostView, error) {
	var views []PostView
	err := cache.Aside(ctx, cache.PostsListKey, &views, cache.PostsListTTL, func() error {
		posts, err := s.postRepo.List(ctx, 0, 0)
		if err != nil {
			return err
		}
		views = make([]PostView, 0, len(posts))
		for i := range posts {
			views = append(views, postView(&posts[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

// LikePost records the like and returns the updated post.
func (s *PostService) LikePost(ctx context.Context, postID, userID uint) (*PostView, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.postRepo.Like(ctx, userID, postID); err != nil {
		return nil, err
	}
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	view := postView(post)
	return &view, nil
}

// CommentOnPost appends the comment and returns the updated post. Empty text
// is allowed.
func (s *PostService) CommentOnPost(ctx context.Context, in CommentInput) (*PostView, error) {
	if _, err := s.userRepo.GetByID(ctx, in.UserID); err != nil {
		return nil, err
	}
	comment := &models.Comment{PostID: in.PostID, UserID: in.UserID, Text: in.Text}
	if err := s.postRepo.AddComment(ctx, comment); err != nil {
		return nil, err
	}
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	view := postView(post)
	return &view, nil
}
