package service

import (
	"context"

	"ripple/internal/models"
)

type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	listFn          func(context.Context, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

// knownUsersStub returns a user repo stub that recognizes the given users by ID.
func knownUsersStub(users ...*models.User) *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			for _, u := range users {
				if u.ID == id {
					return u, nil
				}
			}
			return nil, models.NewNotFoundError("User", id)
		},
	}
}

type followRepoStub struct {
	toggleFn       func(context.Context, uint, uint) (bool, error)
	existsFn       func(context.Context, uint, uint) (bool, error)
	followerIDsFn  func(context.Context, uint) ([]uint, error)
	followingIDsFn func(context.Context, uint) ([]uint, error)
	followersFn    func(context.Context, uint) ([]models.User, error)
}

func (s *followRepoStub) Toggle(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.toggleFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) Exists(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.existsFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) FollowerIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.followerIDsFn(ctx, userID)
}
func (s *followRepoStub) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.followingIDsFn(ctx, userID)
}
func (s *followRepoStub) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followersFn(ctx, userID)
}

type postRepoStub struct {
	createFn     func(context.Context, *models.Post) error
	getByIDFn    func(context.Context, uint) (*models.Post, error)
	listFn       func(context.Context, int, int) ([]models.Post, error)
	likeFn       func(context.Context, uint, uint) error
	addCommentFn func(context.Context, *models.Comment) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int) ([]models.Post, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *postRepoStub) Like(ctx context.Context, userID, postID uint) error {
	return s.likeFn(ctx, userID, postID)
}
func (s *postRepoStub) AddComment(ctx context.Context, comment *models.Comment) error {
	return s.addCommentFn(ctx, comment)
}

type chatRepoStub struct {
	getByPairFn     func(context.Context, uint, uint) (*models.Chat, error)
	getOrCreateFn   func(context.Context, uint, uint) (*models.Chat, error)
	appendMessageFn func(context.Context, *models.Message) error
	messagesFn      func(context.Context, uint) ([]models.Message, error)
}

func (s *chatRepoStub) GetByPair(ctx context.Context, userA, userB uint) (*models.Chat, error) {
	return s.getByPairFn(ctx, userA, userB)
}
func (s *chatRepoStub) GetOrCreate(ctx context.Context, userA, userB uint) (*models.Chat, error) {
	return s.getOrCreateFn(ctx, userA, userB)
}
func (s *chatRepoStub) AppendMessage(ctx context.Context, message *models.Message) error {
	return s.appendMessageFn(ctx, message)
}
func (s *chatRepoStub) Messages(ctx context.Context, chatID uint) ([]models.Message, error) {
	return s.messagesFn(ctx, chatID)
}

type notificationRepoStub struct {
	createFn           func(context.Context, *models.Notification) error
	listByReceiverFn   func(context.Context, uint) ([]models.Notification, error)
	clearForReceiverFn func(context.Context, uint) error
}

func (s *notificationRepoStub) Create(ctx context.Context, notification *models.Notification) error {
	return s.createFn(ctx, notification)
}
func (s *notificationRepoStub) ListByReceiver(ctx context.Context, receiverID uint) ([]models.Notification, error) {
	return s.listByReceiverFn(ctx, receiverID)
}
func (s *notificationRepoStub) ClearForReceiver(ctx context.Context, receiverID uint) error {
	return s.clearForReceiverFn(ctx, receiverID)
}

// recordingNotifications collects every notification created through the stub.
func recordingNotifications() (*notificationRepoStub, *[]models.Notification) {
	var created []models.Notification
	stub := &notificationRepoStub{
		createFn: func(_ context.Context, n *models.Notification) error {
			created = append(created, *n)
			return nil
		},
	}
	return stub, &created
}
