package repository

import (
	"context"
	"errors"

	"ripple/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChatRepository defines persistence operations for chats and messages.
type ChatRepository interface {
	// GetByPair returns the chat between the two users, or nil when none exists.
	GetByPair(ctx context.Context, userA, userB uint) (*models.Chat, error)
	// GetOrCreate returns the chat between the two users, creating it first if
	// needed. Safe under concurrent first sends for the same pair.
	GetOrCreate(ctx context.Context, userA, userB uint) (*models.Chat, error)
	AppendMessage(ctx context.Context, message *models.Message) error
	Messages(ctx context.Context, chatID uint) ([]models.Message, error)
}

type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository returns a new ChatRepository implementation.
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) GetByPair(ctx context.Context, userA, userB uint) (*models.Chat, error) {
	low, high := models.NormalizePair(userA, userB)

	var chat models.Chat
	if err := r.db.WithContext(ctx).
		Where("user_low_id = ? AND user_high_id = ?", low, high).
		First(&chat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &chat, nil
}

func (r *chatRepository) GetOrCreate(ctx context.Context, userA, userB uint) (*models.Chat, error) {
	low, high := models.NormalizePair(userA, userB)

	chat := models.Chat{UserLowID: low, UserHighID: high}
	// ON CONFLICT DO NOTHING keeps concurrent first sends from erroring;
	// the follow-up lookup resolves whichever row won.
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&chat).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if chat.ID != 0 {
		return &chat, nil
	}

	existing, err := r.GetByPair(ctx, userA, userB)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, models.NewInternalError(errors.New("chat vanished after upsert"))
	}
	return existing, nil
}

func (r *chatRepository) AppendMessage(ctx context.Context, message *models.Message) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *chatRepository) Messages(ctx context.Context, chatID uint) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("chat_id = ?", chatID).
		Order("id ASC").
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}
