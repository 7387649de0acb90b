package service

import (
	"context"
	"fmt"
	"strings"

	"ripple/internal/middleware"
	"ripple/internal/models"
	"ripple/internal/repository"
)

// ChatService handles direct messages between user pairs.
type ChatService struct {
	chatRepo         repository.ChatRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
}

type SendMessageInput struct {
	SenderID   uint
	ReceiverID uint
	Message    string
}

func NewChatService(
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
) *ChatService {
	return &ChatService{
		chatRepo:         chatRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

const maxMessageLen = 2000

// GetConversation returns the message sequence between the two users in send
// order. Reading never creates a chat: an unstarted conversation is an empty
// slice.
func (s *ChatService) GetConversation(ctx context.Context, userA, userB uint) ([]MessageView, error) {
	if _, err := s.userRepo.GetByID(ctx, userA); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, userB); err != nil {
		return nil, err
	}

	chat, err := s.chatRepo.GetByPair(ctx, userA, userB)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return []MessageView{}, nil
	}

	messages, err := s.chatRepo.Messages(ctx, chat.ID)
	if err != nil {
		return nil, err
	}
	return messageViews(messages), nil
}

// SendMessage appends a message to the pair's chat, creating the chat on
// first send, and returns the full updated sequence. The receiver gets a
// best-effort message notification.
func (s *ChatService) SendMessage(ctx context.Context, in SendMessageInput) ([]MessageView, error) {
	if strings.TrimSpace(in.Message) == "" {
		return nil, models.NewValidationError("Message is required")
	}
	if len(in.Message) > maxMessageLen {
		return nil, models.NewValidationError("Message too long (max 2000 characters)")
	}
	if in.SenderID == in.ReceiverID {
		return nil, models.NewValidationError("Cannot message yourself")
	}

	sender, err := s.userRepo.GetByID(ctx, in.SenderID)
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, in.ReceiverID); err != nil {
		return nil, err
	}

	chat, err := s.chatRepo.GetOrCreate(ctx, in.SenderID, in.ReceiverID)
	if err != nil {
		return nil, err
	}

	message := &models.Message{
		ChatID:   chat.ID,
		SenderID: sender.ID,
		Content:  in.Message,
	}
	if err := s.chatRepo.AppendMessage(ctx, message); err != nil {
		return nil, err
	}
	middleware.MessagesSent.Inc()

	notifyBestEffort(ctx, s.notificationRepo, &models.Notification{
		Kind:       models.NotificationKindMessage,
		SenderID:   sender.ID,
		ReceiverID: in.ReceiverID,
		Content:    fmt.Sprintf("%s messaged you.", sender.Username),
	})

	messages, err := s.chatRepo.Messages(ctx, chat.ID)
	if err != nil {
		return nil, err
	}
	return messageViews(messages), nil
}
