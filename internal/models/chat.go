package models

import "time"

// Chat represents the single conversation between an unordered pair of users.
// The pair is stored normalized (UserLowID < UserHighID) with a composite
// unique index, so the store itself enforces one chat per pair.
type Chat struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserLowID  uint      `gorm:"not null;uniqueIndex:idx_chat_pair" json:"user_low_id"`
	UserHighID uint      `gorm:"not null;uniqueIndex:idx_chat_pair" json:"user_high_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Messages []Message `gorm:"foreignKey:ChatID" json:"messages,omitempty"`
}

// NormalizePair returns the pair (low, high) regardless of argument order.
func NormalizePair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}

// Message represents a chat message. Messages are append-only; timestamps are
// server-assigned at insert.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ChatID    uint      `gorm:"not null;index" json:"chat_id"`
	SenderID  uint      `gorm:"not null;index" json:"sender_id"`
	Sender    User      `gorm:"foreignKey:SenderID" json:"sender"`
	Content   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `json:"timestamp"`
}
