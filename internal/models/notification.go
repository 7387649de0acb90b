package models

import "time"

// Notification kinds.
const (
	NotificationKindFollow  = "follow"
	NotificationKindPost    = "post"
	NotificationKindMessage = "message"
)

// Notification is an append-only event addressed to a receiving user.
// Rows are immutable once created and are only ever removed by a bulk clear
// for the receiver.
type Notification struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Kind       string    `gorm:"size:20;not null;index" json:"type"`
	SenderID   uint      `gorm:"not null" json:"sender_id"`
	Sender     User      `gorm:"foreignKey:SenderID" json:"sender"`
	ReceiverID uint      `gorm:"not null;index" json:"receiver_id"`
	Content    string    `gorm:"type:text" json:"content"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`
}
