// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a user account in the Ripple application.
// Password holds a bcrypt hash and is never serialized.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"not null" json:"username"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Token is set on signup/login responses only; it is not persisted.
	Token string `gorm:"-" json:"token,omitempty"`
}
