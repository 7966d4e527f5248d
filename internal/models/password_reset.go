package models

import "time"

// PasswordReset is the store-backed replacement for an in-memory OTP map:
// codes survive restarts and expire on their own column, not on a timer.
type PasswordReset struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"size:100;index;not null"`
	Code      string `gorm:"size:10;not null"`
	ExpiresAt time.Time
	CreatedAt time.Time
}
