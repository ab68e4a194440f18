package models

import "time"

// PasswordResetToken stores the signed reset token issued to an email.
// At most one per email; a new forgot-password request overwrites it.
type PasswordResetToken struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"uniqueIndex;size:255;not null"`
	Token     string    `gorm:"size:512;not null"`
	CreatedAt time.Time `gorm:"index"`
}
