package models

import "time"

// PendingRegistration holds everything needed to materialize a user once
// their email is confirmed. One live record per email; a new signup or
// resend replaces it.
type PendingRegistration struct {
	ID           uint      `gorm:"primaryKey"`
	Email        string    `gorm:"uniqueIndex;size:255;not null"`
	Name         string    `gorm:"size:255;not null"`
	Phone        string    `gorm:"size:50"`
	PasswordHash string    `gorm:"size:255;not null"`
	Code         string    `gorm:"size:6;not null"`
	ExpiresAt    time.Time `gorm:"index;not null"`
	CreatedAt    time.Time
}
