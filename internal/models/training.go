package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Course struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"size:1000" json:"description,omitempty"`
	Duration    string    `gorm:"size:50" json:"duration,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type CourseAssignment struct {
	ID          uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	EmployeeID  uuid.UUID  `gorm:"type:char(36);index;not null" json:"employee_id"`
	CourseID    uuid.UUID  `gorm:"type:char(36);index;not null" json:"course_id"`
	Status      string     `gorm:"size:20;default:assigned" json:"status"`
	AssignedAt  *time.Time `json:"assigned_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (a *CourseAssignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

type Certification struct {
	ID              uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	EmployeeID      uuid.UUID  `gorm:"type:char(36);index;not null" json:"employee_id"`
	CertificateName string     `gorm:"size:255;not null" json:"certificate_name"`
	FilePath        string     `gorm:"size:1024" json:"file_path,omitempty"`
	IssuedDate      time.Time  `gorm:"not null" json:"issued_date"`
	CourseID        *uuid.UUID `gorm:"type:char(36);index" json:"course_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (c *Certification) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
