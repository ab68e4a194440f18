package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaveType struct {
	ID               uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Name             string    `gorm:"size:120;not null" json:"name"`
	Description      string    `gorm:"size:500" json:"description,omitempty"`
	MaxDaysPerYear   int       `gorm:"not null" json:"max_days_per_year"`
	RequiresApproval bool      `gorm:"default:true" json:"requires_approval"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (t *LeaveType) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type LeaveBalance struct {
	ID            uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	EmployeeID    uuid.UUID `gorm:"type:char(36);index;not null" json:"employee_id"`
	LeaveTypeID   uuid.UUID `gorm:"type:char(36);index;not null" json:"leave_type_id"`
	TotalEntitled int       `gorm:"not null" json:"total_entitled"`
	Used          int       `gorm:"default:0" json:"used"`
	Remaining     int       `gorm:"default:0" json:"remaining"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (b *LeaveBalance) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

type LeaveRequest struct {
	ID              uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	EmployeeID      uuid.UUID  `gorm:"type:char(36);index;not null" json:"employee_id"`
	LeaveTypeID     uuid.UUID  `gorm:"type:char(36);index;not null" json:"leave_type_id"`
	StartDate       time.Time  `gorm:"not null" json:"start_date"`
	EndDate         time.Time  `gorm:"not null" json:"end_date"`
	TotalDays       int        `gorm:"not null" json:"total_days"`
	Reason          string     `gorm:"size:500" json:"reason,omitempty"`
	RejectionReason string     `gorm:"size:500" json:"rejection_reason,omitempty"`
	Status          string     `gorm:"size:20;index;default:pending" json:"status"`
	ApprovedBy      *uuid.UUID `gorm:"type:char(36)" json:"approved_by,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (r *LeaveRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
