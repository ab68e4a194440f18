package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Shift struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Name      string    `gorm:"size:120;not null" json:"name"`
	StartTime string    `gorm:"size:8;not null" json:"start_time"`
	EndTime   string    `gorm:"size:8;not null" json:"end_time"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Shift) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type Attendance struct {
	ID             uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	EmployeeID     uuid.UUID  `gorm:"type:char(36);index;not null" json:"employee_id"`
	AttendanceDate time.Time  `gorm:"index;not null" json:"attendance_date"`
	ClockIn        string     `gorm:"size:8" json:"clock_in,omitempty"`
	ClockOut       string     `gorm:"size:8" json:"clock_out,omitempty"`
	Method         string     `gorm:"size:50;default:facial_recognition" json:"method"`
	ShiftID        *uuid.UUID `gorm:"type:char(36);index" json:"shift_id,omitempty"`
	TotalHours     float64    `gorm:"type:decimal(6,2)" json:"total_hours"`
	IsLate         bool       `gorm:"default:false" json:"is_late"`
	IsAbsent       bool       `gorm:"default:false" json:"is_absent"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (a *Attendance) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

type WeeklyAttendanceLog struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	EmployeeID   uuid.UUID `gorm:"type:char(36);index;not null" json:"employee_id"`
	Week         int       `gorm:"not null" json:"week"`
	Year         int       `gorm:"not null" json:"year"`
	TotalMinutes int       `gorm:"default:0" json:"total_minutes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (w *WeeklyAttendanceLog) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

type MonthlyAttendanceLog struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	EmployeeID   uuid.UUID `gorm:"type:char(36);index;not null" json:"employee_id"`
	Month        int       `gorm:"not null" json:"month"`
	Year         int       `gorm:"not null" json:"year"`
	TotalMinutes int       `gorm:"default:0" json:"total_minutes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (m *MonthlyAttendanceLog) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
