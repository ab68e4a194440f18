package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Document struct {
	ID         uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	EmployeeID uuid.UUID `gorm:"type:char(36);index;not null" json:"employee_id"`
	FilePath   string    `gorm:"size:1024;not null" json:"file_path"`
	Type       string    `gorm:"size:50;not null" json:"type"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

type Announcement struct {
	ID          uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Body        string     `gorm:"type:text;not null" json:"body"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Priority    string     `gorm:"size:20;default:normal" json:"priority"`
	AnnouncerID uuid.UUID  `gorm:"type:char(36);index;not null" json:"announcer_id"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (a *Announcement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

type AuditTrail struct {
	ID          uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	EmployeeID  *uuid.UUID `gorm:"type:char(36);index" json:"employee_id,omitempty"`
	Action      string     `gorm:"size:255;not null" json:"action"`
	TargetTable string     `gorm:"size:120" json:"target_table,omitempty"`
	TargetID    string     `gorm:"size:64" json:"target_id,omitempty"`
	IPAddress   string     `gorm:"size:64" json:"ip_address,omitempty"`
	Details     string     `gorm:"type:text" json:"details,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (t *AuditTrail) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type AnalyticsLog struct {
	ID          uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Description string     `gorm:"size:1000" json:"description,omitempty"`
	Data        string     `gorm:"type:text" json:"data,omitempty"`
	CreatedBy   *uuid.UUID `gorm:"type:char(36)" json:"created_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (l *AnalyticsLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

type Report struct {
	ID          uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	ReportType  string     `gorm:"size:120;not null" json:"report_type"`
	GeneratedBy *uuid.UUID `gorm:"type:char(36)" json:"generated_by,omitempty"`
	Filters     string     `gorm:"type:text" json:"filters,omitempty"`
	GeneratedAt time.Time  `gorm:"not null" json:"generated_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
