package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PerformanceGoal struct {
	ID          uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	EmployeeID  uuid.UUID  `gorm:"type:char(36);index;not null" json:"employee_id"`
	GoalTitle   string     `gorm:"size:255;not null" json:"goal_title"`
	Description string     `gorm:"size:1000" json:"description,omitempty"`
	KpiMetric   string     `gorm:"size:255" json:"kpi_metric,omitempty"`
	Status      string     `gorm:"size:20;default:pending" json:"status"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (g *PerformanceGoal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

type PerformanceReview struct {
	ID         uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	EmployeeID uuid.UUID  `gorm:"type:char(36);index;not null" json:"employee_id"`
	ReviewerID *uuid.UUID `gorm:"type:char(36)" json:"reviewer_id,omitempty"`
	Rating     int        `json:"rating"`
	Comments   string     `gorm:"size:1000" json:"comments,omitempty"`
	ReviewDate *time.Time `json:"review_date,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (r *PerformanceReview) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type Feedback struct {
	ID         uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	EmployeeID uuid.UUID  `gorm:"type:char(36);index;not null" json:"employee_id"`
	AuthorID   *uuid.UUID `gorm:"type:char(36)" json:"author_id,omitempty"`
	Message    string     `gorm:"size:1000;not null" json:"message"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

type PromotionRecommendation struct {
	ID            uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	EmployeeID    uuid.UUID  `gorm:"type:char(36);index;not null" json:"employee_id"`
	RecommendedBy *uuid.UUID `gorm:"type:char(36)" json:"recommended_by,omitempty"`
	Reason        string     `gorm:"size:1000" json:"reason,omitempty"`
	Status        string     `gorm:"size:20;default:pending" json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (p *PromotionRecommendation) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
