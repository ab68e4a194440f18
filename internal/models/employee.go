package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID                    uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	FirstName             string     `gorm:"size:120;not null" json:"first_name"`
	LastName              string     `gorm:"size:120;not null" json:"last_name"`
	Photo                 string     `gorm:"size:2048" json:"photo,omitempty"`
	Email                 string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Phone                 string     `gorm:"size:50" json:"phone,omitempty"`
	Address               string     `gorm:"size:500" json:"address,omitempty"`
	EmergencyContactName  string     `gorm:"size:255" json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string     `gorm:"size:50" json:"emergency_contact_phone,omitempty"`
	Designation           string     `gorm:"size:120;not null" json:"designation"`
	Department            string     `gorm:"size:120;not null" json:"department"`
	ManagerID             *uuid.UUID `gorm:"type:char(36);index" json:"manager_id,omitempty"`
	EmploymentType        string     `gorm:"size:50;not null" json:"employment_type"`
	DateOfJoining         *time.Time `json:"date_of_joining,omitempty"`
	EmployeeCode          string     `gorm:"uniqueIndex;size:50;not null" json:"employee_code"`
	Age                   int        `json:"age,omitempty"`
	DateOfBirth           *time.Time `json:"date_of_birth,omitempty"`
	Role                  string     `gorm:"size:50;not null" json:"role"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
