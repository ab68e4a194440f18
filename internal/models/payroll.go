package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SalaryComponent struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Name      string    `gorm:"size:120;not null" json:"name"`
	Type      string    `gorm:"size:50;not null" json:"type"`
	IsTaxable bool      `gorm:"default:false" json:"is_taxable"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *SalaryComponent) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type EmployeeSalary struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	EmployeeID  uuid.UUID `gorm:"type:char(36);index;not null" json:"employee_id"`
	ComponentID uuid.UUID `gorm:"type:char(36);index;not null" json:"component_id"`
	Amount      float64   `gorm:"type:decimal(12,2);not null" json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (s *EmployeeSalary) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type Payroll struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	StartDate    time.Time `gorm:"not null" json:"start_date"`
	EndDate      time.Time `gorm:"not null" json:"end_date"`
	PayrollMonth string    `gorm:"size:20;not null" json:"payroll_month"`
	Status       string    `gorm:"size:20;default:pending" json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (p *Payroll) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type Payslip struct {
	ID              uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	PayrollID       uuid.UUID `gorm:"type:char(36);index;not null" json:"payroll_id"`
	EmployeeID      uuid.UUID `gorm:"type:char(36);index;not null" json:"employee_id"`
	TotalEarnings   float64   `gorm:"type:decimal(12,2);not null" json:"total_earnings"`
	TotalDeductions float64   `gorm:"type:decimal(12,2);not null" json:"total_deductions"`
	NetPay          float64   `gorm:"type:decimal(12,2);not null" json:"net_pay"`
	Remarks         string    `gorm:"size:500" json:"remarks,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (p *Payslip) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type TaxStatement struct {
	ID            uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	EmployeeID    uuid.UUID `gorm:"type:char(36);index;not null" json:"employee_id"`
	PayrollID     uuid.UUID `gorm:"type:char(36);index;not null" json:"payroll_id"`
	GrossIncome   float64   `gorm:"type:decimal(12,2);not null" json:"gross_income"`
	TaxableIncome float64   `gorm:"type:decimal(12,2);not null" json:"taxable_income"`
	TaxDeducted   float64   `gorm:"type:decimal(12,2);not null" json:"tax_deducted"`
	TaxCode       string    `gorm:"size:50" json:"tax_code,omitempty"`
	StatementDate time.Time `gorm:"not null" json:"statement_date"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (t *TaxStatement) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
