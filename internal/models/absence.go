package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	AbsenceVacation = "vacation"
	AbsenceSick     = "sick"
	AbsencePersonal = "personal"
	AbsenceOther    = "other"

	AbsencePending  = "pending"
	AbsenceApproved = "approved"
	AbsenceRejected = "rejected"
)

type Absence struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	BusinessID string `gorm:"size:36;index:idx_absence_employee;not null" json:"business_id"`

	EmployeeID   string `gorm:"size:36;index:idx_absence_employee;not null" json:"employee_id"`
	EmployeeName string `gorm:"size:100" json:"employee_name"`

	StartDate string `gorm:"size:10;not null" json:"start_date"`
	EndDate   string `gorm:"size:10;not null" json:"end_date"`
	Type      string `gorm:"size:20;default:'other'" json:"type"`
	Status    string `gorm:"size:20;default:'pending'" json:"status"`

	ApprovedBy *string    `gorm:"size:36" json:"approved_by"`
	ApprovedAt *time.Time `json:"approved_at"`

	Reason string `gorm:"size:255" json:"reason"`
	Notes  string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Absence) BeforeCreate(*gorm.DB) error {
	ensureID(&a.ID)
	return nil
}

// Covers reports whether date (YYYY-MM-DD) falls inside the inclusive range.
func (a *Absence) Covers(date string) bool {
	return date >= a.StartDate && date <= a.EndDate
}
