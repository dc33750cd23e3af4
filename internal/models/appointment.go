package models

import (
	"time"

	"gorm.io/gorm"
)

type Appointment struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	BusinessID string `gorm:"size:36;index:idx_appointment_day;not null" json:"business_id"`

	ServiceID   string `gorm:"size:36;not null" json:"service_id"`
	ServiceName string `gorm:"size:100" json:"service_name"`

	EmployeeID   *string `gorm:"size:36" json:"employee_id"`
	EmployeeName string  `gorm:"size:100" json:"employee_name"`

	CustomerID   string `gorm:"size:36;index;not null" json:"customer_id"`
	CustomerName string `gorm:"size:100" json:"customer_name"`

	Date        string `gorm:"size:10;index:idx_appointment_day;not null" json:"date"`
	Time        string `gorm:"size:5;not null" json:"time"`
	DurationMin int    `json:"duration"`

	Status    string `gorm:"size:20;default:'pending'" json:"status"`
	Notes     string `gorm:"size:255" json:"notes"`
	HasReview bool   `gorm:"default:false" json:"has_review"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(*gorm.DB) error {
	ensureID(&a.ID)
	return nil
}

func (a *Appointment) StaffID() string {
	if a.EmployeeID == nil {
		return ""
	}
	return *a.EmployeeID
}
