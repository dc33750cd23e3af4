package models

import (
	"time"

	"gorm.io/gorm"
)

type Review struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	BusinessID string `gorm:"size:36;index;not null" json:"business_id"`

	CustomerID    string  `gorm:"size:36;not null" json:"customer_id"`
	CustomerName  string  `gorm:"size:100" json:"customer_name"`
	AppointmentID *string `gorm:"size:36;uniqueIndex" json:"appointment_id"`
	ServiceName   string  `gorm:"size:100" json:"service_name"`

	Rating  int    `json:"rating"`
	Comment string `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
}

func (r *Review) BeforeCreate(*gorm.DB) error {
	ensureID(&r.ID)
	return nil
}
