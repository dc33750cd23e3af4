package models

import (
	"time"

	"gorm.io/gorm"
)

type Employee struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	BusinessID string `gorm:"size:36;index;not null" json:"business_id"`

	Name     string `gorm:"size:100;not null" json:"name"`
	Role     string `gorm:"size:50" json:"role"`
	Phone    string `gorm:"size:20" json:"phone"`
	ImageURL string `gorm:"size:512" json:"image_url"`

	ServiceIDs   []string      `gorm:"serializer:json;type:jsonb" json:"service_ids"`
	OpeningHours []OpeningHour `gorm:"serializer:json;type:jsonb" json:"opening_hours"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *Employee) BeforeCreate(*gorm.DB) error {
	ensureID(&e.ID)
	return nil
}

// CanPerform reports whether the employee lists serviceID. An empty list
// means the employee was never restricted.
func (e *Employee) CanPerform(serviceID string) bool {
	if len(e.ServiceIDs) == 0 {
		return true
	}
	for _, id := range e.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}
