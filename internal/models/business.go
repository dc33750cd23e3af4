package models

import (
	"time"

	"gorm.io/gorm"
)

type Business struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	OwnerID string `gorm:"size:36;uniqueIndex;not null" json:"owner_id"`

	Name        string `gorm:"size:100;not null;index" json:"name"`
	Address     string `gorm:"size:255" json:"address"`
	Phone       string `gorm:"size:20" json:"phone"`
	Description string `gorm:"type:text" json:"description"`
	LogoURL     string `gorm:"size:512" json:"logo_url"`

	OpeningHours        []OpeningHour `gorm:"serializer:json;type:jsonb" json:"opening_hours"`
	AppointmentInterval int           `gorm:"default:30" json:"appointment_interval"`
	Timezone            string        `gorm:"size:64" json:"timezone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Business) BeforeCreate(*gorm.DB) error {
	ensureID(&b.ID)
	return nil
}
