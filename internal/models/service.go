package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ServiceAvailable   = "available"
	ServiceUnavailable = "unavailable"
	ServiceOnRequest   = "on_request"
)

type Service struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	BusinessID string `gorm:"size:36;index;not null" json:"business_id"`

	Name          string   `gorm:"size:100;not null" json:"name"`
	Description   string   `gorm:"type:text" json:"description"`
	Price         float64  `json:"price"`
	DiscountPrice *float64 `json:"discount_price"`
	Category      string   `gorm:"size:50" json:"category"`
	DurationMin   int      `json:"duration"`
	Availability  string   `gorm:"size:20;default:'available'" json:"availability"`
	Tags          []string `gorm:"serializer:json;type:jsonb" json:"tags"`
	ImageURL      string   `gorm:"size:512" json:"image_url"`

	RequiresEmployee bool `gorm:"default:false" json:"requires_employee"`
	IsFeatured       bool `gorm:"default:false" json:"is_featured"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Service) BeforeCreate(*gorm.DB) error {
	ensureID(&s.ID)
	return nil
}
