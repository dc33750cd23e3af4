package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleBusiness = "business"
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	ID         string  `gorm:"primaryKey;size:36" json:"id"`
	BusinessID *string `gorm:"size:36;index" json:"business_id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'customer'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	ensureID(&u.ID)
	return nil
}
