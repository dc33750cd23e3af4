package dto

import "github.com/BruksfildServices01/appointment-booking/internal/models"

type UserDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Role       string `json:"role"`
	BusinessID string `json:"business_id,omitempty"`
}

func User(u *models.User) UserDTO {
	out := UserDTO{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Phone: u.Phone,
		Role:  u.Role,
	}
	if u.BusinessID != nil {
		out.BusinessID = *u.BusinessID
	}
	return out
}
