package middleware

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/appointment-booking/internal/config"
	"github.com/BruksfildServices01/appointment-booking/internal/models"
)

type Claims struct {
	Role       string `json:"role"`
	Name       string `json:"name"`
	BusinessID string `json:"businessId,omitempty"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token for user. businessID is empty for
// customers and for owners who have not created their business yet.
func IssueToken(cfg *config.Config, user *models.User, businessID string) (string, error) {
	now := time.Now()
	claims := Claims{
		Role:       user.Role,
		Name:       user.Name,
		BusinessID: businessID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.JWTTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}
