package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/appointment-booking/internal/config"
	"github.com/BruksfildServices01/appointment-booking/internal/httperr"
)

const ContextUser = "currentUser"

// User is the authenticated caller as seen by handlers.
type User struct {
	ID         string
	Name       string
	Role       string
	BusinessID string
}

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.HTTPError{Code: "missing_authorization_header", Message: "missing authorization header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.HTTPError{Code: "invalid_authorization_header", Message: "invalid authorization header"})
			return
		}

		var claims Claims
		token, err := jwt.ParseWithClaims(parts[1], &claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.HTTPError{Code: "invalid_token", Message: "invalid or expired token"})
			return
		}

		if claims.Subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.HTTPError{Code: "invalid_token_payload", Message: "invalid token payload"})
			return
		}

		c.Set(ContextUser, User{
			ID:         claims.Subject,
			Name:       claims.Name,
			Role:       claims.Role,
			BusinessID: claims.BusinessID,
		})

		c.Next()
	}
}

// CurrentUser returns the caller set by AuthMiddleware.
func CurrentUser(c *gin.Context) (User, bool) {
	v, ok := c.Get(ContextUser)
	if !ok {
		return User{}, false
	}
	u, ok := v.(User)
	return u, ok
}

// RequireRole lets through callers whose role is one of roles; others get
// 403 with code.
func RequireRole(code string, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.HTTPError{Code: "unauthorized", Message: "authentication required"})
			return
		}

		for _, r := range roles {
			if u.Role == r {
				c.Next()
				return
			}
		}

		httperr.Respond(c, httperr.ErrForbidden(code))
		c.Abort()
	}
}
