package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointment-booking/internal/config"
	"github.com/BruksfildServices01/appointment-booking/internal/domain/booking"
	"github.com/BruksfildServices01/appointment-booking/internal/dto"
	"github.com/BruksfildServices01/appointment-booking/internal/httperr"
	"github.com/BruksfildServices01/appointment-booking/internal/middleware"
	"github.com/BruksfildServices01/appointment-booking/internal/models"
	"github.com/BruksfildServices01/appointment-booking/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
	log    *zap.Logger
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, log: log}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
	Role     string `json:"role" binding:"omitempty,oneof=customer business"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateMeRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// apply copies the set fields onto u, leaving it untouched on error.
// checkDomain enables the MX lookup.
func (req UpdateMeRequest) apply(u *models.User, checkDomain bool) error {
	name, email := u.Name, u.Email

	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
		if name == "" {
			return httperr.ErrValidation("invalid_request")
		}
	}
	if req.Email != nil {
		email = validators.NormalizeEmail(*req.Email)
		if !validators.IsEmailSyntaxValid(email) {
			return httperr.ErrValidation("invalid_email")
		}
		if checkDomain && !validators.IsEmailDomainValid(email) {
			return httperr.ErrValidation("invalid_email")
		}
	}

	u.Name, u.Email = name, email
	if req.Phone != nil {
		u.Phone = strings.TrimSpace(*req.Phone)
	}
	return nil
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	email := validators.NormalizeEmail(req.Email)
	if !validators.IsEmailSyntaxValid(email) {
		httperr.Respond(c, httperr.ErrValidation("invalid_email"))
		return
	}
	if h.config.IsProduction() && !validators.IsEmailDomainValid(email) {
		httperr.Respond(c, httperr.ErrValidation("invalid_email"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleCustomer
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        strings.TrimSpace(req.Phone),
		Role:         role,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&user).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Respond(c, httperr.ErrConflict("email_exists"))
			return
		}
		respondStore(c, "create user", err)
		return
	}

	token, err := middleware.IssueToken(h.config, &user, "")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.log.Info("user registered", zap.String("user_id", user.ID), zap.String("role", user.Role))

	c.JSON(http.StatusCreated, gin.H{
		"user":  dto.User(&user),
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	email := validators.NormalizeEmail(req.Email)

	var user models.User
	err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", email).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.Unauthorized(c, "invalid_credentials", httperr.Message("invalid_credentials", c.GetHeader("Accept-Language")))
		return
	}
	if err != nil {
		respondStore(c, "find user", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", httperr.Message("invalid_credentials", c.GetHeader("Accept-Language")))
		return
	}

	var businessID string
	if user.BusinessID != nil {
		businessID = *user.BusinessID
	}

	token, err := middleware.IssueToken(h.config, &user, businessID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  dto.User(&user),
		"token": token,
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.User(user))
}

// UpdateMe edits the caller's profile and returns a token carrying the new
// name.
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req UpdateMeRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := req.apply(user, h.config.IsProduction()); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Save(user).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Respond(c, httperr.ErrConflict("email_exists"))
			return
		}
		respondStore(c, "update user", err)
		return
	}

	var businessID string
	if user.BusinessID != nil {
		businessID = *user.BusinessID
	}

	token, err := middleware.IssueToken(h.config, user, businessID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  dto.User(user),
		"token": token,
	})
}

// DeleteMe removes the caller's account. Owners must delete their business
// first. A customer's open appointments are cancelled so their slots free
// up; past records keep the customer name they were booked with.
func (h *AuthHandler) DeleteMe(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	var owned int64
	if err := h.db.WithContext(ctx).
		Model(&models.Business{}).
		Where("owner_id = ?", user.ID).
		Count(&owned).Error; err != nil {
		respondStore(c, "count businesses", err)
		return
	}
	if owned > 0 {
		httperr.Respond(c, httperr.ErrConflict("delete_business_first"))
		return
	}

	var cancelled int64
	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Appointment{}).
			Where("customer_id = ? AND status IN ?", user.ID, []string{
				string(booking.StatusPending),
				string(booking.StatusConfirmed),
			}).
			Updates(map[string]any{
				"status":       string(booking.StatusCancelled),
				"cancelled_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		cancelled = res.RowsAffected
		return tx.Delete(user).Error
	})
	if err != nil {
		respondStore(c, "delete user", err)
		return
	}

	h.log.Info("user deleted",
		zap.String("user_id", user.ID),
		zap.Int64("cancelled_appointments", cancelled),
	)

	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) currentUser(c *gin.Context) (*models.User, bool) {
	var user models.User
	err := h.db.WithContext(c.Request.Context()).
		Where("id = ?", mustUser(c).ID).
		First(&user).Error
	if err != nil {
		respondLookup(c, err, "user_not_found")
		return nil, false
	}
	return &user, true
}
