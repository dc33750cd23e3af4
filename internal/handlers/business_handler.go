package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointment-booking/internal/audit"
	"github.com/BruksfildServices01/appointment-booking/internal/cache"
	"github.com/BruksfildServices01/appointment-booking/internal/config"
	"github.com/BruksfildServices01/appointment-booking/internal/domain/booking"
	"github.com/BruksfildServices01/appointment-booking/internal/httperr"
	"github.com/BruksfildServices01/appointment-booking/internal/middleware"
	"github.com/BruksfildServices01/appointment-booking/internal/models"
	"github.com/BruksfildServices01/appointment-booking/internal/storage"
	"github.com/BruksfildServices01/appointment-booking/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type BusinessHandler struct {
	db     *gorm.DB
	config *config.Config
	cache  *cache.BusinessCache
	images *storage.Images
	audit  *audit.Dispatcher
}

func NewBusinessHandler(
	db *gorm.DB,
	cfg *config.Config,
	cache *cache.BusinessCache,
	images *storage.Images,
	audit *audit.Dispatcher,
) *BusinessHandler {
	return &BusinessHandler{
		db:     db,
		config: cfg,
		cache:  cache,
		images: images,
		audit:  audit,
	}
}

// --------- Requests ---------

type CreateBusinessRequest struct {
	Name                string               `json:"name" binding:"required"`
	Address             string               `json:"address"`
	Phone               string               `json:"phone"`
	Description         string               `json:"description"`
	Timezone            string               `json:"timezone"`
	AppointmentInterval int                  `json:"appointment_interval" binding:"omitempty,min=5,max=480"`
	OpeningHours        []models.OpeningHour `json:"opening_hours"`
}

type UpdateBusinessRequest struct {
	Name                *string `json:"name,omitempty"`
	Address             *string `json:"address,omitempty"`
	Phone               *string `json:"phone,omitempty"`
	Description         *string `json:"description,omitempty"`
	Timezone            *string `json:"timezone,omitempty"`
	AppointmentInterval *int    `json:"appointment_interval,omitempty" binding:"omitempty,min=5,max=480"`
}

type OpeningHoursRequest struct {
	OpeningHours []models.OpeningHour `json:"opening_hours"`
}

// --------- Handlers ---------

func (h *BusinessHandler) Create(c *gin.Context) {
	var req CreateBusinessRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := booking.ValidateOpeningHours(req.OpeningHours); err != nil {
		httperr.Respond(c, err)
		return
	}

	tz := strings.TrimSpace(req.Timezone)
	if tz == "" {
		tz = h.config.DefaultTimezone
	}
	if !timezone.IsValid(tz) {
		httperr.Respond(c, httperr.ErrValidation("invalid_timezone"))
		return
	}

	interval := req.AppointmentInterval
	if interval == 0 {
		interval = h.config.DefaultIntervalMinutes
	}

	user := mustUser(c)
	biz := models.Business{
		OwnerID:             user.ID,
		Name:                strings.TrimSpace(req.Name),
		Address:             req.Address,
		Phone:               req.Phone,
		Description:         req.Description,
		OpeningHours:        req.OpeningHours,
		AppointmentInterval: interval,
		Timezone:            tz,
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&biz).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", user.ID).
			Update("business_id", biz.ID).Error
	})
	if err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Respond(c, httperr.ErrConflict("business_exists"))
			return
		}
		respondStore(c, "create business", err)
		return
	}

	// the caller's token has no business yet
	token, err := middleware.IssueToken(h.config, &models.User{
		ID:   user.ID,
		Name: user.Name,
		Role: user.Role,
	}, biz.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	writeAudit(h.audit, c, biz.ID, "business_created", "business", biz.ID, nil)

	c.JSON(http.StatusCreated, gin.H{
		"business": biz,
		"token":    token,
	})
}

func (h *BusinessHandler) Get(c *gin.Context) {
	biz, ok := ownedBusiness(c, h.db)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, biz)
}

func (h *BusinessHandler) Update(c *gin.Context) {
	biz, ok := ownedBusiness(c, h.db)
	if !ok {
		return
	}

	var req UpdateBusinessRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.Respond(c, httperr.ErrValidation("invalid_request"))
			return
		}
		biz.Name = name
	}
	if req.Address != nil {
		biz.Address = *req.Address
	}
	if req.Phone != nil {
		biz.Phone = *req.Phone
	}
	if req.Description != nil {
		biz.Description = *req.Description
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.Respond(c, httperr.ErrValidation("invalid_timezone"))
			return
		}
		biz.Timezone = *req.Timezone
	}
	if req.AppointmentInterval != nil {
		biz.AppointmentInterval = *req.AppointmentInterval
	}

	h.save(c, biz, "business_updated")
}

func (h *BusinessHandler) UpdateOpeningHours(c *gin.Context) {
	biz, ok := ownedBusiness(c, h.db)
	if !ok {
		return
	}

	var req OpeningHoursRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := booking.ValidateOpeningHours(req.OpeningHours); err != nil {
		httperr.Respond(c, err)
		return
	}

	biz.OpeningHours = req.OpeningHours
	h.save(c, biz, "opening_hours_updated")
}

func (h *BusinessHandler) UploadLogo(c *gin.Context) {
	biz, ok := ownedBusiness(c, h.db)
	if !ok {
		return
	}

	url, ok := uploadImage(c, h.images, storage.FolderLogos)
	if !ok {
		return
	}

	biz.LogoURL = url
	h.save(c, biz, "logo_updated")
}

// Delete removes the business with its catalog, staff, absences,
// appointments and reviews, and detaches it from the owner. Audit logs are
// kept.
func (h *BusinessHandler) Delete(c *gin.Context) {
	biz, ok := ownedBusiness(c, h.db)
	if !ok {
		return
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{
			&models.Review{},
			&models.Appointment{},
			&models.Absence{},
			&models.Employee{},
			&models.Service{},
		} {
			if err := tx.Where("business_id = ?", biz.ID).Delete(model).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(biz).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", biz.OwnerID).
			Update("business_id", nil).Error
	})
	if err != nil {
		respondStore(c, "delete business", err)
		return
	}

	h.cache.Invalidate(c.Request.Context(), biz.ID)
	writeAudit(h.audit, c, biz.ID, "business_deleted", "business", biz.ID, gin.H{"name": biz.Name})

	c.Status(http.StatusNoContent)
}

func (h *BusinessHandler) save(c *gin.Context, biz *models.Business, action string) {
	if err := h.db.WithContext(c.Request.Context()).Save(biz).Error; err != nil {
		respondStore(c, "update business", err)
		return
	}

	h.cache.Invalidate(c.Request.Context(), biz.ID)
	writeAudit(h.audit, c, biz.ID, action, "business", biz.ID, nil)

	c.JSON(http.StatusOK, biz)
}
