package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointment-booking/internal/audit"
	"github.com/BruksfildServices01/appointment-booking/internal/models"
	"github.com/BruksfildServices01/appointment-booking/internal/storage"
)

type ServiceHandler struct {
	db     *gorm.DB
	images *storage.Images
	audit  *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, images *storage.Images, audit *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{db: db, images: images, audit: audit}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name             string   `json:"name" binding:"required"`
	Description      string   `json:"description"`
	Price            float64  `json:"price" binding:"required,gt=0"`
	DiscountPrice    *float64 `json:"discount_price" binding:"omitempty,gt=0"`
	Category         string   `json:"category"`
	Duration         int      `json:"duration" binding:"required,min=1"`
	Availability     string   `json:"availability" binding:"omitempty,oneof=available unavailable on_request"`
	Tags             []string `json:"tags"`
	RequiresEmployee bool     `json:"requires_employee"`
	IsFeatured       bool     `json:"is_featured"`
}

type UpdateServiceRequest struct {
	Name             *string   `json:"name,omitempty"`
	Description      *string   `json:"description,omitempty"`
	Price            *float64  `json:"price,omitempty" binding:"omitempty,gt=0"`
	DiscountPrice    *float64  `json:"discount_price,omitempty" binding:"omitempty,gt=0"`
	Category         *string   `json:"category,omitempty"`
	Duration         *int      `json:"duration,omitempty" binding:"omitempty,min=1"`
	Availability     *string   `json:"availability,omitempty" binding:"omitempty,oneof=available unavailable on_request"`
	Tags             *[]string `json:"tags,omitempty"`
	RequiresEmployee *bool     `json:"requires_employee,omitempty"`
	IsFeatured       *bool     `json:"is_featured,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	biz, ok := ownedBusiness(c, h.db)
	if !ok {
		return
	}

	q := h.db.WithContext(c.Request.Context()).Where("business_id = ?", biz.ID)

	if category := strings.ToLower(strings.TrimSpace(c.Query("category"))); category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}
	if query := strings.ToLower(strings.TrimSpace(c.Query("query"))); query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("created_at ASC").Find(&services).Error; err != nil {
		respondStore(c, "list services", err)
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	biz, ok := ownedBusiness(c, h.db)
	if !ok {
		return
	}

	var req CreateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	availability := req.Availability
	if availability == "" {
		availability = models.ServiceAvailable
	}

	svc := models.Service{
		BusinessID:       biz.ID,
		Name:             strings.TrimSpace(req.Name),
		Description:      req.Description,
		Price:            req.Price,
		DiscountPrice:    req.DiscountPrice,
		Category:         req.Category,
		DurationMin:      req.Duration,
		Availability:     availability,
		Tags:             req.Tags,
		RequiresEmployee: req.RequiresEmployee,
		IsFeatured:       req.IsFeatured,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&svc).Error; err != nil {
		respondStore(c, "create service", err)
		return
	}

	writeAudit(h.audit, c, biz.ID, "service_created", "service", svc.ID, gin.H{"name": svc.Name})

	c.JSON(http.StatusCreated, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	biz, svc, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Name != nil {
		svc.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.DiscountPrice != nil {
		svc.DiscountPrice = req.DiscountPrice
	}
	if req.Category != nil {
		svc.Category = *req.Category
	}
	if req.Duration != nil {
		svc.DurationMin = *req.Duration
	}
	if req.Availability != nil {
		svc.Availability = *req.Availability
	}
	if req.Tags != nil {
		svc.Tags = *req.Tags
	}
	if req.RequiresEmployee != nil {
		svc.RequiresEmployee = *req.RequiresEmployee
	}
	if req.IsFeatured != nil {
		svc.IsFeatured = *req.IsFeatured
	}

	if err := h.db.WithContext(c.Request.Context()).Save(svc).Error; err != nil {
		respondStore(c, "update service", err)
		return
	}

	writeAudit(h.audit, c, biz.ID, "service_updated", "service", svc.ID, nil)

	c.JSON(http.StatusOK, svc)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	biz, svc, ok := h.load(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(svc).Error; err != nil {
		respondStore(c, "delete service", err)
		return
	}

	writeAudit(h.audit, c, biz.ID, "service_deleted", "service", svc.ID, gin.H{"name": svc.Name})

	c.Status(http.StatusNoContent)
}

func (h *ServiceHandler) UploadImage(c *gin.Context) {
	biz, svc, ok := h.load(c)
	if !ok {
		return
	}

	url, ok := uploadImage(c, h.images, storage.FolderServices)
	if !ok {
		return
	}

	svc.ImageURL = url
	if err := h.db.WithContext(c.Request.Context()).Save(svc).Error; err != nil {
		respondStore(c, "update service", err)
		return
	}

	writeAudit(h.audit, c, biz.ID, "service_image_updated", "service", svc.ID, nil)

	c.JSON(http.StatusOK, svc)
}

func (h *ServiceHandler) load(c *gin.Context) (*models.Business, *models.Service, bool) {
	biz, ok := ownedBusiness(c, h.db)
	if !ok {
		return nil, nil, false
	}

	var svc models.Service
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND business_id = ?", c.Param("id"), biz.ID).
		First(&svc).Error; err != nil {
		respondLookup(c, err, "service_not_found")
		return nil, nil, false
	}
	return biz, &svc, true
}
