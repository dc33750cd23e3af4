package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointment-booking/internal/audit"
	"github.com/BruksfildServices01/appointment-booking/internal/domain/booking"
	"github.com/BruksfildServices01/appointment-booking/internal/httperr"
	"github.com/BruksfildServices01/appointment-booking/internal/models"
	"github.com/BruksfildServices01/appointment-booking/internal/storage"
)

type EmployeeHandler struct {
	db     *gorm.DB
	images *storage.Images
	audit  *audit.Dispatcher
}

func NewEmployeeHandler(db *gorm.DB, images *storage.Images, audit *audit.Dispatcher) *EmployeeHandler {
	return &EmployeeHandler{db: db, images: images, audit: audit}
}

// --------- Requests ---------

type EmployeeRequest struct {
	Name         *string               `json:"name,omitempty"`
	Role         *string               `json:"role,omitempty"`
	Phone        *string               `json:"phone,omitempty"`
	ServiceIDs   *[]string             `json:"service_ids,omitempty"`
	OpeningHours *[]models.OpeningHour `json:"opening_hours,omitempty"`
}

// apply copies the set fields onto e, validating hours and service ids.
func (req EmployeeRequest) apply(c *gin.Context, db *gorm.DB, businessID string, e *models.Employee) error {
	if req.Name != nil {
		e.Name = strings.TrimSpace(*req.Name)
	}
	if req.Role != nil {
		e.Role = *req.Role
	}
	if req.Phone != nil {
		e.Phone = *req.Phone
	}
	if req.OpeningHours != nil {
		if err := booking.ValidateOpeningHours(*req.OpeningHours); err != nil {
			return err
		}
		e.OpeningHours = *req.OpeningHours
	}
	if req.ServiceIDs != nil {
		ids, err := resolveServiceIDs(*req.ServiceIDs, func(ids []string) (int64, error) {
			var count int64
			err := db.WithContext(c.Request.Context()).
				Model(&models.Service{}).
				Where("business_id = ? AND id IN ?", businessID, ids).
				Count(&count).Error
			return count, err
		})
		if err != nil {
			return err
		}
		e.ServiceIDs = ids
	}
	if e.Name == "" {
		return httperr.ErrValidation("invalid_request")
	}
	return nil
}

// resolveServiceIDs drops blanks and duplicates, then checks that count
// finds every remaining id in the business.
func resolveServiceIDs(ids []string, count func([]string) (int64, error)) ([]string, error) {
	seen := make(map[string]bool, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return unique, nil
	}

	n, err := count(unique)
	if err != nil {
		return nil, httperr.Upstream("count services", err)
	}
	if int(n) != len(unique) {
		return nil, httperr.ErrNotFound("service_not_found")
	}
	return unique, nil
}

// --------- Handlers ---------

func (h *EmployeeHandler) List(c *gin.Context) {
	biz, ok := ownedBusiness(c, h.db)
	if !ok {
		return
	}

	var employees []models.Employee
	if err := h.db.WithContext(c.Request.Context()).
		Where("business_id = ?", biz.ID).
		Order("created_at ASC, id ASC").
		Find(&employees).Error; err != nil {
		respondStore(c, "list employees", err)
		return
	}

	c.JSON(http.StatusOK, employees)
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	biz, ok := ownedBusiness(c, h.db)
	if !ok {
		return
	}

	var req EmployeeRequest
	if !bindJSON(c, &req) {
		return
	}

	emp := models.Employee{BusinessID: biz.ID}
	if err := req.apply(c, h.db, biz.ID, &emp); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&emp).Error; err != nil {
		respondStore(c, "create employee", err)
		return
	}

	writeAudit(h.audit, c, biz.ID, "employee_created", "employee", emp.ID, gin.H{"name": emp.Name})

	c.JSON(http.StatusCreated, emp)
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	biz, emp, ok := h.load(c)
	if !ok {
		return
	}

	var req EmployeeRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := req.apply(c, h.db, biz.ID, emp); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Save(emp).Error; err != nil {
		respondStore(c, "update employee", err)
		return
	}

	writeAudit(h.audit, c, biz.ID, "employee_updated", "employee", emp.ID, nil)

	c.JSON(http.StatusOK, emp)
}

// Delete removes the employee and their absences. Existing appointments keep
// the employee id and name they were booked with.
func (h *EmployeeHandler) Delete(c *gin.Context) {
	biz, emp, ok := h.load(c)
	if !ok {
		return
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", emp.ID).Delete(&models.Absence{}).Error; err != nil {
			return err
		}
		return tx.Delete(emp).Error
	})
	if err != nil {
		respondStore(c, "delete employee", err)
		return
	}

	writeAudit(h.audit, c, biz.ID, "employee_deleted", "employee", emp.ID, gin.H{"name": emp.Name})

	c.Status(http.StatusNoContent)
}

func (h *EmployeeHandler) UploadImage(c *gin.Context) {
	biz, emp, ok := h.load(c)
	if !ok {
		return
	}

	url, ok := uploadImage(c, h.images, storage.FolderEmployees)
	if !ok {
		return
	}

	emp.ImageURL = url
	if err := h.db.WithContext(c.Request.Context()).Save(emp).Error; err != nil {
		respondStore(c, "update employee", err)
		return
	}

	writeAudit(h.audit, c, biz.ID, "employee_image_updated", "employee", emp.ID, nil)

	c.JSON(http.StatusOK, emp)
}

func (h *EmployeeHandler) load(c *gin.Context) (*models.Business, *models.Employee, bool) {
	biz, ok := ownedBusiness(c, h.db)
	if !ok {
		return nil, nil, false
	}

	var emp models.Employee
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND business_id = ?", c.Param("id"), biz.ID).
		First(&emp).Error; err != nil {
		respondLookup(c, err, "employee_not_found")
		return nil, nil, false
	}
	return biz, &emp, true
}
