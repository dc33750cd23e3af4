package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointment-booking/internal/audit"
	"github.com/BruksfildServices01/appointment-booking/internal/domain/booking"
	"github.com/BruksfildServices01/appointment-booking/internal/httperr"
	"github.com/BruksfildServices01/appointment-booking/internal/models"
)

type AbsenceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewAbsenceHandler(db *gorm.DB, audit *audit.Dispatcher) *AbsenceHandler {
	return &AbsenceHandler{db: db, audit: audit}
}

// --------- Requests ---------

type CreateAbsenceRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	Type       string `json:"type" binding:"omitempty,oneof=vacation sick personal other"`
	Reason     string `json:"reason"`
	Notes      string `json:"notes"`
}

type UpdateAbsenceRequest struct {
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	Type      *string `json:"type,omitempty" binding:"omitempty,oneof=vacation sick personal other"`
	Reason    *string `json:"reason,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// apply edits a pending absence. Settled absences are read-only.
func (req UpdateAbsenceRequest) apply(a *models.Absence) error {
	if a.Status != models.AbsencePending {
		return httperr.ErrBusiness("invalid_state")
	}

	start, end := a.StartDate, a.EndDate
	if req.StartDate != nil {
		start = *req.StartDate
	}
	if req.EndDate != nil {
		end = *req.EndDate
	}
	if err := validateRange(start, end); err != nil {
		return err
	}

	a.StartDate, a.EndDate = start, end
	if req.Type != nil {
		a.Type = *req.Type
	}
	if req.Reason != nil {
		a.Reason = *req.Reason
	}
	if req.Notes != nil {
		a.Notes = *req.Notes
	}
	return nil
}

// settle approves or rejects a pending absence.
func settle(a *models.Absence, status, userID string, now time.Time) error {
	if a.Status != models.AbsencePending {
		return httperr.ErrBusiness("invalid_state")
	}
	a.Status = status
	a.ApprovedBy = &userID
	a.ApprovedAt = &now
	return nil
}

// validateRange checks both ends are calendar dates and start <= end.
func validateRange(start, end string) error {
	s, err := booking.ParseDate(start, time.UTC)
	if err != nil {
		return httperr.ErrValidation("invalid_date")
	}
	e, err := booking.ParseDate(end, time.UTC)
	if err != nil {
		return httperr.ErrValidation("invalid_date")
	}
	if e.Before(s) {
		return httperr.ErrValidation("invalid_range")
	}
	return nil
}

// --------- Handlers ---------

func (h *AbsenceHandler) List(c *gin.Context) {
	biz, ok := ownedBusiness(c, h.db)
	if !ok {
		return
	}

	q := h.db.WithContext(c.Request.Context()).Where("business_id = ?", biz.ID)
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("status = ?", status)
	}
	if employeeID := strings.TrimSpace(c.Query("employee_id")); employeeID != "" {
		q = q.Where("employee_id = ?", employeeID)
	}

	var absences []models.Absence
	if err := q.Order("start_date DESC").Find(&absences).Error; err != nil {
		respondStore(c, "list absences", err)
		return
	}

	c.JSON(http.StatusOK, absences)
}

func (h *AbsenceHandler) Create(c *gin.Context) {
	biz, ok := ownedBusiness(c, h.db)
	if !ok {
		return
	}

	var req CreateAbsenceRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := validateRange(req.StartDate, req.EndDate); err != nil {
		httperr.Respond(c, err)
		return
	}

	var emp models.Employee
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND business_id = ?", req.EmployeeID, biz.ID).
		First(&emp).Error; err != nil {
		respondLookup(c, err, "employee_not_found")
		return
	}

	kind := req.Type
	if kind == "" {
		kind = models.AbsenceOther
	}

	absence := models.Absence{
		BusinessID:   biz.ID,
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Type:         kind,
		Status:       models.AbsencePending,
		Reason:       req.Reason,
		Notes:        req.Notes,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&absence).Error; err != nil {
		respondStore(c, "create absence", err)
		return
	}

	writeAudit(h.audit, c, biz.ID, "absence_created", "absence", absence.ID, gin.H{
		"employee_id": emp.ID,
		"start_date":  absence.StartDate,
		"end_date":    absence.EndDate,
	})

	c.JSON(http.StatusCreated, absence)
}

func (h *AbsenceHandler) Update(c *gin.Context) {
	biz, absence, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateAbsenceRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := req.apply(absence); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Save(absence).Error; err != nil {
		respondStore(c, "update absence", err)
		return
	}

	writeAudit(h.audit, c, biz.ID, "absence_updated", "absence", absence.ID, gin.H{
		"start_date": absence.StartDate,
		"end_date":   absence.EndDate,
	})

	c.JSON(http.StatusOK, absence)
}

func (h *AbsenceHandler) Approve(c *gin.Context) {
	h.decide(c, models.AbsenceApproved, "absence_approved")
}

func (h *AbsenceHandler) Reject(c *gin.Context) {
	h.decide(c, models.AbsenceRejected, "absence_rejected")
}

// decide settles a pending absence. Only approved absences block
// availability.
func (h *AbsenceHandler) decide(c *gin.Context, status, action string) {
	biz, absence, ok := h.load(c)
	if !ok {
		return
	}

	if err := settle(absence, status, mustUser(c).ID, time.Now()); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Save(absence).Error; err != nil {
		respondStore(c, "update absence", err)
		return
	}

	writeAudit(h.audit, c, biz.ID, action, "absence", absence.ID, gin.H{"employee_id": absence.EmployeeID})

	c.JSON(http.StatusOK, absence)
}

func (h *AbsenceHandler) Delete(c *gin.Context) {
	biz, absence, ok := h.load(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(absence).Error; err != nil {
		respondStore(c, "delete absence", err)
		return
	}

	writeAudit(h.audit, c, biz.ID, "absence_deleted", "absence", absence.ID, nil)

	c.Status(http.StatusNoContent)
}

func (h *AbsenceHandler) load(c *gin.Context) (*models.Business, *models.Absence, bool) {
	biz, ok := ownedBusiness(c, h.db)
	if !ok {
		return nil, nil, false
	}

	var absence models.Absence
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND business_id = ?", c.Param("id"), biz.ID).
		First(&absence).Error; err != nil {
		respondLookup(c, err, "absence_not_found")
		return nil, nil, false
	}
	return biz, &absence, true
}
