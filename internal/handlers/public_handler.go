package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointment-booking/internal/cache"
	"github.com/BruksfildServices01/appointment-booking/internal/httperr"
	"github.com/BruksfildServices01/appointment-booking/internal/httpresp"
	"github.com/BruksfildServices01/appointment-booking/internal/models"
	bookinguc "github.com/BruksfildServices01/appointment-booking/internal/usecase/booking"
)

const searchLimit = 50

// ======================================================
// HANDLER
// ======================================================

type PublicHandler struct {
	db              *gorm.DB
	cache           *cache.BusinessCache
	getAvailability *bookinguc.GetAvailability
}

func NewPublicHandler(
	db *gorm.DB,
	cache *cache.BusinessCache,
	getAvailability *bookinguc.GetAvailability,
) *PublicHandler {
	return &PublicHandler{
		db:              db,
		cache:           cache,
		getAvailability: getAvailability,
	}
}

// ======================================================
// BUSINESSES
// ======================================================

func (h *PublicHandler) Search(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Model(&models.Business{})

	if query := strings.ToLower(strings.TrimSpace(c.Query("query"))); query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(address) LIKE ?",
			like, like, like,
		)
	}

	var list []models.Business
	if err := q.Order("name ASC").Limit(searchLimit).Find(&list).Error; err != nil {
		respondStore(c, "search businesses", err)
		return
	}

	httpresp.List(c, list)
}

func (h *PublicHandler) Get(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	if biz, ok := h.cache.Get(ctx, id); ok {
		c.Header("X-Cache", "HIT")
		httpresp.OK(c, biz)
		return
	}

	biz, ok := h.business(c)
	if !ok {
		return
	}

	h.cache.Set(ctx, biz)
	c.Header("X-Cache", "MISS")
	httpresp.OK(c, biz)
}

// ======================================================
// CATALOG
// ======================================================

func (h *PublicHandler) Services(c *gin.Context) {
	biz, ok := h.business(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := h.db.WithContext(c.Request.Context()).
		Where("business_id = ?", biz.ID).
		Order("is_featured DESC, created_at ASC").
		Find(&services).Error; err != nil {
		respondStore(c, "list services", err)
		return
	}

	httpresp.List(c, services)
}

// Employees lists staff in creation order; service_id keeps only those who
// can perform it.
func (h *PublicHandler) Employees(c *gin.Context) {
	biz, ok := h.business(c)
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

	httpresp.List(c, performers(employees, strings.TrimSpace(c.Query("service_id"))))
}

// performers keeps the employees who can perform serviceID, in order. An
// empty serviceID keeps everyone.
func performers(employees []models.Employee, serviceID string) []models.Employee {
	if serviceID == "" {
		return employees
	}
	out := make([]models.Employee, 0, len(employees))
	for i := range employees {
		if employees[i].CanPerform(serviceID) {
			out = append(out, employees[i])
		}
	}
	return out
}

func (h *PublicHandler) Reviews(c *gin.Context) {
	biz, ok := h.business(c)
	if !ok {
		return
	}

	var reviews []models.Review
	if err := h.db.WithContext(c.Request.Context()).
		Where("business_id = ?", biz.ID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		respondStore(c, "list reviews", err)
		return
	}

	var sum int
	for _, r := range reviews {
		sum += r.Rating
	}
	var average float64
	if len(reviews) > 0 {
		average = float64(sum) / float64(len(reviews))
	}

	c.JSON(http.StatusOK, gin.H{
		"data":    reviews,
		"total":   len(reviews),
		"average": average,
	})
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *PublicHandler) Availability(c *gin.Context) {
	out, err := h.getAvailability.Execute(c.Request.Context(), bookinguc.AvailabilityInput{
		BusinessID: c.Param("id"),
		ServiceID:  c.Query("service_id"),
		EmployeeID: c.Query("employee_id"),
		Date:       c.Query("date"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, out)
}

func (h *PublicHandler) business(c *gin.Context) (*models.Business, bool) {
	var biz models.Business
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ?", c.Param("id")).
		First(&biz).Error; err != nil {
		respondLookup(c, err, "business_not_found")
		return nil, false
	}
	return &biz, true
}
