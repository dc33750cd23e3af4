package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointment-booking/internal/dto"
	"github.com/BruksfildServices01/appointment-booking/internal/httperr"
	"github.com/BruksfildServices01/appointment-booking/internal/httpresp"
	bookinguc "github.com/BruksfildServices01/appointment-booking/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db *gorm.DB

	confirmBooking *bookinguc.ConfirmBooking
	listCustomer   *bookinguc.ListCustomerAppointments
	favorites      *bookinguc.ListFavoriteBusinesses
	cancel         *bookinguc.CancelAppointment
	leaveReview    *bookinguc.LeaveReview
	listByDate     *bookinguc.ListAppointmentsByDate
	updateStatus   *bookinguc.UpdateAppointmentStatus
}

func NewAppointmentHandler(
	db *gorm.DB,
	confirmBooking *bookinguc.ConfirmBooking,
	listCustomer *bookinguc.ListCustomerAppointments,
	favorites *bookinguc.ListFavoriteBusinesses,
	cancel *bookinguc.CancelAppointment,
	leaveReview *bookinguc.LeaveReview,
	listByDate *bookinguc.ListAppointmentsByDate,
	updateStatus *bookinguc.UpdateAppointmentStatus,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:             db,
		confirmBooking: confirmBooking,
		listCustomer:   listCustomer,
		favorites:      favorites,
		cancel:         cancel,
		leaveReview:    leaveReview,
		listByDate:     listByDate,
		updateStatus:   updateStatus,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ServiceID  string `json:"service_id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Notes      string `json:"notes"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ======================================================
// CUSTOMER
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	user := mustUser(c)
	ap, err := h.confirmBooking.Execute(c.Request.Context(), bookinguc.ConfirmBookingInput{
		CustomerID:   user.ID,
		CustomerName: user.Name,
		BusinessID:   c.Param("id"),
		ServiceID:    req.ServiceID,
		EmployeeID:   req.EmployeeID,
		Date:         req.Date,
		Time:         req.Time,
		Notes:        req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ListMine lists the caller's appointments; ?upcoming=1 keeps pending ones
// that have not started yet.
func (h *AppointmentHandler) ListMine(c *gin.Context) {
	upcoming, _ := strconv.ParseBool(c.DefaultQuery("upcoming", "false"))

	items, err := h.listCustomer.Execute(c.Request.Context(), mustUser(c).ID, upcoming)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, dto.AppointmentList(items))
}

func (h *AppointmentHandler) Favorites(c *gin.Context) {
	items, err := h.favorites.Execute(c.Request.Context(), mustUser(c).ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, items)
}

func (h *AppointmentHandler) CancelMine(c *gin.Context) {
	ap, err := h.cancel.Execute(c.Request.Context(), mustUser(c).ID, c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Review(c *gin.Context) {
	var req ReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	user := mustUser(c)
	review, err := h.leaveReview.Execute(c.Request.Context(), bookinguc.LeaveReviewInput{
		CustomerID:    user.ID,
		CustomerName:  user.Name,
		AppointmentID: c.Param("id"),
		Rating:        req.Rating,
		Comment:       req.Comment,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// ======================================================
// BUSINESS OWNER
// ======================================================

func (h *AppointmentHandler) ListBusiness(c *gin.Context) {
	biz, ok := ownedBusiness(c, h.db)
	if !ok {
		return
	}

	items, err := h.listByDate.Execute(c.Request.Context(), biz.ID, c.Query("date"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, dto.AppointmentList(items))
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.transition(c, bookinguc.ActionConfirm)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, bookinguc.ActionCancel)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, bookinguc.ActionComplete)
}

func (h *AppointmentHandler) transition(c *gin.Context, action bookinguc.Action) {
	biz, ok := ownedBusiness(c, h.db)
	if !ok {
		return
	}

	ap, err := h.updateStatus.Execute(
		c.Request.Context(),
		biz.ID,
		mustUser(c).ID,
		c.Param("id"),
		action,
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}
