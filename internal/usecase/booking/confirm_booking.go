package booking

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/appointment-booking/internal/audit"
	domain "github.com/BruksfildServices01/appointment-booking/internal/domain/booking"
	"github.com/BruksfildServices01/appointment-booking/internal/httperr"
	"github.com/BruksfildServices01/appointment-booking/internal/models"
	"github.com/BruksfildServices01/appointment-booking/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type ConfirmBookingInput struct {
	CustomerID   string
	CustomerName string

	BusinessID string
	ServiceID  string
	EmployeeID string

	Date  string
	Time  string
	Notes string
}

func (in ConfirmBookingInput) validate() error {
	switch {
	case strings.TrimSpace(in.CustomerID) == "":
		return httperr.ErrValidation("missing_customer")
	case strings.TrimSpace(in.BusinessID) == "":
		return httperr.ErrValidation("missing_business")
	case strings.TrimSpace(in.ServiceID) == "":
		return httperr.ErrValidation("missing_service")
	case strings.TrimSpace(in.Date) == "":
		return httperr.ErrValidation("missing_date")
	case strings.TrimSpace(in.Time) == "":
		return httperr.ErrValidation("missing_time")
	}

	if _, err := domain.ParseHM(in.Time); err != nil {
		return httperr.ErrValidation("invalid_time")
	}
	return nil
}

// ======================================================
// USE CASE
// ======================================================

type ConfirmBooking struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	log      *zap.Logger
	settings Settings
}

func NewConfirmBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	log *zap.Logger,
	settings Settings,
) *ConfirmBooking {
	return &ConfirmBooking{
		repo:     repo,
		audit:    audit,
		log:      log,
		settings: settings,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ConfirmBooking) Execute(
	ctx context.Context,
	in ConfirmBookingInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Request shape, before any I/O
	// --------------------------------------------------
	if err := in.validate(); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Business and its calendar
	// --------------------------------------------------
	business, err := loadBusiness(ctx, uc.repo, in.BusinessID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(business.Timezone)
	now := uc.settings.now().In(loc)

	date, err := bookableDate(in.Date, loc, now)
	if err != nil {
		return nil, err
	}
	day := domain.FormatDate(date)

	// --------------------------------------------------
	// 3. Service and staff
	// --------------------------------------------------
	service, err := loadService(ctx, uc.repo, business.ID, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if service.Availability == models.ServiceUnavailable {
		return nil, httperr.ErrBusiness("service_unavailable")
	}

	var employee *models.Employee
	var absences []models.Absence
	if service.RequiresEmployee {
		if strings.TrimSpace(in.EmployeeID) == "" {
			return nil, httperr.ErrValidation("employee_required")
		}
		employee, err = loadEmployee(ctx, uc.repo, business.ID, in.EmployeeID)
		if err != nil {
			return nil, err
		}
		if !employee.CanPerform(service.ID) {
			return nil, httperr.ErrNotFound("employee_not_found")
		}
		absences, err = uc.repo.ListApprovedAbsences(ctx, business.ID, employee.ID)
		if err != nil {
			return nil, httperr.Upstream("list absences", err)
		}
	}

	// --------------------------------------------------
	// 4. The time must be one of the offered slots
	// --------------------------------------------------
	interval := uc.settings.interval(service, business)

	window, open, err := domain.ResolveWindow(date, business, employee, absences)
	if err != nil {
		return nil, err
	}
	if !open || !offered(domain.GenerateSlots(window, interval, day, now), in.Time) {
		return nil, httperr.ErrBusiness("outside_opening_hours")
	}

	staff, err := uc.repo.ListEmployees(ctx, business.ID)
	if err != nil {
		return nil, httperr.Upstream("list employees", err)
	}

	// --------------------------------------------------
	// 5. Fresh snapshot of the day, then conflict check
	// --------------------------------------------------
	existing, err := uc.repo.ListAppointmentsByDate(ctx, business.ID, day)
	if err != nil {
		return nil, httperr.Upstream("list appointments", err)
	}

	assigned, err := domain.Reserve(in.Time, existing, service, employee, staff, uc.settings.Occupancy)
	if err != nil {
		uc.audit.Dispatch(audit.Event{
			BusinessID: business.ID,
			UserID:     in.CustomerID,
			Action:     "appointment_conflict",
			Entity:     "appointment",
			Metadata: map[string]string{
				"date":       day,
				"time":       in.Time,
				"service_id": service.ID,
			},
		})
		return nil, err
	}

	// --------------------------------------------------
	// 6. Persist
	// --------------------------------------------------
	ap := &models.Appointment{
		BusinessID:   business.ID,
		ServiceID:    service.ID,
		ServiceName:  service.Name,
		CustomerID:   in.CustomerID,
		CustomerName: in.CustomerName,
		Date:         day,
		Time:         in.Time,
		DurationMin:  interval,
		Status:       string(domain.InitialStatus()),
		Notes:        strings.TrimSpace(in.Notes),
	}
	if assigned != nil {
		id := assigned.ID
		ap.EmployeeID = &id
		ap.EmployeeName = assigned.Name
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, httperr.Upstream("create appointment", err)
	}

	uc.log.Info("appointment booked",
		zap.String("appointment_id", ap.ID),
		zap.String("business_id", business.ID),
		zap.String("date", day),
		zap.String("time", in.Time),
		zap.String("employee_id", ap.StaffID()),
	)

	uc.audit.Dispatch(audit.Event{
		BusinessID: business.ID,
		UserID:     in.CustomerID,
		Action:     "appointment_created",
		Entity:     "appointment",
		EntityID:   ap.ID,
	})

	return ap, nil
}

func offered(slots []string, hm string) bool {
	for _, s := range slots {
		if s == hm {
			return true
		}
	}
	return false
}
