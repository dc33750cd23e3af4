package booking

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/appointment-booking/internal/domain/booking"
	"github.com/BruksfildServices01/appointment-booking/internal/httperr"
	"github.com/BruksfildServices01/appointment-booking/internal/models"
	"github.com/BruksfildServices01/appointment-booking/internal/timezone"
)

type AvailabilityInput struct {
	BusinessID string
	ServiceID  string
	EmployeeID string
	Date       string
}

type Availability struct {
	Date     string   `json:"date"`
	Interval int      `json:"interval"`
	Slots    []string `json:"slots"`
}

type GetAvailability struct {
	repo     domain.Repository
	settings Settings
}

func NewGetAvailability(repo domain.Repository, settings Settings) *GetAvailability {
	return &GetAvailability{repo: repo, settings: settings}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) (*Availability, error) {

	switch {
	case strings.TrimSpace(in.BusinessID) == "":
		return nil, httperr.ErrValidation("missing_business")
	case strings.TrimSpace(in.ServiceID) == "":
		return nil, httperr.ErrValidation("missing_service")
	case strings.TrimSpace(in.Date) == "":
		return nil, httperr.ErrValidation("missing_date")
	}

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

	service, err := loadService(ctx, uc.repo, business.ID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	interval := uc.settings.interval(service, business)
	result := &Availability{
		Date:     domain.FormatDate(date),
		Interval: interval,
		Slots:    []string{},
	}

	if service.Availability == models.ServiceUnavailable {
		return result, nil
	}

	// Staff selection only matters for services bound to an employee.
	var employee *models.Employee
	var absences []models.Absence
	if service.RequiresEmployee && in.EmployeeID != "" {
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

	window, open, err := domain.ResolveWindow(date, business, employee, absences)
	if err != nil {
		return nil, err
	}
	if !open {
		return result, nil
	}

	slots := domain.GenerateSlots(window, interval, result.Date, now)
	if len(slots) == 0 {
		return result, nil
	}

	existing, err := uc.repo.ListAppointmentsByDate(ctx, business.ID, result.Date)
	if err != nil {
		return nil, httperr.Upstream("list appointments", err)
	}

	staff, err := uc.repo.ListEmployees(ctx, business.ID)
	if err != nil {
		return nil, httperr.Upstream("list employees", err)
	}

	result.Slots = domain.FilterAvailable(
		slots,
		existing,
		service,
		employee,
		staff,
		uc.settings.Occupancy,
	)
	return result, nil
}
