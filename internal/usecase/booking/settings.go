package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	domain "github.com/BruksfildServices01/appointment-booking/internal/domain/booking"
	"github.com/BruksfildServices01/appointment-booking/internal/httperr"
	"github.com/BruksfildServices01/appointment-booking/internal/models"
)

// Settings carries the knobs shared by the booking use cases.
type Settings struct {
	Occupancy       domain.Occupancy
	DefaultInterval int
	Now             func() time.Time
}

func (s Settings) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s Settings) interval(service *models.Service, business *models.Business) int {
	fallback := s.DefaultInterval
	if fallback <= 0 {
		fallback = 30
	}
	return domain.SlotInterval(service, business, fallback)
}

// ======================================================
// LOADERS
// ======================================================

func loadBusiness(ctx context.Context, repo domain.Repository, id string) (*models.Business, error) {
	b, err := repo.GetBusiness(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrNotFound("business_not_found")
	}
	if err != nil {
		return nil, httperr.Upstream("get business", err)
	}
	return b, nil
}

func loadService(ctx context.Context, repo domain.Repository, businessID, id string) (*models.Service, error) {
	s, err := repo.GetService(ctx, businessID, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrNotFound("service_not_found")
	}
	if err != nil {
		return nil, httperr.Upstream("get service", err)
	}
	return s, nil
}

func loadEmployee(ctx context.Context, repo domain.Repository, businessID, id string) (*models.Employee, error) {
	e, err := repo.GetEmployee(ctx, businessID, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrNotFound("employee_not_found")
	}
	if err != nil {
		return nil, httperr.Upstream("get employee", err)
	}
	return e, nil
}

func loadAppointment(ctx context.Context, repo domain.Repository, id string) (*models.Appointment, error) {
	ap, err := repo.GetAppointment(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}
	if err != nil {
		return nil, httperr.Upstream("get appointment", err)
	}
	return ap, nil
}

// bookableDate parses date in the business location and rejects days before
// today.
func bookableDate(date string, loc *time.Location, now time.Time) (time.Time, error) {
	d, err := domain.ParseDate(strings.TrimSpace(date), loc)
	if err != nil {
		return time.Time{}, httperr.ErrValidation("invalid_date")
	}
	if domain.FormatDate(d) < domain.FormatDate(now.In(loc)) {
		return time.Time{}, httperr.ErrValidation("date_in_past")
	}
	return d, nil
}
