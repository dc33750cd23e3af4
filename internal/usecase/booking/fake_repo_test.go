package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/appointment-booking/internal/domain/booking"
	"github.com/BruksfildServices01/appointment-booking/internal/models"
)

type fakeRepo struct {
	businesses   map[string]*models.Business
	services     map[string]*models.Service
	employees    []models.Employee
	absences     []models.Absence
	appointments []*models.Appointment
	reviews      []*models.Review

	calls      int
	failGet    error
	failReview error
	seq        int
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		businesses: map[string]*models.Business{},
		services:   map[string]*models.Service{},
	}
}

func (r *fakeRepo) GetBusiness(_ context.Context, id string) (*models.Business, error) {
	r.calls++
	if r.failGet != nil {
		return nil, r.failGet
	}
	b, ok := r.businesses[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeRepo) GetService(_ context.Context, businessID, id string) (*models.Service, error) {
	r.calls++
	s, ok := r.services[id]
	if !ok || s.BusinessID != businessID {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeRepo) GetEmployee(_ context.Context, businessID, id string) (*models.Employee, error) {
	r.calls++
	for _, e := range r.employees {
		if e.ID == id && e.BusinessID == businessID {
			cp := e
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRepo) ListEmployees(_ context.Context, businessID string) ([]models.Employee, error) {
	r.calls++
	var out []models.Employee
	for _, e := range r.employees {
		if e.BusinessID == businessID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListApprovedAbsences(_ context.Context, businessID, employeeID string) ([]models.Absence, error) {
	r.calls++
	var out []models.Absence
	for _, a := range r.absences {
		if a.BusinessID == businessID && a.EmployeeID == employeeID && a.Status == models.AbsenceApproved {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListAppointmentsByDate(_ context.Context, businessID, date string) ([]models.Appointment, error) {
	r.calls++
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.BusinessID == businessID && ap.Date == date {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListCustomerAppointments(_ context.Context, customerID string) ([]models.Appointment, error) {
	r.calls++
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.CustomerID == customerID {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) TopBusinesses(_ context.Context, customerID string, limit int) ([]domain.BusinessVisits, error) {
	r.calls++
	counts := map[string]int64{}
	for _, ap := range r.appointments {
		if ap.CustomerID == customerID {
			counts[ap.BusinessID]++
		}
	}

	out := make([]domain.BusinessVisits, 0, len(counts))
	for id, n := range counts {
		out = append(out, domain.BusinessVisits{BusinessID: id, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].BusinessID < out[j].BusinessID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.calls++
	r.seq++
	ap.ID = fmt.Sprintf("ap-%d", r.seq)
	cp := *ap
	r.appointments = append(r.appointments, &cp)
	return nil
}

func (r *fakeRepo) GetAppointment(_ context.Context, id string) (*models.Appointment, error) {
	r.calls++
	for _, ap := range r.appointments {
		if ap.ID == id {
			cp := *ap
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.calls++
	for i, existing := range r.appointments {
		if existing.ID == ap.ID {
			cp := *ap
			r.appointments[i] = &cp
			return nil
		}
	}
	return errors.New("missing appointment")
}

func (r *fakeRepo) CreateReview(ctx context.Context, review *models.Review, ap *models.Appointment) error {
	r.calls++
	if r.failReview != nil {
		return r.failReview
	}
	review.ID = "rev-1"
	r.reviews = append(r.reviews, review)
	return r.UpdateAppointment(ctx, ap)
}

// ======================================================
// FIXTURES
// ======================================================

// 2026-06-01 and 2026-06-08 are Mondays.
var fixedNow = time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

const bookingDay = "2026-06-08"

func testSettings() Settings {
	return Settings{
		Occupancy:       domain.OccupancyAllStatuses,
		DefaultInterval: 30,
		Now:             func() time.Time { return fixedNow },
	}
}

// seededRepo has one business open Monday 09:00-17:00, two staff members, a
// staff-agnostic service and an employee-bound one.
func seededRepo() *fakeRepo {
	r := newFakeRepo()
	r.businesses["biz-1"] = &models.Business{
		ID:                  "biz-1",
		Name:                "Studio",
		OpeningHours:        []models.OpeningHour{{Day: "Monday", From: "09:00", To: "17:00"}},
		AppointmentInterval: 30,
		Timezone:            "UTC",
	}
	r.services["svc-open"] = &models.Service{ID: "svc-open", BusinessID: "biz-1", Name: "Haircut", Availability: models.ServiceAvailable}
	r.services["svc-bound"] = &models.Service{ID: "svc-bound", BusinessID: "biz-1", Name: "Colour", DurationMin: 60, RequiresEmployee: true, Availability: models.ServiceAvailable}
	r.employees = []models.Employee{
		{ID: "emp-a", BusinessID: "biz-1", Name: "Ana"},
		{ID: "emp-b", BusinessID: "biz-1", Name: "Bruno"},
	}
	return r
}

func newConfirm(r *fakeRepo) *ConfirmBooking {
	return NewConfirmBooking(r, nil, zap.NewNop(), testSettings())
}
