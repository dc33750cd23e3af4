package booking

import (
	"context"
	"errors"
	"sort"
	"time"

	domain "github.com/BruksfildServices01/appointment-booking/internal/domain/booking"
	"github.com/BruksfildServices01/appointment-booking/internal/httperr"
	"github.com/BruksfildServices01/appointment-booking/internal/models"
	"github.com/BruksfildServices01/appointment-booking/internal/timezone"
)

type ListCustomerAppointments struct {
	repo     domain.Repository
	settings Settings
}

func NewListCustomerAppointments(repo domain.Repository, settings Settings) *ListCustomerAppointments {
	return &ListCustomerAppointments{repo: repo, settings: settings}
}

// Execute lists the customer's appointments, newest first. With upcoming set
// it keeps only pending appointments that start after now in their
// business's timezone, soonest first.
func (uc *ListCustomerAppointments) Execute(
	ctx context.Context,
	customerID string,
	upcoming bool,
) ([]models.Appointment, error) {

	items, err := uc.repo.ListCustomerAppointments(ctx, customerID)
	if err != nil {
		return nil, httperr.Upstream("list customer appointments", err)
	}
	if !upcoming {
		return items, nil
	}

	now := uc.settings.now()
	locations := map[string]*time.Location{}

	out := make([]models.Appointment, 0, len(items))
	for _, ap := range items {
		if domain.Status(ap.Status) != domain.StatusPending {
			continue
		}

		loc, ok := locations[ap.BusinessID]
		if !ok {
			loc, err = uc.location(ctx, ap.BusinessID)
			if err != nil {
				return nil, err
			}
			locations[ap.BusinessID] = loc
		}

		local := now.In(loc)
		today := domain.FormatDate(local)
		if ap.Date > today || (ap.Date == today && ap.Time > domain.FormatHM(domain.MinuteOfDay(local))) {
			out = append(out, ap)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

// location falls back to the default zone for businesses that no longer
// exist.
func (uc *ListCustomerAppointments) location(ctx context.Context, businessID string) (*time.Location, error) {
	business, err := uc.repo.GetBusiness(ctx, businessID)
	if errors.Is(err, domain.ErrNotFound) {
		return timezone.Default(), nil
	}
	if err != nil {
		return nil, httperr.Upstream("load business", err)
	}
	return timezone.Location(business.Timezone), nil
}

// --------------------------------------------------
// Favorites
// --------------------------------------------------

const favoriteLimit = 5

type FavoriteBusiness struct {
	Business     *models.Business `json:"business"`
	Appointments int64            `json:"appointments"`
}

// ListFavoriteBusinesses returns the businesses a customer booked with most.
type ListFavoriteBusinesses struct {
	repo domain.Repository
}

func NewListFavoriteBusinesses(repo domain.Repository) *ListFavoriteBusinesses {
	return &ListFavoriteBusinesses{repo: repo}
}

func (uc *ListFavoriteBusinesses) Execute(
	ctx context.Context,
	customerID string,
) ([]FavoriteBusiness, error) {

	visits, err := uc.repo.TopBusinesses(ctx, customerID, favoriteLimit)
	if err != nil {
		return nil, httperr.Upstream("rank businesses", err)
	}

	out := make([]FavoriteBusiness, 0, len(visits))
	for _, v := range visits {
		business, err := uc.repo.GetBusiness(ctx, v.BusinessID)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, httperr.Upstream("load business", err)
		}
		out = append(out, FavoriteBusiness{Business: business, Appointments: v.Count})
	}
	return out, nil
}

// ListAppointmentsByDate returns a business's appointments for one day; an
// empty date means today in the business location.
type ListAppointmentsByDate struct {
	repo     domain.Repository
	settings Settings
}

func NewListAppointmentsByDate(repo domain.Repository, settings Settings) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{repo: repo, settings: settings}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	businessID string,
	date string,
) ([]models.Appointment, error) {

	business, err := loadBusiness(ctx, uc.repo, businessID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(business.Timezone)
	day := domain.FormatDate(uc.settings.now().In(loc))
	if date != "" {
		d, err := domain.ParseDate(date, loc)
		if err != nil {
			return nil, httperr.ErrValidation("invalid_date")
		}
		day = domain.FormatDate(d)
	}

	items, err := uc.repo.ListAppointmentsByDate(ctx, business.ID, day)
	if err != nil {
		return nil, httperr.Upstream("list appointments", err)
	}
	return items, nil
}
