package booking

import (
	"context"

	"github.com/BruksfildServices01/appointment-booking/internal/audit"
	domain "github.com/BruksfildServices01/appointment-booking/internal/domain/booking"
	"github.com/BruksfildServices01/appointment-booking/internal/httperr"
	"github.com/BruksfildServices01/appointment-booking/internal/models"
)

// CancelAppointment lets a customer cancel one of their own appointments.
type CancelAppointment struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	settings Settings
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	settings Settings,
) *CancelAppointment {
	return &CancelAppointment{
		repo:     repo,
		audit:    audit,
		settings: settings,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	customerID string,
	appointmentID string,
) (*models.Appointment, error) {

	ap, err := loadAppointment(ctx, uc.repo, appointmentID)
	if err != nil {
		return nil, err
	}
	if ap.CustomerID != customerID {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}

	if err := domain.Cancel(ap, uc.settings.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, httperr.Upstream("update appointment", err)
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: ap.BusinessID,
		UserID:     customerID,
		Action:     "appointment_cancelled",
		Entity:     "appointment",
		EntityID:   ap.ID,
		Metadata:   map[string]string{"by": "customer"},
	})

	return ap, nil
}
