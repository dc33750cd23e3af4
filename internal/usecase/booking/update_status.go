package booking

import (
	"context"

	"github.com/BruksfildServices01/appointment-booking/internal/audit"
	domain "github.com/BruksfildServices01/appointment-booking/internal/domain/booking"
	"github.com/BruksfildServices01/appointment-booking/internal/httperr"
	"github.com/BruksfildServices01/appointment-booking/internal/models"
)

// Action is an owner-side status change.
type Action string

const (
	ActionConfirm  Action = "confirm"
	ActionCancel   Action = "cancel"
	ActionComplete Action = "complete"
)

func (a Action) apply(ap *models.Appointment, settings Settings) error {
	now := settings.now()
	switch a {
	case ActionConfirm:
		return domain.Confirm(ap, now)
	case ActionCancel:
		return domain.Cancel(ap, now)
	case ActionComplete:
		return domain.Complete(ap, now)
	}
	return httperr.ErrValidation("invalid_request")
}

func (a Action) auditAction() string {
	switch a {
	case ActionConfirm:
		return "appointment_confirmed"
	case ActionCancel:
		return "appointment_cancelled"
	default:
		return "appointment_completed"
	}
}

type UpdateAppointmentStatus struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	settings Settings
}

func NewUpdateAppointmentStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	settings Settings,
) *UpdateAppointmentStatus {
	return &UpdateAppointmentStatus{
		repo:     repo,
		audit:    audit,
		settings: settings,
	}
}

func (uc *UpdateAppointmentStatus) Execute(
	ctx context.Context,
	businessID string,
	userID string,
	appointmentID string,
	action Action,
) (*models.Appointment, error) {

	ap, err := loadAppointment(ctx, uc.repo, appointmentID)
	if err != nil {
		return nil, err
	}
	if ap.BusinessID != businessID {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}

	if err := action.apply(ap, uc.settings); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, httperr.Upstream("update appointment", err)
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: businessID,
		UserID:     userID,
		Action:     action.auditAction(),
		Entity:     "appointment",
		EntityID:   ap.ID,
	})

	return ap, nil
}
