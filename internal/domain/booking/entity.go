package booking

import (
	"time"

	"github.com/BruksfildServices01/appointment-booking/internal/httperr"
	"github.com/BruksfildServices01/appointment-booking/internal/models"
)

func Confirm(ap *models.Appointment, now time.Time) error {
	if err := CanTransition(Status(ap.Status), StatusConfirmed); err != nil {
		return err
	}
	ap.Status = string(StatusConfirmed)
	ap.ConfirmedAt = &now
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanTransition(Status(ap.Status), StatusCancelled); err != nil {
		return err
	}
	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanTransition(Status(ap.Status), StatusCompleted); err != nil {
		return err
	}
	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// CanReview allows one review per completed appointment, by its customer.
func CanReview(ap *models.Appointment, customerID string) error {
	if ap.CustomerID != customerID {
		return httperr.ErrNotFound("appointment_not_found")
	}
	if Status(ap.Status) != StatusCompleted || ap.HasReview {
		return httperr.ErrBusiness("review_not_allowed")
	}
	return nil
}
