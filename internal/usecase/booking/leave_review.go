package booking

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/appointment-booking/internal/audit"
	domain "github.com/BruksfildServices01/appointment-booking/internal/domain/booking"
	"github.com/BruksfildServices01/appointment-booking/internal/httperr"
	"github.com/BruksfildServices01/appointment-booking/internal/models"
)

type LeaveReviewInput struct {
	CustomerID    string
	CustomerName  string
	AppointmentID string
	Rating        int
	Comment       string
}

type LeaveReview struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewLeaveReview(repo domain.Repository, audit *audit.Dispatcher) *LeaveReview {
	return &LeaveReview{repo: repo, audit: audit}
}

func (uc *LeaveReview) Execute(
	ctx context.Context,
	in LeaveReviewInput,
) (*models.Review, error) {

	if in.Rating < 1 || in.Rating > 5 {
		return nil, httperr.ErrValidation("invalid_rating")
	}

	ap, err := loadAppointment(ctx, uc.repo, in.AppointmentID)
	if err != nil {
		return nil, err
	}
	if err := domain.CanReview(ap, in.CustomerID); err != nil {
		return nil, err
	}

	apID := ap.ID
	review := &models.Review{
		BusinessID:    ap.BusinessID,
		CustomerID:    in.CustomerID,
		CustomerName:  in.CustomerName,
		AppointmentID: &apID,
		ServiceName:   ap.ServiceName,
		Rating:        in.Rating,
		Comment:       strings.TrimSpace(in.Comment),
	}

	ap.HasReview = true
	if err := uc.repo.CreateReview(ctx, review, ap); err != nil {
		ap.HasReview = false
		// a concurrent review won the unique index on appointment_id
		if httperr.IsUniqueViolation(err) {
			return nil, httperr.ErrBusiness("review_not_allowed")
		}
		return nil, httperr.Upstream("create review", err)
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: ap.BusinessID,
		UserID:     in.CustomerID,
		Action:     "review_created",
		Entity:     "review",
		EntityID:   review.ID,
	})

	return review, nil
}
