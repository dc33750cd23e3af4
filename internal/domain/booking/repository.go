package booking

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/appointment-booking/internal/models"
)

// ErrNotFound is returned by Repository lookups that match nothing.
var ErrNotFound = errors.New("record not found")

// BusinessVisits is the number of appointments a customer booked with one
// business, whatever their status.
type BusinessVisits struct {
	BusinessID string
	Count      int64
}

type Repository interface {
	// -------- Business / catalog --------
	GetBusiness(
		ctx context.Context,
		businessID string,
	) (*models.Business, error)

	GetService(
		ctx context.Context,
		businessID string,
		serviceID string,
	) (*models.Service, error)

	GetEmployee(
		ctx context.Context,
		businessID string,
		employeeID string,
	) (*models.Employee, error)

	// ListEmployees returns staff in creation order.
	ListEmployees(
		ctx context.Context,
		businessID string,
	) ([]models.Employee, error)

	ListApprovedAbsences(
		ctx context.Context,
		businessID string,
		employeeID string,
	) ([]models.Absence, error)

	// -------- Appointment --------
	ListAppointmentsByDate(
		ctx context.Context,
		businessID string,
		date string,
	) ([]models.Appointment, error)

	ListCustomerAppointments(
		ctx context.Context,
		customerID string,
	) ([]models.Appointment, error)

	// TopBusinesses ranks the customer's businesses by appointment count,
	// highest first.
	TopBusinesses(
		ctx context.Context,
		customerID string,
		limit int,
	) ([]BusinessVisits, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		appointmentID string,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Review --------
	// CreateReview stores the review and flags the appointment as reviewed.
	CreateReview(
		ctx context.Context,
		review *models.Review,
		ap *models.Appointment,
	) error
}
