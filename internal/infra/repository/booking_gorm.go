package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/appointment-booking/internal/domain/booking"
	"github.com/BruksfildServices01/appointment-booking/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

var _ domain.Repository = (*BookingGormRepository)(nil)

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// --------------------------------------------------
// Business / catalog
// --------------------------------------------------

func (r *BookingGormRepository) GetBusiness(
	ctx context.Context,
	businessID string,
) (*models.Business, error) {

	var b models.Business
	if err := r.db.WithContext(ctx).
		Where("id = ?", businessID).
		First(&b).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	businessID string,
	serviceID string,
) (*models.Service, error) {

	var s models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", serviceID, businessID).
		First(&s).Error; err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *BookingGormRepository) GetEmployee(
	ctx context.Context,
	businessID string,
	employeeID string,
) (*models.Employee, error) {

	var e models.Employee
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", employeeID, businessID).
		First(&e).Error; err != nil {
		return nil, notFound(err)
	}
	return &e, nil
}

func (r *BookingGormRepository) ListEmployees(
	ctx context.Context,
	businessID string,
) ([]models.Employee, error) {

	var list []models.Employee
	err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("created_at ASC, id ASC").
		Find(&list).Error
	return list, err
}

func (r *BookingGormRepository) ListApprovedAbsences(
	ctx context.Context,
	businessID string,
	employeeID string,
) ([]models.Absence, error) {

	var list []models.Absence
	err := r.db.WithContext(ctx).
		Where(
			"business_id = ? AND employee_id = ? AND status = ?",
			businessID,
			employeeID,
			models.AbsenceApproved,
		).
		Order("start_date ASC").
		Find(&list).Error
	return list, err
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *BookingGormRepository) ListAppointmentsByDate(
	ctx context.Context,
	businessID string,
	date string,
) ([]models.Appointment, error) {

	var list []models.Appointment
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND date = ?", businessID, date).
		Order("time ASC, created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *BookingGormRepository) ListCustomerAppointments(
	ctx context.Context,
	customerID string,
) ([]models.Appointment, error) {

	var list []models.Appointment
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("date DESC, time DESC").
		Find(&list).Error
	return list, err
}

func (r *BookingGormRepository) TopBusinesses(
	ctx context.Context,
	customerID string,
	limit int,
) ([]domain.BusinessVisits, error) {

	var list []domain.BusinessVisits
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Select("business_id, COUNT(*) AS count").
		Where("customer_id = ?", customerID).
		Group("business_id").
		Order("count DESC, business_id ASC").
		Limit(limit).
		Scan(&list).Error
	return list, err
}

func (r *BookingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *BookingGormRepository) GetAppointment(
	ctx context.Context,
	appointmentID string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ?", appointmentID).
		First(&ap).Error; err != nil {
		return nil, notFound(err)
	}
	return &ap, nil
}

func (r *BookingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Review
// --------------------------------------------------

func (r *BookingGormRepository) CreateReview(
	ctx context.Context,
	review *models.Review,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return err
		}
		return tx.Model(&models.Appointment{}).
			Where("id = ?", ap.ID).
			Update("has_review", true).Error
	})
}
