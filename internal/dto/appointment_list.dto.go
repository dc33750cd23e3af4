package dto

import "github.com/BruksfildServices01/appointment-booking/internal/models"

type AppointmentListDTO struct {
	ID           string `json:"id"`
	BusinessID   string `json:"business_id"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Duration     int    `json:"duration"`
	Status       string `json:"status"`
	CustomerName string `json:"customer_name"`
	ServiceName  string `json:"service_name"`
	EmployeeID   string `json:"employee_id,omitempty"`
	EmployeeName string `json:"employee_name,omitempty"`
	HasReview    bool   `json:"has_review"`
}

func AppointmentList(items []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(items))
	for i := range items {
		ap := &items[i]
		out = append(out, AppointmentListDTO{
			ID:           ap.ID,
			BusinessID:   ap.BusinessID,
			Date:         ap.Date,
			Time:         ap.Time,
			Duration:     ap.DurationMin,
			Status:       ap.Status,
			CustomerName: ap.CustomerName,
			ServiceName:  ap.ServiceName,
			EmployeeID:   ap.StaffID(),
			EmployeeName: ap.EmployeeName,
			HasReview:    ap.HasReview,
		})
	}
	return out
}
