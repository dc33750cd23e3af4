package booking

import "github.com/BruksfildServices01/appointment-booking/internal/models"

// Occupancy decides which stored appointments hold their slot.
type Occupancy int

const (
	// OccupancyAllStatuses counts every appointment of the day, cancelled
	// ones included.
	OccupancyAllStatuses Occupancy = iota
	// OccupancyActiveOnly ignores cancelled appointments.
	OccupancyActiveOnly
)

func (o Occupancy) Occupies(ap *models.Appointment) bool {
	if o == OccupancyActiveOnly {
		return ap.Status != string(StatusCancelled)
	}
	return true
}

func (o Occupancy) atTime(existing []models.Appointment, hm string) []*models.Appointment {
	var out []*models.Appointment
	for i := range existing {
		ap := &existing[i]
		if ap.Time == hm && o.Occupies(ap) {
			out = append(out, ap)
		}
	}
	return out
}
