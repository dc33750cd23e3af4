package booking

import (
	"github.com/BruksfildServices01/appointment-booking/internal/httperr"
	"github.com/BruksfildServices01/appointment-booking/internal/models"
)

// FilterAvailable drops slots that the appointments of the same date already
// hold.
//
// For a service bound to a selected employee, a slot is taken when that
// employee has an appointment at the same time. For a staff-agnostic service,
// a slot is taken when the number of appointments at that time reaches the
// staff count; this is a headcount, it does not check which employees are
// busy. A business with no staff never loses slots this way.
func FilterAvailable(
	slots []string,
	existing []models.Appointment,
	service *models.Service,
	employee *models.Employee,
	staff []models.Employee,
	occ Occupancy,
) []string {

	out := make([]string, 0, len(slots))
	for _, hm := range slots {
		if !slotTaken(hm, existing, service, employee, len(staff), occ) {
			out = append(out, hm)
		}
	}
	return out
}

func slotTaken(
	hm string,
	existing []models.Appointment,
	service *models.Service,
	employee *models.Employee,
	totalStaff int,
	occ Occupancy,
) bool {

	if service.RequiresEmployee {
		if employee == nil {
			return false
		}
		for _, ap := range occ.atTime(existing, hm) {
			if ap.StaffID() == employee.ID {
				return true
			}
		}
		return false
	}

	busy := len(occ.atTime(existing, hm))
	return totalStaff > 0 && busy >= totalStaff
}

// Reserve re-checks hm against a fresh snapshot of the day and returns the
// employee the appointment goes to. Staff-agnostic services get the first
// employee, in staff order, without an appointment at hm; the result is nil
// when the business has no staff.
func Reserve(
	hm string,
	existing []models.Appointment,
	service *models.Service,
	employee *models.Employee,
	staff []models.Employee,
	occ Occupancy,
) (*models.Employee, error) {

	if slotTaken(hm, existing, service, employee, len(staff), occ) {
		return nil, httperr.ErrConflict("slot_taken")
	}

	if service.RequiresEmployee {
		return employee, nil
	}

	busy := make(map[string]bool)
	for _, ap := range occ.atTime(existing, hm) {
		if id := ap.StaffID(); id != "" {
			busy[id] = true
		}
	}

	for i := range staff {
		if !busy[staff[i].ID] {
			assigned := staff[i]
			return &assigned, nil
		}
	}
	return nil, nil
}
