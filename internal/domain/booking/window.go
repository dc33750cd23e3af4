package booking

import (
	"time"

	"github.com/BruksfildServices01/appointment-booking/internal/httperr"
	"github.com/BruksfildServices01/appointment-booking/internal/models"
)

// Window is an opening interval in minutes after midnight. To is a valid
// slot start.
type Window struct {
	From int
	To   int
}

var weekdays = map[string]bool{
	"Sunday": true, "Monday": true, "Tuesday": true, "Wednesday": true,
	"Thursday": true, "Friday": true, "Saturday": true,
}

// ResolveWindow returns the window that applies on date. An approved absence
// of the employee wins over any configured hours; the employee's own entry
// for the weekday wins over the business entry.
func ResolveWindow(
	date time.Time,
	business *models.Business,
	employee *models.Employee,
	absences []models.Absence,
) (Window, bool, error) {

	day := WeekdayName(date)

	if employee != nil {
		if IsAbsent(absences, employee.ID, FormatDate(date)) {
			return Window{}, false, nil
		}
		if oh, ok := findDay(employee.OpeningHours, day); ok {
			return parseWindow(oh)
		}
	}

	if business == nil {
		return Window{}, false, nil
	}

	oh, ok := findDay(business.OpeningHours, day)
	if !ok {
		return Window{}, false, nil
	}
	return parseWindow(oh)
}

func IsAbsent(absences []models.Absence, employeeID, date string) bool {
	for i := range absences {
		a := &absences[i]
		if a.EmployeeID == employeeID && a.Status == models.AbsenceApproved && a.Covers(date) {
			return true
		}
	}
	return false
}

// ValidateOpeningHours enforces one entry per weekday with well-formed times.
func ValidateOpeningHours(hours []models.OpeningHour) error {
	seen := make(map[string]bool, len(hours))
	for _, oh := range hours {
		if !weekdays[oh.Day] {
			return httperr.ErrValidation("invalid_hours")
		}
		if seen[oh.Day] {
			return httperr.ErrValidation("duplicate_day")
		}
		seen[oh.Day] = true

		w, _, err := parseWindow(oh)
		if err != nil {
			return err
		}
		if w.To < w.From {
			return httperr.ErrValidation("invalid_hours")
		}
	}
	return nil
}

func findDay(hours []models.OpeningHour, day string) (models.OpeningHour, bool) {
	for _, oh := range hours {
		if oh.Day == day {
			return oh, true
		}
	}
	return models.OpeningHour{}, false
}

func parseWindow(oh models.OpeningHour) (Window, bool, error) {
	from, err := ParseHM(oh.From)
	if err != nil {
		return Window{}, false, httperr.ErrValidation("invalid_hours")
	}
	to, err := ParseHM(oh.To)
	if err != nil {
		return Window{}, false, httperr.ErrValidation("invalid_hours")
	}
	return Window{From: from, To: to}, true, nil
}
