package booking

import (
	"time"

	"github.com/BruksfildServices01/appointment-booking/internal/models"
)

// GenerateSlots lists slot starts from w.From to w.To inclusive, stepping by
// interval minutes. The close time itself is a slot start, so a slot may
// begin exactly at closing. When date is the current day of now, only
// slots strictly after now's hour:minute are kept.
func GenerateSlots(w Window, interval int, date string, now time.Time) []string {
	if interval <= 0 || w.To < w.From {
		return []string{}
	}

	isToday := date == FormatDate(now)
	nowMin := MinuteOfDay(now)

	slots := make([]string, 0, (w.To-w.From)/interval+1)
	for m := w.From; m <= w.To; m += interval {
		if isToday && m <= nowMin {
			continue
		}
		slots = append(slots, FormatHM(m))
	}
	return slots
}

// SlotInterval picks the service duration, then the business interval, then
// fallback.
func SlotInterval(service *models.Service, business *models.Business, fallback int) int {
	if service != nil && service.DurationMin > 0 {
		return service.DurationMin
	}
	if business != nil && business.AppointmentInterval > 0 {
		return business.AppointmentInterval
	}
	return fallback
}
