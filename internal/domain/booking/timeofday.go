package booking

import (
	"fmt"
	"strconv"
	"time"
)

const DateLayout = "2006-01-02"

// ParseHM converts a strict "HH:MM" string into minutes after midnight.
func ParseHM(hm string) (int, error) {
	if len(hm) != 5 || hm[2] != ':' || !digits(hm[:2]) || !digits(hm[3:]) {
		return 0, fmt.Errorf("invalid time of day %q", hm)
	}
	h, err := strconv.Atoi(hm[:2])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", hm)
	}
	m, err := strconv.Atoi(hm[3:])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", hm)
	}
	return h*60 + m, nil
}

func FormatHM(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// FormatDate uses the calendar fields of t as they are, without converting
// between locations.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func ParseDate(date string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, loc)
}

func WeekdayName(t time.Time) string {
	return t.Weekday().String()
}

func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
