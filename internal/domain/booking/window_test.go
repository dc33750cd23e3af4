package booking

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/appointment-booking/internal/httperr"
	"github.com/BruksfildServices01/appointment-booking/internal/models"
)

// 2026-06-08 is a Monday.
var monday = time.Date(2026, 6, 8, 0, 0, 0, 0, time.UTC)

func testBusiness() *models.Business {
	return &models.Business{
		ID: "biz-1",
		OpeningHours: []models.OpeningHour{
			{Day: "Monday", From: "09:00", To: "17:00"},
			{Day: "Tuesday", From: "09:00", To: "17:00"},
		},
		AppointmentInterval: 30,
	}
}

func TestResolveWindowBusinessHours(t *testing.T) {
	w, ok, err := ResolveWindow(monday, testBusiness(), nil, nil)
	if err != nil || !ok {
		t.Fatalf("expected window, got ok=%v err=%v", ok, err)
	}
	if w.From != 9*60 || w.To != 17*60 {
		t.Fatalf("unexpected window %+v", w)
	}
}

func TestResolveWindowNoEntryForWeekday(t *testing.T) {
	// Every day without an entry yields no window.
	biz := testBusiness()
	for d := 0; d < 7; d++ {
		date := monday.AddDate(0, 0, d)
		_, ok, err := ResolveWindow(date, biz, nil, nil)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", date.Weekday(), err)
		}
		open := date.Weekday() == time.Monday || date.Weekday() == time.Tuesday
		if ok != open {
			t.Fatalf("%s: expected ok=%v, got %v", date.Weekday(), open, ok)
		}
	}
}

func TestResolveWindowEmployeeOverride(t *testing.T) {
	emp := &models.Employee{
		ID:           "emp-1",
		OpeningHours: []models.OpeningHour{{Day: "Monday", From: "12:00", To: "15:00"}},
	}

	w, ok, err := ResolveWindow(monday, testBusiness(), emp, nil)
	if err != nil || !ok {
		t.Fatalf("expected window, got ok=%v err=%v", ok, err)
	}
	if w.From != 12*60 || w.To != 15*60 {
		t.Fatalf("expected employee hours, got %+v", w)
	}

	// No employee entry on Tuesday: business hours apply.
	w, ok, err = ResolveWindow(monday.AddDate(0, 0, 1), testBusiness(), emp, nil)
	if err != nil || !ok {
		t.Fatalf("expected window, got ok=%v err=%v", ok, err)
	}
	if w.From != 9*60 {
		t.Fatalf("expected business hours, got %+v", w)
	}
}

func TestResolveWindowApprovedAbsenceWins(t *testing.T) {
	emp := &models.Employee{
		ID:           "emp-1",
		OpeningHours: []models.OpeningHour{{Day: "Monday", From: "12:00", To: "15:00"}},
	}

	cases := []struct {
		name    string
		absence models.Absence
		open    bool
	}{
		{"approved covering", models.Absence{EmployeeID: "emp-1", Status: models.AbsenceApproved, StartDate: "2026-06-01", EndDate: "2026-06-08"}, false},
		{"approved single day", models.Absence{EmployeeID: "emp-1", Status: models.AbsenceApproved, StartDate: "2026-06-08", EndDate: "2026-06-08"}, false},
		{"pending", models.Absence{EmployeeID: "emp-1", Status: models.AbsencePending, StartDate: "2026-06-01", EndDate: "2026-06-30"}, true},
		{"rejected", models.Absence{EmployeeID: "emp-1", Status: models.AbsenceRejected, StartDate: "2026-06-01", EndDate: "2026-06-30"}, true},
		{"other employee", models.Absence{EmployeeID: "emp-2", Status: models.AbsenceApproved, StartDate: "2026-06-01", EndDate: "2026-06-30"}, true},
		{"ends before", models.Absence{EmployeeID: "emp-1", Status: models.AbsenceApproved, StartDate: "2026-06-01", EndDate: "2026-06-07"}, true},
	}

	for _, tc := range cases {
		_, ok, err := ResolveWindow(monday, testBusiness(), emp, []models.Absence{tc.absence})
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if ok != tc.open {
			t.Fatalf("%s: expected open=%v, got %v", tc.name, tc.open, ok)
		}
	}
}

func TestResolveWindowMalformedHours(t *testing.T) {
	biz := &models.Business{OpeningHours: []models.OpeningHour{{Day: "Monday", From: "9am", To: "17:00"}}}
	_, _, err := ResolveWindow(monday, biz, nil, nil)
	if !httperr.IsBusiness(err, "invalid_hours") {
		t.Fatalf("expected invalid_hours, got %v", err)
	}
}

func TestValidateOpeningHours(t *testing.T) {
	cases := []struct {
		name  string
		hours []models.OpeningHour
		code  string
	}{
		{"ok", []models.OpeningHour{{Day: "Monday", From: "09:00", To: "17:00"}, {Day: "Friday", From: "08:00", To: "12:00"}}, ""},
		{"duplicate", []models.OpeningHour{{Day: "Monday", From: "09:00", To: "12:00"}, {Day: "Monday", From: "13:00", To: "17:00"}}, "duplicate_day"},
		{"bad day", []models.OpeningHour{{Day: "Funday", From: "09:00", To: "17:00"}}, "invalid_hours"},
		{"bad time", []models.OpeningHour{{Day: "Monday", From: "09:00", To: "25:00"}}, "invalid_hours"},
		{"inverted", []models.OpeningHour{{Day: "Monday", From: "17:00", To: "09:00"}}, "invalid_hours"},
	}

	for _, tc := range cases {
		err := ValidateOpeningHours(tc.hours)
		if tc.code == "" && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if tc.code != "" && !httperr.IsBusiness(err, tc.code) {
			t.Fatalf("%s: expected %s, got %v", tc.name, tc.code, err)
		}
	}
}
