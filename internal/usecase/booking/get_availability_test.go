package booking

import (
	"context"
	"testing"
	"time"

	domain "github.com/BruksfildServices01/appointment-booking/internal/domain/booking"
	"github.com/BruksfildServices01/appointment-booking/internal/httperr"
	"github.com/BruksfildServices01/appointment-booking/internal/models"
)

func availabilityInput() AvailabilityInput {
	return AvailabilityInput{BusinessID: "biz-1", ServiceID: "svc-open", Date: bookingDay}
}

func TestGetAvailabilityFullDay(t *testing.T) {
	uc := NewGetAvailability(seededRepo(), testSettings())

	got, err := uc.Execute(context.Background(), availabilityInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Slots) != 17 || got.Interval != 30 {
		t.Fatalf("expected 17 slots of 30 minutes, got %d of %d", len(got.Slots), got.Interval)
	}
}

func TestGetAvailabilityToday(t *testing.T) {
	settings := testSettings()
	settings.Now = func() time.Time { return time.Date(2026, 6, 8, 10, 5, 0, 0, time.UTC) }
	uc := NewGetAvailability(seededRepo(), settings)

	got, err := uc.Execute(context.Background(), availabilityInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Slots[0] != "10:30" {
		t.Fatalf("expected first slot 10:30, got %v", got.Slots)
	}
}

func TestGetAvailabilityClosedDay(t *testing.T) {
	uc := NewGetAvailability(seededRepo(), testSettings())

	in := availabilityInput()
	in.Date = "2026-06-07"
	got, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Slots == nil || len(got.Slots) != 0 {
		t.Fatalf("expected empty, non-nil slots, got %#v", got.Slots)
	}
}

func TestGetAvailabilityHeadcount(t *testing.T) {
	r := seededRepo()
	r.appointments = []*models.Appointment{
		{ID: "x1", BusinessID: "biz-1", Date: bookingDay, Time: "11:00", Status: "pending"},
	}
	uc := NewGetAvailability(r, testSettings())

	got, _ := uc.Execute(context.Background(), availabilityInput())
	if !hasSlot(got.Slots, "11:00") {
		t.Fatal("one of two staff busy must keep 11:00")
	}

	r.appointments = append(r.appointments, &models.Appointment{ID: "x2", BusinessID: "biz-1", Date: bookingDay, Time: "11:00", Status: "confirmed"})
	got, _ = uc.Execute(context.Background(), availabilityInput())
	if hasSlot(got.Slots, "11:00") {
		t.Fatal("two of two staff busy must drop 11:00")
	}
}

func TestGetAvailabilityOccupancyPolicy(t *testing.T) {
	r := seededRepo()
	r.appointments = []*models.Appointment{
		{ID: "x1", BusinessID: "biz-1", Date: bookingDay, Time: "11:00", Status: "cancelled"},
		{ID: "x2", BusinessID: "biz-1", Date: bookingDay, Time: "11:00", Status: "pending"},
	}

	got, _ := NewGetAvailability(r, testSettings()).Execute(context.Background(), availabilityInput())
	if hasSlot(got.Slots, "11:00") {
		t.Fatal("cancelled appointments occupy by default")
	}

	settings := testSettings()
	settings.Occupancy = domain.OccupancyActiveOnly
	got, _ = NewGetAvailability(r, settings).Execute(context.Background(), availabilityInput())
	if !hasSlot(got.Slots, "11:00") {
		t.Fatal("cancelled appointments must be ignored with OccupancyActiveOnly")
	}
}

func TestGetAvailabilityEmployeeHoursAndAbsence(t *testing.T) {
	r := seededRepo()
	r.employees[0].OpeningHours = []models.OpeningHour{{Day: "Monday", From: "12:00", To: "14:00"}}
	uc := NewGetAvailability(r, testSettings())

	in := availabilityInput()
	in.ServiceID = "svc-bound"
	in.EmployeeID = "emp-a"

	got, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Slots) != 3 || got.Slots[0] != "12:00" || got.Interval != 60 {
		t.Fatalf("expected 12:00-14:00 hourly, got %v / %d", got.Slots, got.Interval)
	}

	r.absences = []models.Absence{{BusinessID: "biz-1", EmployeeID: "emp-a", StartDate: bookingDay, EndDate: bookingDay, Status: models.AbsenceApproved}}
	got, _ = uc.Execute(context.Background(), in)
	if len(got.Slots) != 0 {
		t.Fatalf("absent employee must have no slots, got %v", got.Slots)
	}
}

func TestGetAvailabilityValidation(t *testing.T) {
	uc := NewGetAvailability(seededRepo(), testSettings())

	in := availabilityInput()
	in.ServiceID = ""
	if _, err := uc.Execute(context.Background(), in); !httperr.IsBusiness(err, "missing_service") {
		t.Fatalf("expected missing_service, got %v", err)
	}

	in = availabilityInput()
	in.Date = "2026-05-01"
	if _, err := uc.Execute(context.Background(), in); !httperr.IsBusiness(err, "date_in_past") {
		t.Fatalf("expected date_in_past, got %v", err)
	}

	in = availabilityInput()
	in.ServiceID = "svc-bound"
	in.EmployeeID = "ghost"
	if _, err := uc.Execute(context.Background(), in); !httperr.IsBusiness(err, "employee_not_found") {
		t.Fatalf("expected employee_not_found, got %v", err)
	}
}

func hasSlot(slots []string, hm string) bool {
	for _, s := range slots {
		if s == hm {
			return true
		}
	}
	return false
}

func TestGetAvailabilityEmployeeMustPerformService(t *testing.T) {
	r := seededRepo()
	r.employees[1].ServiceIDs = []string{"svc-open"}
	uc := NewGetAvailability(r, testSettings())

	in := availabilityInput()
	in.ServiceID = "svc-bound"
	in.EmployeeID = "emp-b"
	if _, err := uc.Execute(context.Background(), in); !httperr.IsBusiness(err, "employee_not_found") {
		t.Fatalf("expected employee_not_found, got %v", err)
	}
}
