package booking

import (
	"reflect"
	"testing"
	"time"

	"github.com/BruksfildServices01/appointment-booking/internal/models"
)

var nineToFive = Window{From: 9 * 60, To: 17 * 60}

func TestGenerateSlotsInclusiveClose(t *testing.T) {
	now := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	slots := GenerateSlots(nineToFive, 30, "2026-06-08", now)

	if len(slots) != 17 {
		t.Fatalf("expected 17 slots, got %d: %v", len(slots), slots)
	}
	if slots[0] != "09:00" || slots[len(slots)-1] != "17:00" {
		t.Fatalf("unexpected boundary slots: %v", slots)
	}
}

func TestGenerateSlotsTodaySkipsPast(t *testing.T) {
	now := time.Date(2026, 6, 8, 10, 5, 0, 0, time.UTC)
	slots := GenerateSlots(nineToFive, 30, "2026-06-08", now)

	for _, gone := range []string{"09:00", "09:30", "10:00"} {
		for _, s := range slots {
			if s == gone {
				t.Fatalf("expected %s to be excluded, got %v", gone, slots)
			}
		}
	}
	if slots[0] != "10:30" {
		t.Fatalf("expected first slot 10:30, got %v", slots)
	}
	if len(slots) != 14 {
		t.Fatalf("expected 14 slots, got %d", len(slots))
	}
}

func TestGenerateSlotsExactlyNowExcluded(t *testing.T) {
	now := time.Date(2026, 6, 8, 10, 0, 30, 0, time.UTC)
	slots := GenerateSlots(nineToFive, 30, "2026-06-08", now)
	if slots[0] != "10:30" {
		t.Fatalf("slot at the current minute must be excluded, got %v", slots)
	}
}

func TestGenerateSlotsIsPure(t *testing.T) {
	now := time.Date(2026, 6, 8, 11, 15, 0, 0, time.UTC)
	a := GenerateSlots(nineToFive, 45, "2026-06-08", now)
	b := GenerateSlots(nineToFive, 45, "2026-06-08", now)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("expected identical sequences, got %v and %v", a, b)
	}
}

func TestGenerateSlotsDegenerateInputs(t *testing.T) {
	now := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	if got := GenerateSlots(nineToFive, 0, "2026-06-08", now); len(got) != 0 {
		t.Fatalf("expected no slots for zero interval, got %v", got)
	}
	if got := GenerateSlots(Window{From: 600, To: 500}, 30, "2026-06-08", now); len(got) != 0 {
		t.Fatalf("expected no slots for inverted window, got %v", got)
	}
	if got := GenerateSlots(Window{From: 600, To: 600}, 30, "2026-06-08", now); !reflect.DeepEqual(got, []string{"10:00"}) {
		t.Fatalf("expected single slot, got %v", got)
	}
}

func TestSlotInterval(t *testing.T) {
	biz := &models.Business{AppointmentInterval: 20}
	if got := SlotInterval(&models.Service{DurationMin: 45}, biz, 30); got != 45 {
		t.Fatalf("expected service duration, got %d", got)
	}
	if got := SlotInterval(&models.Service{}, biz, 30); got != 20 {
		t.Fatalf("expected business interval, got %d", got)
	}
	if got := SlotInterval(&models.Service{}, &models.Business{}, 30); got != 30 {
		t.Fatalf("expected fallback, got %d", got)
	}
}
