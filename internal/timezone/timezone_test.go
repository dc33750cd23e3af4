package timezone

import (
	"testing"
	"time"
)

func TestLocationFallsBack(t *testing.T) {
	if got := Location("Not/AZone"); got != Default() {
		t.Fatalf("expected default location, got %s", got)
	}
	if got := Location(""); got != Default() {
		t.Fatalf("expected default location, got %s", got)
	}
	if got := Location("UTC"); got.String() != "UTC" {
		t.Fatalf("expected UTC, got %s", got)
	}
}

func TestSetDefault(t *testing.T) {
	t.Cleanup(func() { fallback.Store(time.UTC) })

	if err := SetDefault("Invalid/Zone"); err == nil {
		t.Fatal("expected error for unknown zone")
	}
	if Default() != time.UTC {
		t.Fatal("default must not change on error")
	}

	if err := SetDefault("America/Sao_Paulo"); err != nil {
		t.Skipf("tzdata not available: %v", err)
	}
	if Default().String() != "America/Sao_Paulo" {
		t.Fatalf("expected America/Sao_Paulo, got %s", Default())
	}
}

func TestIsValid(t *testing.T) {
	if IsValid("") {
		t.Fatal("empty timezone must be invalid")
	}
	if !IsValid("UTC") {
		t.Fatal("UTC must be valid")
	}
}
