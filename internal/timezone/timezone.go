package timezone

import (
	"fmt"
	"sync/atomic"
	"time"
)

var fallback atomic.Pointer[time.Location]

func init() {
	fallback.Store(time.UTC)
}

// SetDefault changes the location used for businesses without a valid
// timezone.
func SetDefault(tz string) error {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", tz, err)
	}
	fallback.Store(loc)
	return nil
}

func Default() *time.Location {
	return fallback.Load()
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return Default()
}
