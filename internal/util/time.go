package util

import (
	"fmt"
	"sync"
	"time"
)

// TimeProvider resolves "now" and bucket boundaries in a fixed timezone.
type TimeProvider struct {
	location *time.Location
	now      func() time.Time
	mu       sync.RWMutex
}

// NewTimeProvider returns a provider for the named zone ("Local", "UTC",
// "Europe/Berlin", ...).
func NewTimeProvider(timezone string) (*TimeProvider, error) {
	tp := &TimeProvider{now: time.Now}
	if err := tp.SetTimezone(timezone); err != nil {
		return nil, err
	}
	return tp, nil
}

// NewFixedTimeProvider pins "now" to t; used by tests and reproducible runs.
func NewFixedTimeProvider(t time.Time) *TimeProvider {
	return &TimeProvider{location: t.Location(), now: func() time.Time { return t }}
}

// SetTimezone updates the timezone for the time provider
func (tp *TimeProvider) SetTimezone(timezone string) error {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	loc := time.Local
	if timezone != "" && timezone != "Local" {
		l, err := time.LoadLocation(timezone)
		if err != nil {
			return fmt.Errorf("invalid timezone '%s': %w\nValid examples: Local, UTC, America/New_York, Asia/Shanghai, Europe/London", timezone, err)
		}
		loc = l
	}
	tp.location = loc
	return nil
}

// Location returns the configured zone.
func (tp *TimeProvider) Location() *time.Location {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return tp.location
}

// Now returns the current time in the configured timezone
func (tp *TimeProvider) Now() time.Time {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return tp.now().In(tp.location)
}

// In converts a time to the configured timezone
func (tp *TimeProvider) In(t time.Time) time.Time {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return t.In(tp.location)
}

// StartOfDay returns local midnight of the day containing t.
func (tp *TimeProvider) StartOfDay(t time.Time) time.Time {
	lt := tp.In(t)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, lt.Location())
}

// SameDay reports whether a and b fall on the same local calendar day.
func (tp *TimeProvider) SameDay(a, b time.Time) bool {
	return tp.StartOfDay(a).Equal(tp.StartOfDay(b))
}
