package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitus/internal/constants"
)

// Clock supplies the current time. The ledger and the orchestration layer
// read "today" through it so tests can pin the date.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in a fixed location.
type SystemClock struct {
	Location *time.Location
}

// NewSystemClock returns a clock for the named IANA timezone ("" or "Local"
// selects the system zone).
func NewSystemClock(timezone string) (SystemClock, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return SystemClock{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return SystemClock{Location: loc}, nil
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock always returns the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time {
	return time.Time(c)
}

// FixedDay returns a clock pinned to local midnight of the given YYYY-MM-DD day.
// It panics on a malformed day and is intended for tests and tooling.
func FixedDay(day string) FixedClock {
	t, err := ParseDate(day)
	if err != nil {
		panic(err)
	}
	return FixedClock(t)
}

// Today returns the clock's current date string (YYYY-MM-DD).
func Today(c Clock) string {
	return c.Now().Format(constants.DateFormat)
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == constants.DefaultTimezone {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}
