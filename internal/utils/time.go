package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/checkin/internal/constants"
)

// Clock supplies the current instant. Stores ask it once per operation.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in a fixed location.
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock always returns the same instant until moved. Used by tests and
// by callers that need to evaluate a whole batch against one "today".
type FixedClock struct {
	T time.Time
}

func (c *FixedClock) Now() time.Time { return c.T }

// Set moves the clock to t.
func (c *FixedClock) Set(t time.Time) { c.T = t }

// AdvanceDays moves the clock forward by n calendar days (backwards if n < 0).
func (c *FixedClock) AdvanceDays(n int) { c.T = c.T.AddDate(0, 0, n) }

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}

// Today returns the clock's current calendar date (YYYY-MM-DD).
func Today(c Clock) string {
	return c.Now().Format(constants.DateFormat)
}

// PreviousDay returns the calendar date before day (YYYY-MM-DD).
func PreviousDay(day string) (string, error) {
	t, err := time.Parse(constants.DateFormat, day)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, -1).Format(constants.DateFormat), nil
}

// NormalizeDate parses a YYYY-MM-DD date and returns it in canonical form.
func NormalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("date is required")
	}
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return t.Format(constants.DateFormat), nil
}

// NormalizeTime parses a time of day and returns it as zero-padded HH:MM.
// Accepts HH:MM, H:MM and a bare hour (H or HH).
func NormalizeTime(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("time is required")
	}

	hourStr, minStr, hasMinutes := strings.Cut(s, ":")
	if !hasMinutes {
		minStr = "0"
	} else if len(minStr) != 2 {
		return "", fmt.Errorf("invalid time %q (expected HH:MM)", s)
	}
	if len(hourStr) == 0 || len(hourStr) > 2 {
		return "", fmt.Errorf("invalid time %q (expected HH:MM)", s)
	}

	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(minStr)
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in %q", s)
	}

	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}
