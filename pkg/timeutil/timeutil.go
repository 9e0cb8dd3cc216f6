package timeutil

import (
	"fmt"
	"regexp"
	"time"
)

var (
	timeRegex = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)
	dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ValidHHMM reports whether s is a 24-hour "HH:MM" time string.
func ValidHHMM(s string) bool {
	return timeRegex.MatchString(s)
}

// ValidDate reports whether s looks like "YYYY-MM-DD". Use ParseDate to
// check that it is also a real calendar date.
func ValidDate(s string) bool {
	return dateRegex.MatchString(s)
}

// ParseHHMM converts "HH:MM" to minutes since midnight.
func ParseHHMM(s string) (int, error) {
	if !timeRegex.MatchString(s) {
		return 0, fmt.Errorf("invalid time format %q, expected HH:MM", s)
	}

	var hour, minute int
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return 0, fmt.Errorf("parse time %q: %w", s, err)
	}

	return hour*60 + minute, nil
}

// FormatMinutes converts minutes since midnight back to "HH:MM".
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Overlaps reports whether [aStart,aEnd) and [bStart,bEnd) properly overlap.
// Touching ranges (aEnd == bStart) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// ParseDate parses "YYYY-MM-DD" as a UTC calendar date.
func ParseDate(date string) (time.Time, error) {
	if !dateRegex.MatchString(date) {
		return time.Time{}, fmt.Errorf("invalid date format %q, expected YYYY-MM-DD", date)
	}

	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", date, err)
	}

	return t, nil
}

// CombineUTC builds the UTC instant for a stored date + "HH:MM" pair.
// Stored dates and times are always interpreted as UTC.
func CombineUTC(date, hhmm string) (time.Time, error) {
	day, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}

	minutes, err := ParseHHMM(hhmm)
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, time.UTC), nil
}

// WeekdayName returns the English weekday name ("Sunday".."Saturday") for a date.
func WeekdayName(date string) (string, error) {
	day, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return day.Weekday().String(), nil
}
