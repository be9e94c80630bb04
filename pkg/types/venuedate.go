package types

import (
	"fmt"
	"time"
)

// VenueLocation is the fixed venue timezone (UTC+9).
// All dates and operating-day hours are interpreted in this zone,
// regardless of the server's local timezone.
var VenueLocation = time.FixedZone("UTC+9", 9*60*60)

// DateFormat is the wire format for venue dates.
const DateFormat = "2006-01-02"

// VenueDate represents a calendar day in the venue's timezone.
// The zero value is not a valid date; use the constructors.
type VenueDate struct {
	year  int
	month time.Month
	day   int
}

// NewVenueDate creates a VenueDate from explicit year/month/day.
func NewVenueDate(year int, month time.Month, day int) VenueDate {
	return VenueDate{year: year, month: month, day: day}
}

// VenueDateOf converts a wall-clock instant into the venue-local calendar day.
func VenueDateOf(t time.Time) VenueDate {
	local := t.In(VenueLocation)
	return VenueDate{year: local.Year(), month: local.Month(), day: local.Day()}
}

// ParseVenueDate parses a "YYYY-MM-DD" string into a VenueDate.
func ParseVenueDate(s string) (VenueDate, error) {
	t, err := time.ParseInLocation(DateFormat, s, VenueLocation)
	if err != nil {
		return VenueDate{}, err
	}
	return VenueDate{year: t.Year(), month: t.Month(), day: t.Day()}, nil
}

// IsZero reports whether the date is the uninitialized zero value.
func (d VenueDate) IsZero() bool {
	return d.year == 0 && d.month == 0 && d.day == 0
}

// Year returns the calendar year.
func (d VenueDate) Year() int { return d.year }

// Month returns the calendar month.
func (d VenueDate) Month() time.Month { return d.month }

// Day returns the day of month.
func (d VenueDate) Day() int { return d.day }

// Time returns midnight of the date in the venue timezone.
func (d VenueDate) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, VenueLocation)
}

// At resolves an extended operating-day hour into a real instant.
// Hours 24-29 denote 00:00-05:00 of the following calendar day.
func (d VenueDate) At(extendedHour int) time.Time {
	day := d.day
	hour := extendedHour
	if extendedHour >= 24 {
		day++
		hour = extendedHour - 24
	}
	return time.Date(d.year, d.month, day, hour, 0, 0, 0, VenueLocation)
}

// AddDays returns the date shifted by n calendar days.
func (d VenueDate) AddDays(n int) VenueDate {
	t := d.Time().AddDate(0, 0, n)
	return VenueDate{year: t.Year(), month: t.Month(), day: t.Day()}
}

// Before reports whether d is strictly before other.
func (d VenueDate) Before(other VenueDate) bool {
	return d.Time().Before(other.Time())
}

// Equal reports whether d and other denote the same calendar day.
func (d VenueDate) Equal(other VenueDate) bool {
	return d.year == other.year && d.month == other.month && d.day == other.day
}

// Weekday returns the day of week.
func (d VenueDate) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// String returns the date in "YYYY-MM-DD" format.
func (d VenueDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

// Compact returns the date in "YYYYMMDD" format (used in reservation numbers).
func (d VenueDate) Compact() string {
	return fmt.Sprintf("%04d%02d%02d", d.year, int(d.month), d.day)
}
