package types

import (
	"errors"
	"fmt"
	"time"
)

// Extended operating-day hour bounds. The venue's day runs from 00:00 up to
// 30:00, where hours 24-29 are the early-morning tail of an overnight session.
const (
	MinExtendedHour = 0
	MaxExtendedHour = 30
)

var (
	// ErrInvalidHourRange возвращается при часах вне диапазона [0, 30]
	ErrInvalidHourRange = errors.New("types: hour out of extended range")

	// ErrEmptySlot возвращается, когда startHour >= endHour
	ErrEmptySlot = errors.New("types: start hour must be before end hour")
)

// TimeSlot is a half-open interval of extended operating-day hours.
// Both bounds are whole hours; StartHour < EndHour, StartHour in [0,30),
// EndHour in (0,30].
type TimeSlot struct {
	startHour int
	endHour   int
}

// NewTimeSlot validates and creates a TimeSlot.
func NewTimeSlot(startHour, endHour int) (TimeSlot, error) {
	if startHour < MinExtendedHour || startHour >= MaxExtendedHour {
		return TimeSlot{}, fmt.Errorf("%w: startHour=%d", ErrInvalidHourRange, startHour)
	}
	if endHour <= MinExtendedHour || endHour > MaxExtendedHour {
		return TimeSlot{}, fmt.Errorf("%w: endHour=%d", ErrInvalidHourRange, endHour)
	}
	if startHour >= endHour {
		return TimeSlot{}, fmt.Errorf("%w: %d >= %d", ErrEmptySlot, startHour, endHour)
	}
	return TimeSlot{startHour: startHour, endHour: endHour}, nil
}

// MustTimeSlot is a convenience constructor for static catalogs and tests.
// Panics on invalid hours.
func MustTimeSlot(startHour, endHour int) TimeSlot {
	s, err := NewTimeSlot(startHour, endHour)
	if err != nil {
		panic(err)
	}
	return s
}

// StartHour returns the extended start hour.
func (s TimeSlot) StartHour() int { return s.startHour }

// EndHour returns the extended end hour.
func (s TimeSlot) EndHour() int { return s.endHour }

// DurationHours returns the slot length in hours.
func (s TimeSlot) DurationHours() int { return s.endHour - s.startHour }

// IsZero reports whether the slot is the uninitialized zero value.
func (s TimeSlot) IsZero() bool { return s.startHour == 0 && s.endHour == 0 }

// Equal reports whether both bounds match.
func (s TimeSlot) Equal(other TimeSlot) bool {
	return s.startHour == other.startHour && s.endHour == other.endHour
}

// Overlaps reports whether two slots on the SAME operating day intersect.
// Boundary-touching slots (one ends where the other starts) do not overlap.
// For slots on different dates compare resolved instants instead (Resolve).
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	return s.startHour < other.endHour && other.startHour < s.endHour
}

// Resolve converts the slot into real start/end instants for the given
// operating day. Hours >= 24 land on the following calendar day, so an
// overnight slot resolved against date D may intersect a normal-hours slot
// resolved against D+1. Never compare raw hour integers across dates.
func (s TimeSlot) Resolve(date VenueDate) (start, end time.Time) {
	return date.At(s.startHour), date.At(s.endHour)
}

// String returns the slot as "HH:00-HH:00" with extended hours kept as-is
// (e.g. "26:00-28:00" for an overnight tail).
func (s TimeSlot) String() string {
	return fmt.Sprintf("%02d:00-%02d:00", s.startHour, s.endHour)
}
