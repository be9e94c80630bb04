package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeSlot(t *testing.T) {
	s, err := NewTimeSlot(10, 14)
	require.NoError(t, err)

	assert.Equal(t, 10, s.StartHour())
	assert.Equal(t, 14, s.EndHour())
	assert.Equal(t, 4, s.DurationHours())
	assert.Equal(t, "10:00-14:00", s.String())
}

func TestNewTimeSlot_FullExtendedRange(t *testing.T) {
	s, err := NewTimeSlot(0, 30)
	require.NoError(t, err)
	assert.Equal(t, 30, s.DurationHours())
}

func TestNewTimeSlot_InvalidHours(t *testing.T) {
	tests := []struct {
		name      string
		start     int
		end       int
		wantErr   error
	}{
		{"negative start", -1, 4, ErrInvalidHourRange},
		{"start at upper bound", 30, 31, ErrInvalidHourRange},
		{"end above upper bound", 26, 31, ErrInvalidHourRange},
		{"zero end", 0, 0, ErrInvalidHourRange},
		{"start equals end", 10, 10, ErrEmptySlot},
		{"inverted", 14, 10, ErrEmptySlot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTimeSlot(tt.start, tt.end)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTimeSlot_Overlaps(t *testing.T) {
	base := MustTimeSlot(10, 14)

	assert.True(t, base.Overlaps(MustTimeSlot(12, 16)))
	assert.True(t, base.Overlaps(MustTimeSlot(8, 11)))
	assert.True(t, base.Overlaps(MustTimeSlot(11, 13)))
	assert.True(t, base.Overlaps(base))

	// Граничащие слоты не пересекаются
	assert.False(t, base.Overlaps(MustTimeSlot(14, 18)))
	assert.False(t, base.Overlaps(MustTimeSlot(6, 10)))
	assert.False(t, base.Overlaps(MustTimeSlot(20, 24)))
}

func TestTimeSlot_Overlaps_IsSymmetric(t *testing.T) {
	a := MustTimeSlot(10, 14)
	b := MustTimeSlot(12, 16)

	assert.Equal(t, a.Overlaps(b), b.Overlaps(a))
}

func TestTimeSlot_Resolve_RegularHours(t *testing.T) {
	date := NewVenueDate(2026, time.September, 15)

	start, end := MustTimeSlot(10, 14).Resolve(date)

	assert.Equal(t, time.Date(2026, time.September, 15, 10, 0, 0, 0, VenueLocation), start)
	assert.Equal(t, time.Date(2026, time.September, 15, 14, 0, 0, 0, VenueLocation), end)
}

func TestTimeSlot_Resolve_OvernightRollsToNextDay(t *testing.T) {
	date := NewVenueDate(2026, time.September, 15)

	start, end := MustTimeSlot(26, 28).Resolve(date)

	assert.Equal(t, time.Date(2026, time.September, 16, 2, 0, 0, 0, VenueLocation), start)
	assert.Equal(t, time.Date(2026, time.September, 16, 4, 0, 0, 0, VenueLocation), end)
}

func TestTimeSlot_Resolve_OvernightMatchesNextDayMorning(t *testing.T) {
	// Слот 26-28 на дату D занимает то же реальное окно, что слот 2-4 на D+1
	d := NewVenueDate(2026, time.September, 15)

	overnightStart, overnightEnd := MustTimeSlot(26, 28).Resolve(d)
	morningStart, morningEnd := MustTimeSlot(2, 4).Resolve(d.AddDays(1))

	assert.True(t, overnightStart.Equal(morningStart))
	assert.True(t, overnightEnd.Equal(morningEnd))
}

func TestTimeSlot_Resolve_SpansMidnight(t *testing.T) {
	date := NewVenueDate(2026, time.September, 15)

	start, end := MustTimeSlot(22, 26).Resolve(date)

	assert.Equal(t, time.Date(2026, time.September, 15, 22, 0, 0, 0, VenueLocation), start)
	assert.Equal(t, time.Date(2026, time.September, 16, 2, 0, 0, 0, VenueLocation), end)
	assert.Equal(t, 4*time.Hour, end.Sub(start))
}
