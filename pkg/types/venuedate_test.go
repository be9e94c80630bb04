package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVenueDate(t *testing.T) {
	d, err := ParseVenueDate("2026-09-15")
	require.NoError(t, err)

	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, time.September, d.Month())
	assert.Equal(t, 15, d.Day())
	assert.Equal(t, "2026-09-15", d.String())
	assert.Equal(t, "20260915", d.Compact())
}

func TestParseVenueDate_InvalidFormat(t *testing.T) {
	_, err := ParseVenueDate("15.09.2026")
	assert.Error(t, err)

	_, err = ParseVenueDate("")
	assert.Error(t, err)
}

func TestVenueDateOf_ConvertsToVenueZone(t *testing.T) {
	// 16:30 UTC = 01:30 следующего дня по времени зала
	utc := time.Date(2026, time.September, 15, 16, 30, 0, 0, time.UTC)

	d := VenueDateOf(utc)

	assert.Equal(t, NewVenueDate(2026, time.September, 16), d)
}

func TestVenueDate_At_RegularHour(t *testing.T) {
	d := NewVenueDate(2026, time.September, 15)

	got := d.At(10)

	assert.Equal(t, time.Date(2026, time.September, 15, 10, 0, 0, 0, VenueLocation), got)
}

func TestVenueDate_At_ExtendedHourRollsToNextDay(t *testing.T) {
	d := NewVenueDate(2026, time.September, 15)

	got := d.At(26)

	assert.Equal(t, time.Date(2026, time.September, 16, 2, 0, 0, 0, VenueLocation), got)
}

func TestVenueDate_At_MonthBoundary(t *testing.T) {
	d := NewVenueDate(2026, time.September, 30)

	got := d.At(25)

	// time.Date нормализует 31 сентября в 1 октября
	assert.Equal(t, time.Date(2026, time.October, 1, 1, 0, 0, 0, VenueLocation), got)
}

func TestVenueDate_AddDays(t *testing.T) {
	d := NewVenueDate(2026, time.December, 31)

	assert.Equal(t, NewVenueDate(2027, time.January, 1), d.AddDays(1))
	assert.Equal(t, NewVenueDate(2026, time.December, 30), d.AddDays(-1))
}

func TestVenueDate_BeforeAndEqual(t *testing.T) {
	a := NewVenueDate(2026, time.September, 15)
	b := NewVenueDate(2026, time.September, 16)

	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.False(t, a.Before(a))
	assert.True(t, a.Equal(NewVenueDate(2026, time.September, 15)))
	assert.False(t, a.Equal(b))
}

func TestVenueDate_IsZero(t *testing.T) {
	assert.True(t, VenueDate{}.IsZero())
	assert.False(t, NewVenueDate(2026, time.January, 1).IsZero())
}
