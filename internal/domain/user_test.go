package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gameplaza/GP-ReservationService/pkg/types"
)

func birthDate(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, types.VenueLocation)
	return &t
}

func TestUser_Age(t *testing.T) {
	on := types.NewVenueDate(2026, time.September, 15)

	tests := []struct {
		name  string
		birth *time.Time
		want  *int
	}{
		{"birthday already passed", birthDate(2000, time.March, 1), ptrInt(26)},
		{"birthday today", birthDate(2000, time.September, 15), ptrInt(26)},
		{"birthday not yet", birthDate(2000, time.December, 31), ptrInt(25)},
		{"unknown birth date", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{ID: "user-1", Status: UserStatusActive, BirthDate: tt.birth}
			got := u.Age(on)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestUser_IsYouth(t *testing.T) {
	on := types.NewVenueDate(2026, time.September, 15)

	tests := []struct {
		name  string
		birth *time.Time
		want  bool
	}{
		{"fifteen years old", birthDate(2011, time.January, 10), true},
		{"turns sixteen today", birthDate(2010, time.September, 15), false},
		{"turns sixteen tomorrow", birthDate(2010, time.September, 16), true},
		{"adult", birthDate(1981, time.May, 2), false},
		{"unknown birth date counts as adult", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{ID: "user-1", Status: UserStatusActive, BirthDate: tt.birth}
			assert.Equal(t, tt.want, u.IsYouth(on))
		})
	}
}

func TestUser_CanReserve(t *testing.T) {
	assert.True(t, (&User{Status: UserStatusActive}).CanReserve())
	assert.False(t, (&User{Status: UserStatusSuspended}).CanReserve())
	assert.False(t, (&User{Status: UserStatusBanned}).CanReserve())
}

func ptrInt(v int) *int { return &v }
