package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gameplaza/GP-ReservationService/internal/domain"
	"github.com/gameplaza/GP-ReservationService/pkg/types"
)

func candidateReservation(userID string, date types.VenueDate, startHour, endHour int) *domain.Reservation {
	return &domain.Reservation{
		ID:       "res-candidate",
		UserID:   userID,
		DeviceID: "dev-1",
		Date:     date,
		TimeSlot: types.MustTimeSlot(startHour, endHour),
		Status:   domain.StatusPending,
	}
}

func existingReservation(id, userID, deviceID string, date types.VenueDate, startHour, endHour int, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:                id,
		UserID:            userID,
		DeviceID:          deviceID,
		Date:              date,
		TimeSlot:          types.MustTimeSlot(startHour, endHour),
		Status:            status,
		ReservationNumber: "GP-20260915-0001",
	}
}

func TestService_ValidateAll_NoExistingReservations(t *testing.T) {
	svc := NewService()
	date := types.NewVenueDate(2026, time.September, 15)

	result := svc.ValidateAll(candidateReservation("user-1", date, 10, 14), nil)

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
}

func TestService_ValidateAll_ActiveLimitExceeded(t *testing.T) {
	svc := NewService()
	date := types.NewVenueDate(2026, time.September, 15)

	// Существующая бронь на другой день: пересечения нет, но лимит нарушен
	existing := existingReservation("res-1", "user-1", "dev-2", date.AddDays(3), 10, 14, domain.StatusApproved)

	result := svc.ValidateAll(candidateReservation("user-1", date, 10, 14), []*domain.Reservation{existing})

	require.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "active reservation limit")
}

func TestService_ValidateAll_TimeOverlapOnAnotherDevice(t *testing.T) {
	svc := NewService()
	date := types.NewVenueDate(2026, time.September, 15)

	// Пересечение по времени на другом устройстве считается нарушением
	existing := existingReservation("res-1", "user-1", "dev-2", date, 12, 16, domain.StatusPending)

	result := svc.ValidateAll(candidateReservation("user-1", date, 10, 14), []*domain.Reservation{existing})

	require.False(t, result.IsValid)
	// Накапливаются оба нарушения: пересечение и лимит
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "one device at a time")
	assert.Contains(t, result.Errors[1], "active reservation limit")
}

func TestService_ValidateAll_OvernightOverlapAcrossDates(t *testing.T) {
	svc := NewService()
	d := types.NewVenueDate(2026, time.September, 15)

	// Ночная бронь 26-28 на D пересекается с кандидатом 2-4 на D+1
	existing := existingReservation("res-1", "user-1", "dev-2", d, 26, 28, domain.StatusApproved)

	result := svc.ValidateAll(candidateReservation("user-1", d.AddDays(1), 2, 4), []*domain.Reservation{existing})

	require.False(t, result.IsValid)
	assert.Contains(t, result.Errors[0], "one device at a time")
}

func TestService_ValidateAll_FinalStatusesIgnored(t *testing.T) {
	svc := NewService()
	date := types.NewVenueDate(2026, time.September, 15)

	reservations := []*domain.Reservation{
		existingReservation("res-1", "user-1", "dev-1", date, 10, 14, domain.StatusCancelled),
		existingReservation("res-2", "user-1", "dev-1", date, 10, 14, domain.StatusCompleted),
		existingReservation("res-3", "user-1", "dev-1", date, 10, 14, domain.StatusRejected),
		existingReservation("res-4", "user-1", "dev-1", date, 10, 14, domain.StatusNoShow),
	}

	result := svc.ValidateAll(candidateReservation("user-1", date, 10, 14), reservations)

	assert.True(t, result.IsValid)
}

func TestService_ValidateAll_OtherUsersIgnored(t *testing.T) {
	svc := NewService()
	date := types.NewVenueDate(2026, time.September, 15)

	existing := existingReservation("res-1", "user-2", "dev-1", date, 10, 14, domain.StatusApproved)

	result := svc.ValidateAll(candidateReservation("user-1", date, 10, 14), []*domain.Reservation{existing})

	assert.True(t, result.IsValid)
}
