package create_reservation

import (
	"fmt"
	"time"

	"github.com/gameplaza/GP-ReservationService/internal/domain"
	"github.com/gameplaza/GP-ReservationService/pkg/types"
)

// parsedRequest результат проверки формы запроса
type parsedRequest struct {
	date       types.VenueDate
	slot       types.TimeSlot
	creditType domain.CreditType
}

// validateRequest валидирует форму запроса и парсит поля в доменные типы
func validateRequest(req *Request) (*parsedRequest, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	if req.DeviceID == "" {
		return nil, fmt.Errorf("%w: deviceID is required", ErrInvalidInput)
	}

	if req.Date == "" {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	date, err := types.ParseVenueDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date format: %v", ErrInvalidInput, err)
	}

	slot, err := types.NewTimeSlot(req.StartHour, req.EndHour)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid time slot: %v", ErrInvalidInput, err)
	}

	creditType, ok := domain.ValidCreditType(req.CreditType)
	if !ok {
		return nil, fmt.Errorf("%w: unknown credit type %q", ErrInvalidInput, req.CreditType)
	}

	if req.PlayerCount < 1 || req.PlayerCount > domain.MaxPlayerCount {
		return nil, fmt.Errorf("%w: playerCount must be 1 or %d", ErrInvalidInput, domain.MaxPlayerCount)
	}

	return &parsedRequest{
		date:       date,
		slot:       slot,
		creditType: creditType,
	}, nil
}

// validateDate проверяет, что операционный день еще не прошел.
// Сегодняшний день остается бронируемым до конца суток по времени зала.
func validateDate(date types.VenueDate, now time.Time) error {
	today := types.VenueDateOf(now)
	if date.Before(today) {
		return ErrPastDate
	}
	return nil
}

// countOverlappingUnits подсчитывает живые брони того же типа устройств,
// чье реальное временное окно пересекается с окном кандидата
func countOverlappingUnits(candidate *domain.Reservation, reservations []*domain.Reservation) int {
	count := 0
	for _, res := range reservations {
		if res.ID == candidate.ID {
			continue
		}
		if !res.IsActive() {
			continue
		}
		if candidate.OverlapsWith(res) {
			count++
		}
	}
	return count
}
