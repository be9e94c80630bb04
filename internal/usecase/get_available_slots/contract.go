package get_available_slots

import (
	"context"
	"time"

	"github.com/gameplaza/GP-ReservationService/internal/domain"
	"github.com/gameplaza/GP-ReservationService/pkg/types"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByDeviceAndDateRange(ctx context.Context, deviceID string, start, end time.Time, statuses []domain.ReservationStatus) ([]*domain.Reservation, error)
	GetActiveByDeviceTypeAndDate(ctx context.Context, deviceTypeID string, date types.VenueDate) ([]*domain.Reservation, error)
}

// DeviceRepository интерфейс репозитория устройств
type DeviceRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Device, error)
}

// TimeSlotService интерфейс доменного сервиса слотов
type TimeSlotService interface {
	GetAvailableTimeSlots(ctx context.Context, date types.VenueDate, deviceTypeID string) ([]*domain.TimeSlotTemplate, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
