package create_reservation

import (
	"context"
	"time"

	"github.com/gameplaza/GP-ReservationService/internal/domain"
	"github.com/gameplaza/GP-ReservationService/internal/service/rules"
	"github.com/gameplaza/GP-ReservationService/pkg/types"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetByUserID(ctx context.Context, userID string, statuses []domain.ReservationStatus) ([]*domain.Reservation, error)
	GetByDeviceAndDateRange(ctx context.Context, deviceID string, start, end time.Time, statuses []domain.ReservationStatus) ([]*domain.Reservation, error)
	GetActiveByDeviceTypeAndDate(ctx context.Context, deviceTypeID string, date types.VenueDate) ([]*domain.Reservation, error)
	GenerateReservationNumber(ctx context.Context, date types.VenueDate) (string, error)
}

// DeviceRepository интерфейс репозитория устройств
type DeviceRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Device, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUser(ctx context.Context, userID string) (*domain.User, error)
}

// TimeSlotService интерфейс доменного сервиса слотов
type TimeSlotService interface {
	FindExactSlot(ctx context.Context, date types.VenueDate, deviceTypeID string, slot types.TimeSlot) (*domain.TimeSlotTemplate, error)
}

// RulesService интерфейс сервиса кросс-пользовательских правил
type RulesService interface {
	ValidateAll(candidate *domain.Reservation, activeReservations []*domain.Reservation) rules.Result
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
