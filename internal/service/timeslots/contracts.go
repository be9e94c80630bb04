package timeslots

import (
	"context"

	"github.com/gameplaza/GP-ReservationService/internal/domain"
	"github.com/gameplaza/GP-ReservationService/pkg/types"
)

// TemplateRepository интерфейс каталога шаблонов слотов
type TemplateRepository interface {
	FindAll(ctx context.Context, filter domain.TemplateFilter) ([]*domain.TimeSlotTemplate, error)
	FindByID(ctx context.Context, id string) (*domain.TimeSlotTemplate, error)
}

// ScheduleRepository интерфейс календарных переопределений (праздники, события)
type ScheduleRepository interface {
	FindByDateAndDeviceType(ctx context.Context, date types.VenueDate, deviceTypeID string) (*domain.TimeSlotSchedule, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
