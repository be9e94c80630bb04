package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/gameplaza/GP-ReservationService/internal/domain"
	deviceRepo "github.com/gameplaza/GP-ReservationService/internal/infra/storage/device"
	"github.com/gameplaza/GP-ReservationService/pkg/types"
)

// UseCase use case для получения каталога слотов с доступностью устройства
type UseCase struct {
	reservationRepo ReservationRepository
	deviceRepo      DeviceRepository
	slotService     TimeSlotService
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	deviceRepo DeviceRepository,
	slotService TimeSlotService,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		deviceRepo:      deviceRepo,
		slotService:     slotService,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%s, device=%s, date=%s", req.UserID, req.DeviceID, req.Date)

	// 1. Валидация входных данных
	if req.DeviceID == "" {
		return nil, fmt.Errorf("%w: deviceID is required", ErrInvalidInput)
	}
	if req.Date == "" {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	date, err := types.ParseVenueDate(req.Date)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: invalid date %q: %v", req.Date, err)
		return nil, fmt.Errorf("%w: invalid date format: %v", ErrInvalidInput, err)
	}

	// 2. Прошедший операционный день не возвращает слотов
	now := uc.timeProvider.Now()
	if date.Before(types.VenueDateOf(now)) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", req.Date)
		return nil, ErrPastDate
	}

	// 3. Получаем устройство
	device, err := uc.deviceRepo.GetByID(ctx, req.DeviceID)
	if err != nil {
		if errors.Is(err, deviceRepo.ErrDeviceNotFound) {
			uc.logger.Warn("GetAvailableSlots: device id=%s not found", req.DeviceID)
			return nil, ErrDeviceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get device id=%s: %v", req.DeviceID, err)
		return nil, fmt.Errorf("%w: failed to get device: %v", ErrInternal, err)
	}

	// 4. Действующий каталог слотов на дату (дефолты + переопределения)
	templates, err := uc.slotService.GetAvailableTimeSlots(ctx, date, device.TypeID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get templates: %v", err)
		return nil, fmt.Errorf("%w: failed to get templates: %v", ErrInternal, err)
	}

	// 5. Живые брони устройства на весь расширенный день
	dayStart := date.At(types.MinExtendedHour)
	dayEnd := date.At(types.MaxExtendedHour)
	deviceReservations, err := uc.reservationRepo.GetByDeviceAndDateRange(
		ctx, device.ID, dayStart, dayEnd, domain.ActiveStatuses)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get device reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 6. Живые брони по типу устройств нужны только для лимитов юнитов
	var typeReservations []*domain.Reservation
	if hasUnitLimits(templates) {
		typeReservations, err = uc.reservationRepo.GetActiveByDeviceTypeAndDate(ctx, device.TypeID, date)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to get device type reservations: %v", err)
			return nil, fmt.Errorf("%w: failed to get device type reservations: %v", ErrInternal, err)
		}
	}

	// 7. Доступность каждого слота для этого устройства
	slots := buildSlots(templates, date, device.ID, deviceReservations, typeReservations)

	uc.logger.Info("GetAvailableSlots: %d slots for device=%s, date=%s", len(slots), req.DeviceID, req.Date)

	return &Response{
		Date:     date.String(),
		DeviceID: device.ID,
		Slots:    slots,
	}, nil
}
