package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/gameplaza/GP-ReservationService/internal/domain"
	deviceRepo "github.com/gameplaza/GP-ReservationService/internal/infra/storage/device"
	reservationRepo "github.com/gameplaza/GP-ReservationService/internal/infra/storage/reservation"
	userClient "github.com/gameplaza/GP-ReservationService/internal/integrations/userservice"
	"github.com/gameplaza/GP-ReservationService/internal/service/timeslots"
)

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	deviceRepo      DeviceRepository
	userClient      UserServiceClient
	slotService     TimeSlotService
	rulesService    RulesService
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	deviceRepo DeviceRepository,
	userClient UserServiceClient,
	slotService TimeSlotService,
	rulesService RulesService,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		deviceRepo:      deviceRepo,
		userClient:      userClient,
		slotService:     slotService,
		rulesService:    rulesService,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверки конфликтов и запись выполняются в сериализуемой транзакции:
// application-уровневая проверка дает быстрый отказ, а уникальность на
// уровне БД остается последней линией защиты от гонки двух запросов.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%s, device=%s, date=%s, hours=%d-%d, credit=%s, players=%d",
		req.UserID, req.DeviceID, req.Date, req.StartHour, req.EndHour, req.CreditType, req.PlayerCount)

	// 1. Валидация формы запроса
	parsed, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что операционный день не в прошлом
	now := uc.timeProvider.Now()
	if err := validateDate(parsed.date, now); err != nil {
		uc.logger.Warn("CreateReservation: date %s is in the past", req.Date)
		return nil, err
	}

	// 3. Получаем пользователя и проверяем право бронировать
	user, err := uc.userClient.GetUser(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			uc.logger.Warn("CreateReservation: user id=%s not found", req.UserID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CreateReservation: failed to get user id=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	if !user.CanReserve() {
		uc.logger.Warn("CreateReservation: user id=%s has status %s, reservation denied", user.ID, user.Status)
		return nil, ErrNotAuthorized
	}

	// 4. Получаем устройство и проверяем его доступность
	device, err := uc.deviceRepo.GetByID(ctx, req.DeviceID)
	if err != nil {
		if errors.Is(err, deviceRepo.ErrDeviceNotFound) {
			uc.logger.Warn("CreateReservation: device id=%s not found", req.DeviceID)
			return nil, ErrDeviceNotFound
		}
		uc.logger.Error("CreateReservation: failed to get device id=%s: %v", req.DeviceID, err)
		return nil, fmt.Errorf("%w: failed to get device: %v", ErrInternal, err)
	}

	if !device.IsAvailable() {
		uc.logger.Warn("CreateReservation: device id=%s has status %s", device.ID, device.Status)
		return nil, ErrDeviceUnavailable
	}

	// 5. Находим шаблон с точно совпадающим слотом
	template, err := uc.slotService.FindExactSlot(ctx, parsed.date, device.TypeID, parsed.slot)
	if err != nil {
		if errors.Is(err, timeslots.ErrTemplateNotFound) {
			uc.logger.Warn("CreateReservation: no template for device_type=%s slot=%s on %s",
				device.TypeID, parsed.slot, parsed.date)
			return nil, ErrSlotUnavailable
		}
		uc.logger.Error("CreateReservation: failed to resolve slot: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve slot: %v", ErrInternal, err)
	}

	// 6. Шаблон должен предлагать запрошенный тип кредита
	if !template.SupportsCreditType(parsed.creditType) {
		uc.logger.Warn("CreateReservation: template id=%s does not offer credit_type=%s",
			template.ID, parsed.creditType)
		return nil, ErrUnsupportedCreditType
	}

	// 7. Проверка поддержки 2P
	if req.PlayerCount == 2 && !template.Enable2P {
		uc.logger.Warn("CreateReservation: template id=%s does not allow 2P", template.ID)
		return nil, ErrTwoPlayerNotAllowed
	}

	// 8. Молодежные слоты доступны только пользователям младше порога.
	// Неизвестная дата рождения трактуется как взрослый: зал не может
	// подтвердить возраст без документа.
	if template.IsYouthTime && !user.IsYouth(parsed.date) {
		uc.logger.Warn("CreateReservation: user id=%s is not eligible for youth slot template id=%s",
			user.ID, template.ID)
		return nil, ErrAdultNotAllowedInYouthSlot
	}

	// 9. Вычисляем итоговую цену
	price, ok := template.GetPrice(parsed.creditType, parsed.slot.DurationHours(), req.PlayerCount == 2)
	if !ok {
		uc.logger.Warn("CreateReservation: no price for credit_type=%s duration=%dh in template id=%s",
			parsed.creditType, parsed.slot.DurationHours(), template.ID)
		return nil, ErrPriceNotFound
	}

	// 10. Строим бронь в статусе pending
	candidate := &domain.Reservation{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		DeviceID:    device.ID,
		Date:        parsed.date,
		TimeSlot:    parsed.slot,
		Status:      domain.StatusPending,
		CreditType:  parsed.creditType,
		PlayerCount: req.PlayerCount,
		TotalPrice:  price,
	}

	var result *domain.Reservation

	// 11-12. Проверки конфликтов и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 11.1. Кросс-пользовательские правила: лимит активных броней
		// и пересечение с собственными бронями на любом устройстве
		userReservations, err := uc.reservationRepo.GetByUserID(txCtx, user.ID, domain.ActiveStatuses)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get user reservations: %v", err)
			return fmt.Errorf("%w: failed to get user reservations: %v", ErrInternal, err)
		}

		if verdict := uc.rulesService.ValidateAll(candidate, userReservations); !verdict.IsValid {
			uc.logger.Warn("CreateReservation: rules violated for user id=%s: %s",
				user.ID, strings.Join(verdict.Errors, "; "))
			return fmt.Errorf("%w: %s", ErrRuleViolation, strings.Join(verdict.Errors, "; "))
		}

		// 11.2. Конфликты на самом устройстве (чтение с FOR UPDATE)
		start, end := parsed.slot.Resolve(parsed.date)
		deviceReservations, err := uc.reservationRepo.GetByDeviceAndDateRange(
			txCtx, device.ID, start, end, domain.ActiveStatuses)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get device reservations: %v", err)
			return fmt.Errorf("%w: failed to get device reservations: %v", ErrInternal, err)
		}

		for _, existing := range deviceReservations {
			if candidate.ConflictsWith(existing) {
				uc.logger.Warn("CreateReservation: device id=%s already booked by reservation id=%s",
					device.ID, existing.ID)
				return ErrSlotAlreadyBooked
			}
		}

		// 11.3. Лимит одновременных броней этого типа устройств в сегменте слота
		if template.MaxRentalUnits != nil {
			typeReservations, err := uc.reservationRepo.GetActiveByDeviceTypeAndDate(
				txCtx, device.TypeID, parsed.date)
			if err != nil {
				uc.logger.Error("CreateReservation: failed to get device type reservations: %v", err)
				return fmt.Errorf("%w: failed to get device type reservations: %v", ErrInternal, err)
			}

			taken := countOverlappingUnits(candidate, typeReservations)
			if taken >= *template.MaxRentalUnits {
				uc.logger.Warn("CreateReservation: rental unit limit reached, %d/%d units taken for device_type=%s",
					taken, *template.MaxRentalUnits, device.TypeID)
				return ErrMaxUnitsExceeded
			}
		}

		// 12.1. Генерируем номер брони по счетчику операционного дня
		number, err := uc.reservationRepo.GenerateReservationNumber(txCtx, parsed.date)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to generate reservation number: %v", err)
			return fmt.Errorf("%w: failed to generate reservation number: %v", ErrInternal, err)
		}
		candidate.ReservationNumber = number

		// 12.2. Сохраняем бронь; ограничение уникальности в БД ловит гонку,
		// которую application-проверка могла пропустить
		created, err := uc.reservationRepo.Create(txCtx, candidate)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrDuplicateSlot) {
				uc.logger.Warn("CreateReservation: concurrent reservation won the slot on device id=%s", device.ID)
				return ErrSlotAlreadyBooked
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: created reservation id=%s number=%s price=%d",
		result.ID, result.ReservationNumber, result.TotalPrice)

	return toResponse(result), nil
}
