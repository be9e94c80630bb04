package create_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrPastDate возвращается, когда запрошенная дата уже прошла
	ErrPastDate = errors.New("create_reservation: date is in the past")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("create_reservation: user not found")

	// ErrNotAuthorized возвращается, когда пользователь не может бронировать
	// (аккаунт заблокирован или приостановлен)
	ErrNotAuthorized = errors.New("create_reservation: user is not allowed to reserve")

	// ErrDeviceNotFound возвращается, когда устройство не найдено
	ErrDeviceNotFound = errors.New("create_reservation: device not found")

	// ErrDeviceUnavailable возвращается, когда устройство недоступно для брони
	ErrDeviceUnavailable = errors.New("create_reservation: device is not available")

	// ErrSlotUnavailable возвращается, когда нет шаблона с точно таким слотом
	ErrSlotUnavailable = errors.New("create_reservation: no matching time slot")

	// ErrUnsupportedCreditType возвращается, когда шаблон не предлагает
	// запрошенный тип кредита
	ErrUnsupportedCreditType = errors.New("create_reservation: credit type not offered for this slot")

	// ErrTwoPlayerNotAllowed возвращается, когда слот не поддерживает 2P
	ErrTwoPlayerNotAllowed = errors.New("create_reservation: two-player mode not allowed for this slot")

	// ErrAdultNotAllowedInYouthSlot возвращается, когда взрослый пытается
	// забронировать молодежный слот
	ErrAdultNotAllowedInYouthSlot = errors.New("create_reservation: youth-time slot requires a user under the adult age threshold")

	// ErrPriceNotFound возвращается, когда для запрошенной длительности нет цены
	ErrPriceNotFound = errors.New("create_reservation: no price for requested duration")

	// ErrRuleViolation возвращается при нарушении кросс-пользовательских правил
	// (лимит активных броней, пересечение со своей бронью); сообщение
	// агрегирует все нарушенные правила
	ErrRuleViolation = errors.New("create_reservation: reservation rules violated")

	// ErrSlotAlreadyBooked возвращается, когда устройство уже занято на это время
	ErrSlotAlreadyBooked = errors.New("create_reservation: device already booked for this time")

	// ErrMaxUnitsExceeded возвращается, когда достигнут лимит одновременных
	// броней устройств этого типа в сегменте слота
	ErrMaxUnitsExceeded = errors.New("create_reservation: rental unit limit reached for this slot")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
