package create_reservation

import (
	"errors"
	"net/http"

	"github.com/gameplaza/GP-ReservationService/internal/api/handlers"
	"github.com/gameplaza/GP-ReservationService/internal/api/middleware"
	createReservation "github.com/gameplaza/GP-ReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgInvalidInput          = "некорректные параметры бронирования"
	msgPastDate              = "дата бронирования уже прошла"
	msgUserNotFound          = "пользователь не найден"
	msgNotAuthorized         = "аккаунт не может создавать брони"
	msgDeviceNotFound        = "устройство не найдено"
	msgDeviceUnavailable     = "устройство недоступно для бронирования"
	msgSlotUnavailable       = "на выбранные часы нет слота"
	msgUnsupportedCreditType = "слот не поддерживает выбранный тип кредита"
	msgTwoPlayerNotAllowed   = "слот не поддерживает игру вдвоем"
	msgYouthSlotOnly         = "слот доступен только гостям младше 16 лет"
	msgPriceNotFound         = "нет цены для выбранной длительности"
	msgSlotAlreadyBooked     = "устройство уже занято на выбранное время"
	msgMaxUnitsExceeded      = "достигнут лимит броней устройств этого типа"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createReservation.ErrPastDate):
			h.logger.Warn("POST /reservations - Past date: user_id=%s, date=%s", userID, req.Date)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, createReservation.ErrUserNotFound):
			h.logger.Warn("POST /reservations - User not found: user_id=%s", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createReservation.ErrNotAuthorized):
			h.logger.Warn("POST /reservations - User not authorized: user_id=%s", userID)
			handlers.RespondForbidden(w, msgNotAuthorized)

		case errors.Is(err, createReservation.ErrDeviceNotFound):
			h.logger.Warn("POST /reservations - Device not found: device_id=%s", req.DeviceID)
			handlers.RespondNotFound(w, msgDeviceNotFound)

		case errors.Is(err, createReservation.ErrDeviceUnavailable):
			h.logger.Warn("POST /reservations - Device unavailable: device_id=%s", req.DeviceID)
			handlers.RespondError(w, http.StatusConflict, msgDeviceUnavailable)

		case errors.Is(err, createReservation.ErrSlotUnavailable):
			h.logger.Warn("POST /reservations - Slot unavailable: device_id=%s, hours=%d-%d",
				req.DeviceID, req.StartHour, req.EndHour)
			handlers.RespondNotFound(w, msgSlotUnavailable)

		case errors.Is(err, createReservation.ErrUnsupportedCreditType):
			h.logger.Warn("POST /reservations - Unsupported credit type: device_id=%s, credit_type=%s",
				req.DeviceID, req.CreditType)
			handlers.RespondBadRequest(w, msgUnsupportedCreditType)

		case errors.Is(err, createReservation.ErrTwoPlayerNotAllowed):
			h.logger.Warn("POST /reservations - 2P not allowed: device_id=%s", req.DeviceID)
			handlers.RespondBadRequest(w, msgTwoPlayerNotAllowed)

		case errors.Is(err, createReservation.ErrAdultNotAllowedInYouthSlot):
			h.logger.Warn("POST /reservations - Youth slot restriction: user_id=%s", userID)
			handlers.RespondForbidden(w, msgYouthSlotOnly)

		case errors.Is(err, createReservation.ErrPriceNotFound):
			h.logger.Warn("POST /reservations - Price not found: device_id=%s, hours=%d-%d",
				req.DeviceID, req.StartHour, req.EndHour)
			handlers.RespondBadRequest(w, msgPriceNotFound)

		case errors.Is(err, createReservation.ErrRuleViolation):
			h.logger.Warn("POST /reservations - Rule violation: user_id=%s, error=%v", userID, err)
			handlers.RespondError(w, http.StatusConflict, err.Error())

		case errors.Is(err, createReservation.ErrSlotAlreadyBooked):
			h.logger.Warn("POST /reservations - Slot already booked: device_id=%s, hours=%d-%d",
				req.DeviceID, req.StartHour, req.EndHour)
			handlers.RespondError(w, http.StatusConflict, msgSlotAlreadyBooked)

		case errors.Is(err, createReservation.ErrMaxUnitsExceeded):
			h.logger.Warn("POST /reservations - Unit limit reached: device_id=%s", req.DeviceID)
			handlers.RespondError(w, http.StatusConflict, msgMaxUnitsExceeded)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: id=%s, number=%s, user_id=%s",
		result.ID, result.ReservationNumber, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
