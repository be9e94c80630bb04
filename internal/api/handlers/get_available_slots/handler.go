package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gameplaza/GP-ReservationService/internal/api/handlers"
	getAvailableSlots "github.com/gameplaza/GP-ReservationService/internal/usecase/get_available_slots"
)

const (
	msgMissingDate    = "отсутствует параметр date"
	msgInvalidInput   = "некорректные параметры запроса"
	msgPastDate       = "запрошенная дата уже прошла"
	msgDeviceNotFound = "устройство не найдено"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/devices/{deviceId}/available-slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	deviceID := vars["deviceId"]

	date := r.URL.Query().Get("date")
	if date == "" {
		h.logger.Warn("GET /devices/{deviceId}/available-slots - Missing date parameter")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	req := &getAvailableSlots.Request{
		DeviceID: deviceID,
		Date:     date,
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /devices/{deviceId}/available-slots - Invalid input: device_id=%s, error=%v",
				deviceID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getAvailableSlots.ErrPastDate):
			h.logger.Warn("GET /devices/{deviceId}/available-slots - Past date: device_id=%s, date=%s",
				deviceID, date)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, getAvailableSlots.ErrDeviceNotFound):
			h.logger.Warn("GET /devices/{deviceId}/available-slots - Device not found: device_id=%s", deviceID)
			handlers.RespondNotFound(w, msgDeviceNotFound)

		default:
			h.logger.Error("GET /devices/{deviceId}/available-slots - Failed: device_id=%s, error=%v",
				deviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /devices/{deviceId}/available-slots - %d slots returned: device_id=%s, date=%s",
		len(result.Slots), deviceID, date)
	handlers.RespondJSON(w, http.StatusOK, result)
}
