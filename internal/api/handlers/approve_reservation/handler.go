package approve_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gameplaza/GP-ReservationService/internal/api/handlers"
	"github.com/gameplaza/GP-ReservationService/internal/api/middleware"
	"github.com/gameplaza/GP-ReservationService/internal/service/reservations"
	"github.com/gameplaza/GP-ReservationService/internal/service/reservations/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "операция доступна только персоналу"
	msgCannotApprove      = "бронирование нельзя подтвердить из текущего статуса"
	msgDeviceNumber       = "необходимо указать номер устройства"
)

// approveRequest тело запроса на подтверждение
type approveRequest struct {
	DeviceNumber string `json:"deviceNumber"`
}

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/approve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationID := vars["reservationId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id}/approve - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var body approveRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/approve - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	req := &models.ApproveReservationRequest{
		UserID:       userID,
		IsStaff:      middleware.IsStaff(r.Context()),
		DeviceNumber: body.DeviceNumber,
	}

	result, err := h.service.Approve(r.Context(), reservationID, req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/approve - Not found: reservation_id=%s", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("PATCH /reservations/{id}/approve - Access denied: reservation_id=%s, user_id=%s",
				reservationID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id}/approve - Missing device number: reservation_id=%s",
				reservationID)
			handlers.RespondBadRequest(w, msgDeviceNumber)

		case errors.Is(err, reservations.ErrInvalidTransition):
			h.logger.Warn("PATCH /reservations/{id}/approve - Invalid transition: reservation_id=%s",
				reservationID)
			handlers.RespondError(w, http.StatusConflict, msgCannotApprove)

		default:
			h.logger.Error("PATCH /reservations/{id}/approve - Failed: reservation_id=%s, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/approve - Approved: reservation_id=%s, device_number=%s",
		reservationID, body.DeviceNumber)
	handlers.RespondJSON(w, http.StatusOK, result)
}
