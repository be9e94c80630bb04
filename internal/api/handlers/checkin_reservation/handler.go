package checkin_reservation

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
	msgNotFound      = "бронирование не найдено"
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "операция доступна только персоналу"
	msgCannotCheckIn = "check-in возможен только для подтвержденной брони"
)

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

// Handle PATCH /api/v1/reservations/{reservationId}/checkin
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationID := vars["reservationId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id}/checkin - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.CheckInReservationRequest{
		UserID:  userID,
		IsStaff: middleware.IsStaff(r.Context()),
	}

	result, err := h.service.CheckIn(r.Context(), reservationID, req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/checkin - Not found: reservation_id=%s", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("PATCH /reservations/{id}/checkin - Access denied: reservation_id=%s, user_id=%s",
				reservationID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrInvalidTransition):
			h.logger.Warn("PATCH /reservations/{id}/checkin - Invalid transition: reservation_id=%s",
				reservationID)
			handlers.RespondError(w, http.StatusConflict, msgCannotCheckIn)

		default:
			h.logger.Error("PATCH /reservations/{id}/checkin - Failed: reservation_id=%s, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/checkin - Checked in: reservation_id=%s, user_id=%s",
		reservationID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
