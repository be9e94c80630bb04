package complete_reservation

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gameplaza/GP-ReservationService/internal/api/handlers"
	"github.com/gameplaza/GP-ReservationService/internal/api/middleware"
	"github.com/gameplaza/GP-ReservationService/internal/service/reservations"
	"github.com/gameplaza/GP-ReservationService/internal/service/reservations/models"
)

const (
	msgNotFound         = "бронирование не найдено"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "операция доступна только персоналу"
	msgCannotComplete   = "завершить можно только сессию после check-in"
	msgCannotMarkNoShow = "неявку можно отметить только по подтвержденной брони"
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

// HandleComplete PATCH /api/v1/reservations/{reservationId}/complete
func (h *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, "complete", msgCannotComplete, h.service.Complete)
}

// HandleNoShow PATCH /api/v1/reservations/{reservationId}/no-show
func (h *Handler) HandleNoShow(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, "no-show", msgCannotMarkNoShow, h.service.MarkNoShow)
}

type transitionFn func(ctx context.Context, id string, userID string, isStaff bool) (*models.ReservationResponse, error)

func (h *Handler) handleTransition(w http.ResponseWriter, r *http.Request, op string, conflictMsg string, fn transitionFn) {
	vars := mux.Vars(r)
	reservationID := vars["reservationId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id}/%s - Missing user ID", op)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := fn(r.Context(), reservationID, userID, middleware.IsStaff(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/%s - Not found: reservation_id=%s", op, reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("PATCH /reservations/{id}/%s - Access denied: reservation_id=%s, user_id=%s",
				op, reservationID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrInvalidTransition):
			h.logger.Warn("PATCH /reservations/{id}/%s - Invalid transition: reservation_id=%s",
				op, reservationID)
			handlers.RespondError(w, http.StatusConflict, conflictMsg)

		default:
			h.logger.Error("PATCH /reservations/{id}/%s - Failed: reservation_id=%s, error=%v",
				op, reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/%s - Done: reservation_id=%s, user_id=%s", op, reservationID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
