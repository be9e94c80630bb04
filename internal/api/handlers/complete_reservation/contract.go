package complete_reservation

import (
	"context"

	"github.com/gameplaza/GP-ReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	Complete(ctx context.Context, id string, userID string, isStaff bool) (*models.ReservationResponse, error)
	MarkNoShow(ctx context.Context, id string, userID string, isStaff bool) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
