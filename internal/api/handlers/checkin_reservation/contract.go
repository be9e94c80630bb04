package checkin_reservation

import (
	"context"

	"github.com/gameplaza/GP-ReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	CheckIn(ctx context.Context, id string, req *models.CheckInReservationRequest) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
