package create_reservation

import (
	"time"

	"github.com/gameplaza/GP-ReservationService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID      string // ID пользователя
	DeviceID    string // ID устройства
	Date        string // Дата операционного дня (YYYY-MM-DD, время зала)
	StartHour   int    // Час начала в расширенной шкале (0-30)
	EndHour     int    // Час конца в расширенной шкале (0-30)
	CreditType  string // fixed, freeplay или unlimited
	PlayerCount int    // 1 или 2
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID                string // ID созданного бронирования
	ReservationNumber string // Человекочитаемый номер, GP-YYYYMMDD-NNNN
	UserID            string
	DeviceID          string
	Date              string // Дата операционного дня
	StartHour         int
	EndHour           int
	Status            string
	CreditType        string
	PlayerCount       int
	TotalPrice        int // Итоговая цена с учетом 2P-надбавки

	CreatedAt time.Time
	UpdatedAt time.Time
}

func toResponse(res *domain.Reservation) *Response {
	return &Response{
		ID:                res.ID,
		ReservationNumber: res.ReservationNumber,
		UserID:            res.UserID,
		DeviceID:          res.DeviceID,
		Date:              res.Date.String(),
		StartHour:         res.TimeSlot.StartHour(),
		EndHour:           res.TimeSlot.EndHour(),
		Status:            string(res.Status),
		CreditType:        string(res.CreditType),
		PlayerCount:       res.PlayerCount,
		TotalPrice:        res.TotalPrice,
		CreatedAt:         res.CreatedAt,
		UpdatedAt:         res.UpdatedAt,
	}
}
