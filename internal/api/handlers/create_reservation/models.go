package create_reservation

import (
	"time"

	createReservation "github.com/gameplaza/GP-ReservationService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	DeviceID    string `json:"deviceId"`
	Date        string `json:"date"`      // "2026-09-15"
	StartHour   int    `json:"startHour"` // Расширенная шкала 0-30
	EndHour     int    `json:"endHour"`
	CreditType  string `json:"creditType"`
	PlayerCount int    `json:"playerCount"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID                string    `json:"id"`
	ReservationNumber string    `json:"reservationNumber"`
	UserID            string    `json:"userId"`
	DeviceID          string    `json:"deviceId"`
	Date              string    `json:"date"`
	StartHour         int       `json:"startHour"`
	EndHour           int       `json:"endHour"`
	Status            string    `json:"status"`
	CreditType        string    `json:"creditType"`
	PlayerCount       int       `json:"playerCount"`
	TotalPrice        int       `json:"totalPrice"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(userID string) *createReservation.Request {
	return &createReservation.Request{
		UserID:      userID,
		DeviceID:    r.DeviceID,
		Date:        r.Date,
		StartHour:   r.StartHour,
		EndHour:     r.EndHour,
		CreditType:  r.CreditType,
		PlayerCount: r.PlayerCount,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:                resp.ID,
		ReservationNumber: resp.ReservationNumber,
		UserID:            resp.UserID,
		DeviceID:          resp.DeviceID,
		Date:              resp.Date,
		StartHour:         resp.StartHour,
		EndHour:           resp.EndHour,
		Status:            resp.Status,
		CreditType:        resp.CreditType,
		PlayerCount:       resp.PlayerCount,
		TotalPrice:        resp.TotalPrice,
		CreatedAt:         resp.CreatedAt,
		UpdatedAt:         resp.UpdatedAt,
	}
}
