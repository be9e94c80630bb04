package models

import (
	"errors"
	"time"

	"github.com/gameplaza/GP-ReservationService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// CancelReservationRequest запрос на отмену бронирования
type CancelReservationRequest struct {
	UserID  string `json:"userId"`
	IsStaff bool   `json:"-"`
}

// ApproveReservationRequest запрос на подтверждение брони персоналом
type ApproveReservationRequest struct {
	UserID       string `json:"userId"`
	IsStaff      bool   `json:"-"`
	DeviceNumber string `json:"deviceNumber"` // Номер устройства на полу зала
}

// RejectReservationRequest запрос на отклонение брони персоналом
type RejectReservationRequest struct {
	UserID  string `json:"userId"`
	IsStaff bool   `json:"-"`
	Reason  string `json:"reason"`
}

// CheckInReservationRequest запрос на отметку прибытия гостя
type CheckInReservationRequest struct {
	UserID  string `json:"userId"`
	IsStaff bool   `json:"-"`
}

// GetUserReservationsRequest запрос на получение броней пользователя
type GetUserReservationsRequest struct {
	UserID string  `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// ToDomainStatus валидирует и конвертирует строковый статус
func ToDomainStatus(s string) (domain.ReservationStatus, error) {
	status, ok := domain.ValidReservationStatus(s)
	if !ok {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// Response модели

// ReservationResponse представление брони для внешних слоев
type ReservationResponse struct {
	ID                string     `json:"id"`
	ReservationNumber string     `json:"reservationNumber"`
	UserID            string     `json:"userId"`
	DeviceID          string     `json:"deviceId"`
	Date              string     `json:"date"`
	StartHour         int        `json:"startHour"`
	EndHour           int        `json:"endHour"`
	Status            string     `json:"status"`
	CreditType        string     `json:"creditType"`
	PlayerCount       int        `json:"playerCount"`
	TotalPrice        int        `json:"totalPrice"`
	AssignedDevice    *string    `json:"assignedDeviceNumber,omitempty"`
	RejectionReason   *string    `json:"rejectionReason,omitempty"`
	CheckedInAt       *time.Time `json:"checkedInAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// ReservationListResponse список броней
type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
	Total        int                    `json:"total"`
}

// FromDomainReservation конвертирует доменную модель в response
func FromDomainReservation(res *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
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
		AssignedDevice:    res.AssignedDeviceNumber,
		RejectionReason:   res.RejectionReason,
		CheckedInAt:       res.CheckedInAt,
		CreatedAt:         res.CreatedAt,
		UpdatedAt:         res.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список доменных моделей
func FromDomainReservationList(list []*domain.Reservation) *ReservationListResponse {
	out := make([]*ReservationResponse, 0, len(list))
	for _, res := range list {
		out = append(out, FromDomainReservation(res))
	}
	return &ReservationListResponse{
		Reservations: out,
		Total:        len(out),
	}
}
