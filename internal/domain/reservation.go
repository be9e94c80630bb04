package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/gameplaza/GP-ReservationService/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusApproved  ReservationStatus = "approved"
	StatusCheckedIn ReservationStatus = "checked_in"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusRejected  ReservationStatus = "rejected"
	StatusNoShow    ReservationStatus = "no_show"
)

var (
	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("domain: invalid reservation status transition")

	// ErrRejectionReasonRequired возвращается при отклонении брони без причины
	ErrRejectionReasonRequired = errors.New("domain: rejection reason is required")

	// ErrDeviceNumberRequired возвращается при подтверждении брони без номера устройства
	ErrDeviceNumberRequired = errors.New("domain: assigned device number is required")
)

// transitions is the reservation state machine. Approval and check-in are
// driven by venue staff; cancellation is allowed any time before check-in.
var transitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:   {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved:  {StatusCheckedIn, StatusCancelled, StatusNoShow},
	StatusCheckedIn: {StatusCompleted},
}

// Reservation represents a device booking for a venue-local date and an
// extended-hour time slot. Treated as immutable: state transitions return
// a new value instead of mutating the receiver.
type Reservation struct {
	ID                string
	UserID            string
	DeviceID          string
	Date              types.VenueDate
	TimeSlot          types.TimeSlot
	Status            ReservationStatus
	ReservationNumber string

	CreditType  CreditType
	PlayerCount int
	TotalPrice  int

	AssignedDeviceNumber *string
	RejectionReason      *string
	CheckedInAt          *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation still occupies its slot
// (pending, approved or checked_in).
func (r *Reservation) IsActive() bool {
	return r.Status == StatusPending || r.Status == StatusApproved || r.Status == StatusCheckedIn
}

// IsFinal returns true if the reservation reached a terminal status.
func (r *Reservation) IsFinal() bool {
	return !r.IsActive()
}

// StartDateTime resolves the slot start into a real instant, rolling
// extended hours (>= 24) into the following calendar day.
func (r *Reservation) StartDateTime() time.Time {
	return r.Date.At(r.TimeSlot.StartHour())
}

// EndDateTime resolves the slot end into a real instant.
func (r *Reservation) EndDateTime() time.Time {
	return r.Date.At(r.TimeSlot.EndHour())
}

// OverlapsWith reports whether two reservations occupy intersecting real-time
// windows, regardless of device. Comparison is done on resolved instants, so
// an overnight slot (hours 24-29) on date D correctly intersects a morning
// slot on date D+1.
func (r *Reservation) OverlapsWith(other *Reservation) bool {
	return r.StartDateTime().Before(other.EndDateTime()) &&
		other.StartDateTime().Before(r.EndDateTime())
}

// ConflictsWith reports whether other blocks r from being created: same
// device, both in a live status, intersecting resolved time windows.
func (r *Reservation) ConflictsWith(other *Reservation) bool {
	if other == nil || r.ID == other.ID {
		return false
	}
	if r.DeviceID != other.DeviceID {
		return false
	}
	if !r.IsActive() || !other.IsActive() {
		return false
	}
	return r.OverlapsWith(other)
}

// Approve transitions pending -> approved, assigning the physical device number.
func (r Reservation) Approve(deviceNumber string) (Reservation, error) {
	if deviceNumber == "" {
		return Reservation{}, ErrDeviceNumberRequired
	}
	next, err := r.transitionTo(StatusApproved)
	if err != nil {
		return Reservation{}, err
	}
	next.AssignedDeviceNumber = &deviceNumber
	return next, nil
}

// Reject transitions pending -> rejected with a mandatory reason.
func (r Reservation) Reject(reason string) (Reservation, error) {
	if reason == "" {
		return Reservation{}, ErrRejectionReasonRequired
	}
	next, err := r.transitionTo(StatusRejected)
	if err != nil {
		return Reservation{}, err
	}
	next.RejectionReason = &reason
	return next, nil
}

// CheckIn transitions approved -> checked_in, recording the arrival time.
func (r Reservation) CheckIn(now time.Time) (Reservation, error) {
	next, err := r.transitionTo(StatusCheckedIn)
	if err != nil {
		return Reservation{}, err
	}
	next.CheckedInAt = &now
	return next, nil
}

// Complete transitions checked_in -> completed.
func (r Reservation) Complete() (Reservation, error) {
	return r.transitionTo(StatusCompleted)
}

// Cancel transitions pending/approved -> cancelled.
func (r Reservation) Cancel() (Reservation, error) {
	return r.transitionTo(StatusCancelled)
}

// MarkNoShow transitions approved -> no_show.
func (r Reservation) MarkNoShow() (Reservation, error) {
	return r.transitionTo(StatusNoShow)
}

func (r Reservation) transitionTo(target ReservationStatus) (Reservation, error) {
	for _, allowed := range transitions[r.Status] {
		if allowed == target {
			next := r
			next.Status = target
			next.UpdatedAt = time.Now().In(types.VenueLocation)
			return next, nil
		}
	}
	return Reservation{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.Status, target)
}

// ValidReservationStatus проверяет, что строка является допустимым статусом
func ValidReservationStatus(s string) (ReservationStatus, bool) {
	status := ReservationStatus(s)
	switch status {
	case StatusPending, StatusApproved, StatusCheckedIn,
		StatusCompleted, StatusCancelled, StatusRejected, StatusNoShow:
		return status, true
	}
	return "", false
}
