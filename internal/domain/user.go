package domain

import (
	"time"

	"github.com/gameplaza/GP-ReservationService/pkg/types"
)

// UserStatus represents the account standing of a user
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"
)

// User represents a venue customer as seen by the reservation core.
type User struct {
	ID        string
	Email     string
	FullName  string
	Phone     *string
	Status    UserStatus
	BirthDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanReserve returns true if the user is allowed to create reservations.
// Suspended and banned accounts cannot book.
func (u *User) CanReserve() bool {
	return u.Status == UserStatusActive
}

// Age returns the user's age in full years on the given venue-local date,
// or nil when the birth date is unknown.
func (u *User) Age(on types.VenueDate) *int {
	if u.BirthDate == nil {
		return nil
	}
	birth := u.BirthDate.In(types.VenueLocation)
	age := on.Year() - birth.Year()
	// День рождения в этом году еще не наступил
	if on.Month() < birth.Month() ||
		(on.Month() == birth.Month() && on.Day() < birth.Day()) {
		age--
	}
	if age < 0 {
		age = 0
	}
	return &age
}

// IsYouth returns true only when the user is verifiably under the adult
// threshold on the given date. Unknown birth dates count as adult: the venue
// cannot admit someone to a youth-restricted slot without proof of age.
func (u *User) IsYouth(on types.VenueDate) bool {
	age := u.Age(on)
	return age != nil && *age < AdultAgeThreshold
}
