package userservice

import (
	"time"

	"github.com/gameplaza/GP-ReservationService/internal/domain"
)

// User модель пользователя из UserService
type User struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FullName  string  `json:"full_name"`
	Phone     *string `json:"phone"`
	Status    string  `json:"status"`     // active, suspended, banned
	BirthDate *string `json:"birth_date"` // YYYY-MM-DD, может отсутствовать
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ToDomain преобразует DTO в доменную модель пользователя.
// Некорректная дата рождения трактуется как неизвестная.
func (u *User) ToDomain() *domain.User {
	user := &domain.User{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Phone:    u.Phone,
		Status:   domain.UserStatus(u.Status),
	}

	if u.BirthDate != nil {
		if birthDate, err := time.ParseInLocation(domain.DateFormat, *u.BirthDate, time.UTC); err == nil {
			user.BirthDate = &birthDate
		}
	}

	return user
}
