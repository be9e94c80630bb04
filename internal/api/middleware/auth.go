package middleware

import (
	"context"
	"net/http"

	"github.com/gameplaza/GP-ReservationService/internal/api/handlers"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	staffKey
)

const (
	// HeaderUserID заголовок с ID аутентифицированного пользователя,
	// проставляется API-гейтвеем
	HeaderUserID = "X-User-ID"

	// HeaderStaffRole заголовок роли персонала, проставляется гейтвеем
	// только для сотрудников зала
	HeaderStaffRole = "X-Staff-Role"
)

// Auth проверяет наличие X-User-ID и кладет идентификатор пользователя
// и признак персонала в контекст запроса
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(HeaderUserID)
		if userID == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок X-User-ID")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		if r.Header.Get(HeaderStaffRole) != "" {
			ctx = context.WithValue(ctx, staffKey, true)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok
}

// IsStaff сообщает, аутентифицирован ли запрос как персонал зала
func IsStaff(ctx context.Context) bool {
	isStaff, ok := ctx.Value(staffKey).(bool)
	return ok && isStaff
}
