package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
)

type contextKey string

const staffIDKey contextKey = "staffID"

// HeaderStaffID заголовок с идентификатором сотрудника, от имени которого
// выполняется запрос. Аутентификацию выполняет вышестоящий gateway, сюда
// приходит уже проверенный ID.
const HeaderStaffID = "X-Staff-ID"

// Auth проверяет наличие идентификатора сотрудника в запросе и кладет его
// в контекст. Запросы без корректного заголовка отклоняются.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderStaffID)
		if raw == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок "+HeaderStaffID)
			return
		}

		staffID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || staffID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный заголовок "+HeaderStaffID)
			return
		}

		ctx := context.WithValue(r.Context(), staffIDKey, staffID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetStaffID возвращает идентификатор сотрудника из контекста запроса
func GetStaffID(ctx context.Context) (int64, bool) {
	staffID, ok := ctx.Value(staffIDKey).(int64)
	return staffID, ok
}
