package middleware

import (
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
)

const sentryFlushTimeout = 2 * time.Second

// SentryMiddleware перехватывает паники обработчиков: событие уходит в
// Sentry вместе с методом и маршрутом, клиент получает 500 вместо
// оборванного соединения.
func SentryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub := sentry.GetHubFromContext(r.Context())
		if hub == nil {
			hub = sentry.CurrentHub().Clone()
			r = r.WithContext(sentry.SetHubOnContext(r.Context(), hub))
		}

		hub.Scope().SetRequest(r)
		hub.Scope().SetTag("http.method", r.Method)
		hub.Scope().SetTag("http.route", r.URL.Path)

		defer func() {
			if rec := recover(); rec != nil {
				hub.Recover(rec)
				sentry.Flush(sentryFlushTimeout)

				handlers.RespondInternalError(w)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
