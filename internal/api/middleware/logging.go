package middleware

import (
	"net/http"
	"time"
)

// Logging пишет строку лога на каждый запрос и перехватывает панику обработчика
func Logging(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := newStatusWriter(w)
			requestID, _ := GetRequestID(r.Context())

			defer func() {
				if p := recover(); p != nil {
					logger.Error("%s %s - panic: %v, request_id=%s", r.Method, r.URL.Path, p, requestID)
					http.Error(sw, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
				logger.Info("%s %s - %d in %s, request_id=%s",
					r.Method, r.URL.Path, sw.status, time.Since(start).Round(time.Microsecond), requestID)
			}()

			next.ServeHTTP(sw, r)
		})
	}
}
