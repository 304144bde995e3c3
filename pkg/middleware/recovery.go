package middleware

import (
	"net/http"
	"runtime/debug"

	apperrors "roombook/pkg/errors"
	"roombook/pkg/httputil"
	"roombook/pkg/logger"
)

// Recovery turns handler panics into a 500 response instead of tearing down
// the connection.
func Recovery(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("Panic recovered",
						"request_id", requestIDFrom(r),
						"panic", rec,
						"method", r.Method,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)

					if err := httputil.WriteError(w, apperrors.Internal("Internal server error", nil)); err != nil {
						log.Error("failed to write panic response", "error", err)
					}
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// requestIDFrom reads the id stamped by RequestLogging; empty when the
// request never passed through it.
func requestIDFrom(r *http.Request) string {
	if id, ok := r.Context().Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}
