package middleware

import (
	"net/http"
	"runtime/debug"

	"waroengpos/pkg/logger"
	"waroengpos/pkg/response"
)

// Recover catches panics from downstream handlers, logs the stack trace and
// returns a 500 envelope instead of killing the connection.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.WithCtx(r.Context()).Error("panic recovered",
					"error", rec,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)
				response.Error(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
