package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"

	"halcyon-hq/torii/pkg/gateway/types"
)

// RecoveryMiddleware recovers from panics in HTTP handlers and returns the
// gateway's 500 transport-failure body. The panic and stack trace are
// logged server-side and never exposed to the caller.
//
// Example usage:
//
//	handler = RecoveryMiddleware(handler)
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				requestID := GetRequestID(r.Context())
				stack := debug.Stack()

				slog.ErrorContext(r.Context(), "panic in handler",
					"error", err,
					"request_id", requestID,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(stack),
				)

				errResp := types.NewTransportError()

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(errResp.HTTPStatusCode())
				_ = json.NewEncoder(w).Encode(errResp)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
