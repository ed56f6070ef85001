// File: internal/middleware/requestid.go
package middleware

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader is set on every response so a failed send can be
// correlated with the server log line that recorded it.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns a fresh identifier to each request unless the client
// already supplied one.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}
