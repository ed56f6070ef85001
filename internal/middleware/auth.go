package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/sohbetapp/sohbet/internal/services/user_services"
)

type contextKey string

// UserIDKey is the request-context key carrying the authenticated user ID.
// Handlers read it explicitly; there is no ambient current-user state.
const UserIDKey contextKey = "userID"

// UserIDFromContext extracts the authenticated user ID set by the JWT
// middleware.
func UserIDFromContext(ctx context.Context) (uint, bool) {
	userID, ok := ctx.Value(UserIDKey).(uint)
	return userID, ok
}

// NewJWTMiddleware creates middleware to validate JWT from cookie. Browser
// page requests are redirected to the login page; API requests get a 401.
func NewJWTMiddleware(authService *user_services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie("auth_token")
			if err != nil {
				deny(w, r)
				return
			}

			userID, err := authService.ValidateJWTToken(cookie.Value)
			if err != nil {
				log.Printf("[AuthMiddleware] Invalid token: %v", err)
				clearAuthCookie(w)
				deny(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func deny(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}
