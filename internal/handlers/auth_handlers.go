// File: internal/handlers/auth_handlers.go
package handlers

import (
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/sohbetapp/sohbet/internal/services/user_services"
)

var (
	usernameRegex     = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	passwordMinLength = 8
)

// AuthHandler holds the dependencies for authentication handlers.
type AuthHandler struct {
	AuthService *user_services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service *user_services.AuthService) *AuthHandler {
	return &AuthHandler{AuthService: service}
}

// validateInput ensures that username and password meet basic rules.
func validateInput(username, password string) (string, string, string) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	var errMsg string
	switch {
	case !usernameRegex.MatchString(username):
		errMsg = "Username must be 3-20 characters, alphanumeric or underscore."
	case len(password) < passwordMinLength:
		errMsg = "Password must be at least 8 characters."
	}
	return username, password, errMsg
}

// Register handles new user registrations, including form validation and rendering.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	username, password, errMsg := validateInput(
		r.FormValue("username"),
		r.FormValue("password"),
	)
	if errMsg != "" {
		renderTemplate(w, "register.html", map[string]interface{}{"Error": errMsg})
		return
	}

	if _, err := h.AuthService.Register(r.Context(), username, password); err != nil {
		log.Printf("Registration error: %v", err)
		renderTemplate(w, "register.html", map[string]interface{}{"Error": err.Error()})
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Login validates user credentials, sets the auth cookie, and redirects to chat.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := strings.TrimSpace(r.FormValue("password"))
	if username == "" || password == "" {
		renderTemplate(w, "login.html", map[string]interface{}{"Error": "Username and password are required."})
		return
	}

	token, err := h.AuthService.Login(r.Context(), username, password)
	if err != nil {
		log.Printf("Login error: %v", err)
		renderTemplate(w, "login.html", map[string]interface{}{"Error": "Invalid username or password."})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
		Secure:   true,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/chat", http.StatusSeeOther)
}

// Logout clears the auth cookie and sends the user back to the login page.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
