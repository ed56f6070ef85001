// File: internal/handlers/settings_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sohbetapp/sohbet/internal/middleware"
	"github.com/sohbetapp/sohbet/internal/services/user_services"
)

type SettingsHandler struct {
	ProfileService *user_services.ProfileService
}

func NewSettingsHandler(ps *user_services.ProfileService) (*SettingsHandler, error) {
	if ps == nil {
		return nil, errors.New("profile service is required")
	}
	return &SettingsHandler{ProfileService: ps}, nil
}

// settingsView is the API projection of a profile. The stored API key never
// leaves the server; only its presence is reported.
type settingsView struct {
	HasAPIKey     bool     `json:"has_api_key"`
	SelectedModel string   `json:"selected_model"`
	Theme         string   `json:"theme"`
	Models        []string `json:"models"`
}

// GetSettings returns the caller's current settings and the model catalog.
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	profile, err := h.ProfileService.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, "Could not load settings", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, settingsView{
		HasAPIKey:     profile.HasAPIKey(),
		SelectedModel: profile.SelectedModel,
		Theme:         profile.Theme,
		Models:        user_services.SupportedModels,
	})
}

// UpdateSettings applies an explicit settings change. Absent fields are
// left untouched.
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		APIKey        *string `json:"api_key"`
		SelectedModel *string `json:"selected_model"`
		Theme         *string `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	profile, err := h.ProfileService.UpdateProfile(r.Context(), userID, user_services.ProfileUpdate{
		APIKey:        req.APIKey,
		SelectedModel: req.SelectedModel,
		Theme:         req.Theme,
	})
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, settingsView{
		HasAPIKey:     profile.HasAPIKey(),
		SelectedModel: profile.SelectedModel,
		Theme:         profile.Theme,
		Models:        user_services.SupportedModels,
	})
}

// ToggleTheme flips between light and dark.
func (h *SettingsHandler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	profile, err := h.ProfileService.ToggleTheme(r.Context(), userID)
	if err != nil {
		writeError(w, "Could not update theme", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"theme": profile.Theme})
}
