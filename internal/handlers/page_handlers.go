// File: internal/handlers/page_handlers.go
package handlers

import (
	"html/template"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/sohbetapp/sohbet/internal/domain"
	"github.com/sohbetapp/sohbet/internal/middleware"
	"github.com/sohbetapp/sohbet/internal/services"
	"github.com/sohbetapp/sohbet/internal/services/user_services"
)

// Template cache to avoid parsing templates on every request
var (
	templateCache     map[string]*template.Template
	templateCacheOnce sync.Once
)

// loadTemplateCache creates separate template sets for each page
func loadTemplateCache() {
	templateCache = make(map[string]*template.Template)

	templates := []string{"index.html", "login.html", "register.html", "chat.html", "error.html"}

	for _, tmpl := range templates {
		ts := template.New(tmpl)

		ts, err := ts.ParseFiles("web/templates/layout.html")
		if err != nil {
			log.Fatalf("Error parsing layout for %s: %v", tmpl, err)
		}

		ts, err = ts.ParseFiles("web/templates/" + tmpl)
		if err != nil {
			log.Fatalf("Error parsing %s: %v", tmpl, err)
		}

		templateCache[tmpl] = ts
	}
}

// renderTemplate uses the template cache and injects security headers.
func renderTemplate(w http.ResponseWriter, tmpl string, data map[string]interface{}) {
	templateCacheOnce.Do(loadTemplateCache)
	addSecurityHeaders(w)

	if data == nil {
		data = make(map[string]interface{})
	}
	if _, ok := data["Theme"]; !ok {
		data["Theme"] = domain.ThemeLight
	}

	t, ok := templateCache[tmpl]
	if !ok {
		log.Printf("Template %s not found in cache", tmpl)
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	err := t.ExecuteTemplate(w, "layout.html", data)
	if err != nil {
		log.Printf("Template render error for %s: %v", tmpl, err)
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
	}
}

func addSecurityHeaders(w http.ResponseWriter) {
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
}

// renderedMessage is one transcript entry prepared for the chat template.
// Assistant markdown is rendered to sanitized HTML; user text stays escaped.
type renderedMessage struct {
	Role    string
	Content string
	HTML    template.HTML
}

type PageHandler struct {
	ChatService    *services.ChatService
	ProfileService *user_services.ProfileService
}

func NewPageHandler(cs *services.ChatService, ps *user_services.ProfileService) *PageHandler {
	return &PageHandler{ChatService: cs, ProfileService: ps}
}

func (h *PageHandler) ShowIndexPage(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, "index.html", nil)
}

func (h *PageHandler) ShowLoginPage(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, "login.html", nil)
}

func (h *PageHandler) ShowRegisterPage(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, "register.html", nil)
}

// ShowChatPage renders the chat surface: the caller's conversations, the
// selected transcript, and the profile theme. The theme travels with the
// page data; there is no ambient theme state.
func (h *PageHandler) ShowChatPage(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	profile, err := h.ProfileService.GetProfile(r.Context(), userID)
	if err != nil {
		h.ShowErrorPage(w, "500", "Server Error", "Could not load your profile.")
		return
	}

	chats, err := h.ChatService.GetUserChats(r.Context(), userID)
	if err != nil {
		h.ShowErrorPage(w, "500", "Server Error", "Could not load your chats.")
		return
	}

	data := map[string]interface{}{
		"Chats":     chats,
		"Theme":     profile.Theme,
		"HasAPIKey": profile.HasAPIKey(),
		"Models":    user_services.SupportedModels,
		"Model":     profile.SelectedModel,
		// Always present so the template can compare against it.
		"CurrentChatID": uint(0),
	}

	if raw := r.URL.Query().Get("chat"); raw != "" {
		chatID, err := strconv.ParseUint(raw, 10, 32)
		if err == nil {
			messages, err := h.ChatService.GetChatMessages(r.Context(), userID, uint(chatID))
			if err == nil {
				rendered := make([]renderedMessage, 0, len(messages))
				for _, m := range messages {
					rm := renderedMessage{Role: m.Role, Content: m.Content}
					if m.Role == domain.RoleAssistant {
						rm.HTML = RenderMarkdown(m.Content)
					}
					rendered = append(rendered, rm)
				}
				data["CurrentChatID"] = uint(chatID)
				data["Messages"] = rendered
			}
		}
	}

	renderTemplate(w, "chat.html", data)
}

func (h *PageHandler) ShowErrorPage(w http.ResponseWriter, code, title, message string) {
	renderTemplate(w, "error.html", map[string]interface{}{
		"Code":    code,
		"Title":   title,
		"Message": message,
	})
}
