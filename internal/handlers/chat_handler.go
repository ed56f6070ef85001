// File: internal/handlers/chat_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/sohbetapp/sohbet/internal/middleware"
	"github.com/sohbetapp/sohbet/internal/services"
	chatservice "github.com/sohbetapp/sohbet/internal/services/chat"
)

type ChatHandler struct {
	ChatService *services.ChatService
}

func NewChatHandler(cs *services.ChatService) (*ChatHandler, error) {
	if cs == nil {
		return nil, errors.New("chat service is required")
	}
	return &ChatHandler{ChatService: cs}, nil
}

// GetUserChats handles the request to retrieve all chats for a user,
// ordered by last activity.
func (h *ChatHandler) GetUserChats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	chats, err := h.ChatService.GetUserChats(r.Context(), userID)
	if err != nil {
		writeError(w, "Could not retrieve chats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, chats)
}

// CreateChat starts a new, empty conversation.
func (h *ChatHandler) CreateChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Title string `json:"title"`
	}
	// The body is optional; an absent title gets the sentinel.
	_ = json.NewDecoder(r.Body).Decode(&req)

	chat, err := h.ChatService.CreateChat(r.Context(), userID, req.Title)
	if err != nil {
		writeError(w, "Could not create chat", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, chat)
}

// GetChatMessages returns the full transcript of one chat.
func (h *ChatHandler) GetChatMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	chatID, err := chatIDFromRequest(r)
	if err != nil {
		writeError(w, "Invalid chat ID", http.StatusBadRequest)
		return
	}

	messages, err := h.ChatService.GetChatMessages(r.Context(), userID, chatID)
	if err != nil {
		writeChatError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

// SendMessage runs the send pipeline for one user turn and returns the
// assistant reply together with the pipeline's terminal state.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	chatID, err := chatIDFromRequest(r)
	if err != nil {
		writeError(w, "Invalid chat ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Content == "" {
		writeError(w, "Message content is required", http.StatusBadRequest)
		return
	}

	outcome, err := h.ChatService.SendMessage(r.Context(), userID, chatID, req.Content)
	if err != nil {
		writeSendError(w, outcome, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reply":             outcome.Reply,
		"state":             outcome.State.String(),
		"user_message":      outcome.UserMessage,
		"assistant_message": outcome.AssistantMessage,
	})
}

// DeleteChat removes a chat and its messages.
func (h *ChatHandler) DeleteChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	chatID, err := chatIDFromRequest(r)
	if err != nil {
		writeError(w, "Invalid chat ID", http.StatusBadRequest)
		return
	}

	if err := h.ChatService.DeleteChat(r.Context(), userID, chatID); err != nil {
		writeChatError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ExportChat serves the conversation as a downloadable JSON document.
func (h *ChatHandler) ExportChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	chatID, err := chatIDFromRequest(r)
	if err != nil {
		writeError(w, "Invalid chat ID", http.StatusBadRequest)
		return
	}

	doc, err := h.ChatService.ExportChat(r.Context(), userID, chatID)
	if err != nil {
		writeChatError(w, err)
		return
	}

	filename := fmt.Sprintf("chat-%s-%d.json", doc.Chat.Title, time.Now().UnixMilli())
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(doc)
}

// ImportChat creates a new conversation from an uploaded export document.
func (h *ChatHandler) ImportChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	doc, err := chatservice.ParseExportDocument(r.Body)
	if err != nil {
		writeError(w, "Invalid import document", http.StatusBadRequest)
		return
	}

	chat, err := h.ChatService.ImportChat(r.Context(), userID, doc)
	if err != nil {
		writeChatError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, chat)
}

func chatIDFromRequest(r *http.Request) (uint, error) {
	vars := mux.Vars(r)
	chatID, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(chatID), nil
}

// writeChatError maps service error kinds to HTTP statuses.
func writeChatError(w http.ResponseWriter, err error) {
	var chatErr *chatservice.ChatError
	if errors.As(err, &chatErr) {
		switch chatErr.Type {
		case chatservice.ErrTypeUnauthorized:
			writeError(w, "Chat not found", http.StatusNotFound)
			return
		case chatservice.ErrTypeValidation:
			writeError(w, chatErr.Message, http.StatusBadRequest)
			return
		case chatservice.ErrTypeImport:
			writeError(w, chatErr.Message, http.StatusBadRequest)
			return
		case chatservice.ErrTypePrecondition:
			writeError(w, chatErr.Message, http.StatusPreconditionFailed)
			return
		}
	}
	writeError(w, "Something went wrong", http.StatusInternalServerError)
}

// writeSendError reports a pipeline failure as a single user-visible error,
// including how far the send got so the client can explain an orphan user
// message.
func writeSendError(w http.ResponseWriter, outcome *chatservice.SendOutcome, err error) {
	var chatErr *chatservice.ChatError
	status := http.StatusInternalServerError
	message := "Something went wrong"

	if errors.As(err, &chatErr) {
		message = chatErr.Message
		switch chatErr.Type {
		case chatservice.ErrTypePrecondition:
			status = http.StatusPreconditionFailed
		case chatservice.ErrTypeUnauthorized:
			status = http.StatusNotFound
			message = "Chat not found"
		case chatservice.ErrTypeValidation:
			status = http.StatusBadRequest
		case chatservice.ErrTypeCompletion:
			status = http.StatusBadGateway
			if cause := chatErr.Unwrap(); cause != nil {
				message = cause.Error()
			}
		}
	}

	body := map[string]interface{}{"error": message}
	if outcome != nil {
		body["state"] = outcome.State.String()
		body["partially_failed"] = outcome.PartiallyFailed
	}
	writeJSON(w, status, body)
}

// writeJSON is a helper for sending JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError is a helper for sending JSON error responses.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}
