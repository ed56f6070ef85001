// File: internal/handlers/chat_handler_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/sohbetapp/sohbet/internal/domain"
	"github.com/sohbetapp/sohbet/internal/middleware"
	chatrepo "github.com/sohbetapp/sohbet/internal/repository/chat"
	messagerepo "github.com/sohbetapp/sohbet/internal/repository/message"
	profilerepo "github.com/sohbetapp/sohbet/internal/repository/profile"
	"github.com/sohbetapp/sohbet/internal/services"
	"github.com/sohbetapp/sohbet/internal/services/ai"
)

type stubProvider struct {
	reply string
	err   error
}

func (p *stubProvider) Complete(ctx context.Context, apiKey, model string, transcript []ai.Turn) (string, error) {
	_ = ctx
	_ = apiKey
	_ = model
	_ = transcript
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

type handlerEnv struct {
	router   *mux.Router
	svc      *services.ChatService
	provider *stubProvider
	profiles profilerepo.ProfileRepository
}

// asUser injects the authenticated user the way the JWT middleware does.
func asUser(userID uint, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), middleware.UserIDKey, userID)
		next(w, r.WithContext(ctx))
	}
}

func newHandlerEnv(t *testing.T, userID uint) *handlerEnv {
	t.Helper()
	t.Setenv("GO_ENV", "test")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.Profile{}, &domain.Chat{}, &domain.Message{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	provider := &stubProvider{reply: "ok"}
	profiles := profilerepo.NewProfileRepository(db)
	svc, err := services.NewChatService(
		chatrepo.NewChatRepository(db),
		messagerepo.NewMessageRepository(db),
		profiles,
		provider,
	)
	if err != nil {
		t.Fatalf("new chat service: %v", err)
	}

	handler, err := NewChatHandler(svc)
	if err != nil {
		t.Fatalf("new chat handler: %v", err)
	}

	router := mux.NewRouter()
	router.HandleFunc("/api/chats", asUser(userID, handler.GetUserChats)).Methods(http.MethodGet)
	router.HandleFunc("/api/chats", asUser(userID, handler.CreateChat)).Methods(http.MethodPost)
	router.HandleFunc("/api/chats/import", asUser(userID, handler.ImportChat)).Methods(http.MethodPost)
	router.HandleFunc("/api/chats/{id:[0-9]+}/messages", asUser(userID, handler.SendMessage)).Methods(http.MethodPost)
	router.HandleFunc("/api/chats/{id:[0-9]+}/messages", asUser(userID, handler.GetChatMessages)).Methods(http.MethodGet)
	router.HandleFunc("/api/chats/{id:[0-9]+}/export", asUser(userID, handler.ExportChat)).Methods(http.MethodGet)
	router.HandleFunc("/api/chats/{id:[0-9]+}", asUser(userID, handler.DeleteChat)).Methods(http.MethodDelete)

	return &handlerEnv{router: router, svc: svc, provider: provider, profiles: profiles}
}

func (e *handlerEnv) do(t *testing.T, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *handlerEnv) seedProfile(t *testing.T, userID uint, apiKey string) {
	t.Helper()
	profile := domain.NewProfile(userID)
	profile.APIKey = apiKey
	if _, err := e.profiles.Create(context.Background(), profile); err != nil {
		t.Fatalf("seed profile: %v", err)
	}
}

func TestCreateAndListChats(t *testing.T) {
	env := newHandlerEnv(t, 1)

	rec := env.do(t, http.MethodPost, "/api/chats", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created domain.Chat
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Title != domain.DefaultChatTitle {
		t.Fatalf("unexpected title: %q", created.Title)
	}

	rec = env.do(t, http.MethodGet, "/api/chats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}
	var chats []domain.Chat
	if err := json.Unmarshal(rec.Body.Bytes(), &chats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(chats) != 1 || chats[0].ID != created.ID {
		t.Fatalf("unexpected chats: %+v", chats)
	}
}

func TestSendMessage_HappyPath(t *testing.T) {
	env := newHandlerEnv(t, 1)
	env.seedProfile(t, 1, "gsk_test")
	env.provider.reply = "the answer"

	rec := env.do(t, http.MethodPost, "/api/chats", "")
	var created domain.Chat
	_ = json.Unmarshal(rec.Body.Bytes(), &created)

	rec = env.do(t, http.MethodPost, fmt.Sprintf("/api/chats/%d/messages", created.ID), `{"content":"hello"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["reply"] != "the answer" {
		t.Fatalf("unexpected reply: %v", resp["reply"])
	}
	if resp["state"] != "metadata_updated" {
		t.Fatalf("unexpected state: %v", resp["state"])
	}
}

func TestSendMessage_WithoutAPIKeyReturns412(t *testing.T) {
	env := newHandlerEnv(t, 1)
	env.seedProfile(t, 1, "")

	rec := env.do(t, http.MethodPost, "/api/chats", "")
	var created domain.Chat
	_ = json.Unmarshal(rec.Body.Bytes(), &created)

	rec = env.do(t, http.MethodPost, fmt.Sprintf("/api/chats/%d/messages", created.ID), `{"content":"hello"}`)
	if rec.Code != http.StatusPreconditionFailed {
		t.Fatalf("expected 412, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSendMessage_ProviderFailureReturns502WithState(t *testing.T) {
	env := newHandlerEnv(t, 1)
	env.seedProfile(t, 1, "gsk_test")
	env.provider.err = fmt.Errorf("upstream exploded")

	rec := env.do(t, http.MethodPost, "/api/chats", "")
	var created domain.Chat
	_ = json.Unmarshal(rec.Body.Bytes(), &created)

	rec = env.do(t, http.MethodPost, fmt.Sprintf("/api/chats/%d/messages", created.ID), `{"content":"hello"}`)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["partially_failed"] != true {
		t.Fatalf("expected partial failure flag, got %v", resp)
	}
	if resp["state"] != "transcript_fetched" {
		t.Fatalf("unexpected state: %v", resp["state"])
	}
}

func TestGetChatMessages_ForeignChatIs404(t *testing.T) {
	env := newHandlerEnv(t, 2)

	// Chat owned by user 1, requests arrive as user 2.
	chat, err := env.svc.CreateChat(context.Background(), 1, "private")
	if err != nil {
		t.Fatalf("create chat: %v", err)
	}

	rec := env.do(t, http.MethodGet, fmt.Sprintf("/api/chats/%d/messages", chat.ID), "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDeleteChat_Returns204(t *testing.T) {
	env := newHandlerEnv(t, 1)

	rec := env.do(t, http.MethodPost, "/api/chats", "")
	var created domain.Chat
	_ = json.Unmarshal(rec.Body.Bytes(), &created)

	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/api/chats/%d", created.ID), "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestExportImport_OverHTTP(t *testing.T) {
	env := newHandlerEnv(t, 1)
	env.seedProfile(t, 1, "gsk_test")

	rec := env.do(t, http.MethodPost, "/api/chats", "")
	var created domain.Chat
	_ = json.Unmarshal(rec.Body.Bytes(), &created)

	rec = env.do(t, http.MethodPost, fmt.Sprintf("/api/chats/%d/messages", created.ID), `{"content":"remember this"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("send: %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/chats/%d/export", created.ID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("export: %d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Fatalf("unexpected disposition: %q", cd)
	}
	exported := rec.Body.String()

	rec = env.do(t, http.MethodPost, "/api/chats/import", exported)
	if rec.Code != http.StatusCreated {
		t.Fatalf("import: %d: %s", rec.Code, rec.Body.String())
	}
	var imported domain.Chat
	if err := json.Unmarshal(rec.Body.Bytes(), &imported); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if imported.ID == created.ID {
		t.Fatal("import reused source chat id")
	}

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/chats/%d/messages", imported.ID), "")
	var msgs []domain.Message
	if err := json.Unmarshal(rec.Body.Bytes(), &msgs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 imported messages, got %d", len(msgs))
	}
}

func TestImportChat_MalformedBody(t *testing.T) {
	env := newHandlerEnv(t, 1)
	rec := env.do(t, http.MethodPost, "/api/chats/import", "{broken")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
