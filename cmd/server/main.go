// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/sohbetapp/sohbet/internal/config"
	"github.com/sohbetapp/sohbet/internal/domain"
	"github.com/sohbetapp/sohbet/internal/handlers"
	"github.com/sohbetapp/sohbet/internal/middleware"
	chatrepo "github.com/sohbetapp/sohbet/internal/repository/chat"
	messagerepo "github.com/sohbetapp/sohbet/internal/repository/message"
	profilerepo "github.com/sohbetapp/sohbet/internal/repository/profile"
	userrepo "github.com/sohbetapp/sohbet/internal/repository/user"
	"github.com/sohbetapp/sohbet/internal/services"
	"github.com/sohbetapp/sohbet/internal/services/ai"
	"github.com/sohbetapp/sohbet/internal/services/user_services"
)

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	cfg := config.Load()

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}

	if err := db.AutoMigrate(&domain.User{}, &domain.Profile{}, &domain.Chat{}, &domain.Message{}); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}

	// --- Repositories ---
	userRepo := userrepo.NewGormUserRepository(db)
	profileRepo := profilerepo.NewProfileRepository(db)
	chatRepo := chatrepo.NewChatRepository(db)
	messageRepo := messagerepo.NewMessageRepository(db)

	// --- Services ---
	providerConfig := ai.DefaultConfig()
	providerConfig.BaseURL = cfg.CompletionBaseURL
	provider, err := ai.NewGroqProvider(providerConfig)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize completion provider: %v", err)
	}

	serviceLogger := services.NewLogger("sohbet")
	authService := user_services.NewAuthService(userRepo, profileRepo, cfg.JWTSecretKey, serviceLogger)
	profileService := user_services.NewProfileService(profileRepo, serviceLogger)

	chatService, err := services.NewChatService(chatRepo, messageRepo, profileRepo, provider)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Chat Service: %v", err)
	}

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)

	chatHandler, err := handlers.NewChatHandler(chatService)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Chat Handler: %v", err)
	}

	settingsHandler, err := handlers.NewSettingsHandler(profileService)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Settings Handler: %v", err)
	}

	pageHandler := handlers.NewPageHandler(chatService, profileService)

	// --- Router Setup ---
	r := mux.NewRouter()
	authMiddleware := middleware.NewJWTMiddleware(authService)

	r.Use(corsMiddleware)
	r.Use(middleware.RecoverPanic)
	r.Use(middleware.RequestID)
	r.Use(middleware.LoggingMiddleware)

	// --- Public Routes ---
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK); _, _ = w.Write([]byte("OK")) }).Methods("GET")
	r.HandleFunc("/", pageHandler.ShowIndexPage).Methods("GET")
	r.HandleFunc("/login", pageHandler.ShowLoginPage).Methods("GET")
	r.HandleFunc("/register", pageHandler.ShowRegisterPage).Methods("GET")
	r.HandleFunc("/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/logout", authHandler.Logout).Methods("GET")

	// --- Protected Routes ---
	protected := r.PathPrefix("/").Subrouter()
	protected.Use(authMiddleware)
	protected.HandleFunc("/chat", pageHandler.ShowChatPage).Methods("GET")

	api := protected.PathPrefix("/api").Subrouter()
	api.HandleFunc("/chats", chatHandler.GetUserChats).Methods("GET")
	api.HandleFunc("/chats", chatHandler.CreateChat).Methods("POST")
	api.HandleFunc("/chats/import", chatHandler.ImportChat).Methods("POST")
	api.HandleFunc("/chats/{id:[0-9]+}/messages", chatHandler.GetChatMessages).Methods("GET")
	api.HandleFunc("/chats/{id:[0-9]+}/messages", chatHandler.SendMessage).Methods("POST")
	api.HandleFunc("/chats/{id:[0-9]+}/export", chatHandler.ExportChat).Methods("GET")
	api.HandleFunc("/chats/{id:[0-9]+}", chatHandler.DeleteChat).Methods("DELETE")
	api.HandleFunc("/settings", settingsHandler.GetSettings).Methods("GET")
	api.HandleFunc("/settings", settingsHandler.UpdateSettings).Methods("PUT")
	api.HandleFunc("/settings/theme", settingsHandler.ToggleTheme).Methods("POST")

	// --- Custom Error Handlers ---
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pageHandler.ShowErrorPage(w, "404", "Page Not Found", "The page you are looking for does not exist.")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pageHandler.ShowErrorPage(w, "405", "Method Not Allowed", "The method is not allowed for this resource.")
	})

	// --- Server Configuration ---
	port := ":" + cfg.ServerPort
	srv := &http.Server{
		Addr:    port,
		Handler: r,
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Sohbet server starting on port %s", port)
	log.Printf("Chat interface: http://localhost%s/chat", port)

	// --- Start Server in Goroutine ---
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped")
}
