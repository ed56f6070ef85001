// File: internal/services/chat_service.go
package services

import (
	"context"
	"strings"
	"time"

	"github.com/sohbetapp/sohbet/internal/domain"
	chatrepo "github.com/sohbetapp/sohbet/internal/repository/chat"
	messagerepo "github.com/sohbetapp/sohbet/internal/repository/message"
	profilerepo "github.com/sohbetapp/sohbet/internal/repository/profile"
	"github.com/sohbetapp/sohbet/internal/services/ai"
	chatservice "github.com/sohbetapp/sohbet/internal/services/chat"
)

type ChatService struct {
	config      *chatservice.Config
	chatRepo    chatrepo.ChatRepository
	messageRepo messagerepo.MessageRepository
	profileRepo profilerepo.ProfileRepository
	pipeline    *chatservice.SendPipeline
	logger      Logger
}

func NewChatService(
	chatRepo chatrepo.ChatRepository,
	messageRepo messagerepo.MessageRepository,
	profileRepo profilerepo.ProfileRepository,
	provider ai.CompletionProvider,
) (*ChatService, error) {
	if chatRepo == nil {
		return nil, chatservice.NewValidationError("constructor", "chat repository is required")
	}
	if messageRepo == nil {
		return nil, chatservice.NewValidationError("constructor", "message repository is required")
	}
	if profileRepo == nil {
		return nil, chatservice.NewValidationError("constructor", "profile repository is required")
	}
	if provider == nil {
		return nil, chatservice.NewValidationError("constructor", "completion provider is required")
	}

	config := chatservice.DefaultConfig()
	if err := config.Validate(); err != nil {
		return nil, chatservice.NewValidationError("config", err.Error())
	}

	logger := NewLogger("chat")
	pipeline := chatservice.NewSendPipeline(config, chatRepo, messageRepo, provider, logger)

	return &ChatService{
		config:      config,
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		profileRepo: profileRepo,
		pipeline:    pipeline,
		logger:      logger,
	}, nil
}

// CreateChat starts an empty conversation. An empty title gets the sentinel
// so the first sent message can name the chat.
func (s *ChatService) CreateChat(ctx context.Context, userID uint, title string) (*domain.Chat, error) {
	if strings.TrimSpace(title) == "" {
		title = domain.DefaultChatTitle
	}

	newChat := &domain.Chat{UserID: userID, Title: title}
	createdChat, err := s.chatRepo.Create(ctx, newChat)
	if err != nil {
		return nil, chatservice.NewPersistenceError("create_chat", "could not create chat", err)
	}
	return createdChat, nil
}

// GetUserChats lists the user's conversations, most recently active first.
func (s *ChatService) GetUserChats(ctx context.Context, userID uint) ([]domain.Chat, error) {
	chats, err := s.chatRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, chatservice.NewPersistenceError("list_chats", "could not list chats", err)
	}
	return chats, nil
}

func (s *ChatService) GetChatMessages(ctx context.Context, userID, chatID uint) ([]domain.Message, error) {
	chatRecord, err := s.chatRepo.FindByID(ctx, chatID)
	if err != nil || chatRecord.UserID != userID {
		return nil, chatservice.NewUnauthorizedError(userID, chatID)
	}
	return s.messageRepo.FindByChatID(ctx, chatID)
}

func (s *ChatService) DeleteChat(ctx context.Context, userID, chatID uint) error {
	chatRecord, err := s.chatRepo.FindByID(ctx, chatID)
	if err != nil || chatRecord.UserID != userID {
		return chatservice.NewUnauthorizedError(userID, chatID)
	}
	if err := s.messageRepo.DeleteByChatID(ctx, chatID); err != nil {
		return chatservice.NewPersistenceError("delete_chat", "could not delete chat messages", err)
	}
	return s.chatRepo.Delete(ctx, chatID, userID)
}

// SendMessage runs the send pipeline for one user turn. It refuses before
// any network call when no chat is selected or the profile carries no API
// key; refusal is a precondition error, not a pipeline failure.
func (s *ChatService) SendMessage(ctx context.Context, userID, chatID uint, content string) (*chatservice.SendOutcome, error) {
	if chatID == 0 {
		return nil, chatservice.ErrNoChatSelected
	}

	chatRecord, err := s.chatRepo.FindByID(ctx, chatID)
	if err != nil || chatRecord.UserID != userID {
		return nil, chatservice.NewUnauthorizedError(userID, chatID)
	}

	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, chatservice.NewPersistenceError("send", "could not load profile", err)
	}
	if !profile.HasAPIKey() {
		return nil, chatservice.ErrNoAPIKey
	}

	return s.pipeline.Run(ctx, chatID, profile, content)
}

// ExportChat builds the portable document for one conversation.
func (s *ChatService) ExportChat(ctx context.Context, userID, chatID uint) (*chatservice.ExportDocument, error) {
	chatRecord, err := s.chatRepo.FindByID(ctx, chatID)
	if err != nil || chatRecord.UserID != userID {
		return nil, chatservice.NewUnauthorizedError(userID, chatID)
	}

	messages, err := s.messageRepo.FindByChatID(ctx, chatID)
	if err != nil {
		return nil, chatservice.NewPersistenceError("export", "could not read messages", err)
	}

	return &chatservice.ExportDocument{
		Chat:       chatRecord,
		Messages:   messages,
		ExportedAt: time.Now().UTC(),
	}, nil
}

// ImportChat creates a fresh conversation from an export document. Original
// ids and timestamps are discarded; role and content are kept in order.
func (s *ChatService) ImportChat(ctx context.Context, userID uint, doc *chatservice.ExportDocument) (*domain.Chat, error) {
	if doc == nil {
		return nil, chatservice.NewImportError("import", "import document is required", nil)
	}

	newChat, err := s.CreateChat(ctx, userID, doc.Title(s.config.ImportedChatTitle))
	if err != nil {
		return nil, err
	}

	if len(doc.Messages) > 0 {
		toInsert := make([]*domain.Message, 0, len(doc.Messages))
		for _, m := range doc.Messages {
			toInsert = append(toInsert, &domain.Message{
				ChatID:  newChat.ID,
				Role:    m.Role,
				Content: m.Content,
			})
		}
		if err := s.messageRepo.CreateInBatch(ctx, toInsert, s.config.ImportBatchSize); err != nil {
			return nil, chatservice.NewPersistenceError("import", "could not store imported messages", err)
		}
	}

	s.logger.Info("chat imported", "chat_id", newChat.ID, "messages", len(doc.Messages))
	return newChat, nil
}
