// File: internal/repository/chat/chat_repository.go
package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/sohbetapp/sohbet/internal/domain"
	"gorm.io/gorm"
)

var ErrChatNotFound = errors.New("chat not found")
var ErrUnauthorizedAccess = errors.New("unauthorized access to chat")

type gormChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &gormChatRepository{db: db}
}

func (r *gormChatRepository) Create(ctx context.Context, chat *domain.Chat) (*domain.Chat, error) {
	if err := r.validateChatInput(chat); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	err := r.db.WithContext(ctx).Create(chat).Error
	if err != nil {
		log.Printf("[ChatRepository] Database error during chat creation for user ID %d: %v", chat.UserID, err)
		return nil, errors.New("database error creating chat")
	}

	return chat, nil
}

func (r *gormChatRepository) FindByID(ctx context.Context, chatID uint) (*domain.Chat, error) {
	if chatID == 0 {
		return nil, errors.New("invalid chat ID")
	}

	var chat domain.Chat
	err := r.db.WithContext(ctx).First(&chat, chatID).Error
	return r.handleFindError(err, &chat, "FindByID")
}

// FindByUserID returns the user's chats ordered by last activity, newest first.
func (r *gormChatRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Chat, error) {
	if userID == 0 {
		return nil, errors.New("invalid user ID")
	}

	var chats []domain.Chat
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC, id DESC").
		Find(&chats).Error

	if err != nil {
		log.Printf("[ChatRepository] Database error finding chats for user ID %d: %v", userID, err)
		return nil, errors.New("database error fetching chats")
	}

	return chats, nil
}

// Delete removes a chat only when it belongs to userID. A zero-row result
// means the chat does not exist or is owned by someone else.
func (r *gormChatRepository) Delete(ctx context.Context, chatID, userID uint) error {
	if chatID == 0 || userID == 0 {
		return errors.New("invalid chat ID or user ID")
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", chatID, userID).
		Delete(&domain.Chat{})

	if result.Error != nil {
		log.Printf("[ChatRepository] Database error deleting chat ID %d for user ID %d: %v", chatID, userID, result.Error)
		return errors.New("database error deleting chat")
	}

	if result.RowsAffected == 0 {
		return ErrUnauthorizedAccess
	}

	return nil
}

// UpdateTitle sets the title and refreshes updated_at in the same statement.
func (r *gormChatRepository) UpdateTitle(ctx context.Context, chatID uint, title string) error {
	if chatID == 0 {
		return errors.New("invalid chat ID")
	}
	if err := r.validateChatTitle(title); err != nil {
		return fmt.Errorf("title validation: %w", err)
	}

	result := r.db.WithContext(ctx).
		Model(&domain.Chat{}).
		Where("id = ?", chatID).
		Updates(map[string]interface{}{
			"title":      title,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		})

	if result.Error != nil {
		log.Printf("[ChatRepository] Database error updating title for chat ID %d: %v", chatID, result.Error)
		return errors.New("database error updating chat title")
	}

	if result.RowsAffected == 0 {
		return ErrChatNotFound
	}

	return nil
}

func (r *gormChatRepository) TouchUpdatedAt(ctx context.Context, chatID uint) error {
	if chatID == 0 {
		return errors.New("invalid chat ID")
	}

	result := r.db.WithContext(ctx).
		Model(&domain.Chat{}).
		Where("id = ?", chatID).
		Update("updated_at", gorm.Expr("CURRENT_TIMESTAMP"))

	if result.Error != nil {
		log.Printf("[ChatRepository] Database error updating timestamp for chat ID %d: %v", chatID, result.Error)
		return errors.New("database error updating chat timestamp")
	}

	if result.RowsAffected == 0 {
		return ErrChatNotFound
	}

	return nil
}

// ExistsByIDAndUserID checks ownership without exposing chat data.
func (r *gormChatRepository) ExistsByIDAndUserID(ctx context.Context, chatID, userID uint) (bool, error) {
	if chatID == 0 || userID == 0 {
		return false, errors.New("invalid chat ID or user ID")
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Chat{}).Where("id = ? AND user_id = ?", chatID, userID).Count(&count).Error
	if err != nil {
		log.Printf("[ChatRepository] Database error checking chat ownership for chat ID %d, user ID %d: %v", chatID, userID, err)
		return false, errors.New("database error checking chat ownership")
	}

	return count > 0, nil
}

func (r *gormChatRepository) validateChatInput(chat *domain.Chat) error {
	if chat == nil {
		return errors.New("chat cannot be nil")
	}

	if chat.UserID == 0 {
		return errors.New("user ID is required")
	}

	if err := r.validateChatTitle(chat.Title); err != nil {
		return fmt.Errorf("title validation: %w", err)
	}

	return nil
}

func (r *gormChatRepository) validateChatTitle(title string) error {
	if len(title) > 200 {
		return errors.New("title must be 200 characters or less")
	}

	if strings.Contains(title, "<script") || strings.Contains(title, "javascript:") {
		return errors.New("invalid characters detected in title")
	}

	return nil
}

// handleFindError maps gorm errors to repository sentinels without leaking
// driver details to callers.
func (r *gormChatRepository) handleFindError(err error, chat *domain.Chat, operation string) (*domain.Chat, error) {
	if err == nil {
		return chat, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrChatNotFound
	}

	log.Printf("[ChatRepository] %s database error: %v", operation, err)
	return nil, errors.New("database query failed")
}
