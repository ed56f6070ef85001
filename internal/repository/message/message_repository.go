// File: internal/repository/message/message_repository.go
package message

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/sohbetapp/sohbet/internal/domain"
	"gorm.io/gorm"
)

var ErrMessageNotFound = errors.New("message not found")

type gormMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &gormMessageRepository{db: db}
}

// Create inserts one immutable message record. Messages are never updated
// after this point.
func (r *gormMessageRepository) Create(ctx context.Context, message *domain.Message) (*domain.Message, error) {
	if err := r.validateMessageInput(message); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	err := r.db.WithContext(ctx).Create(message).Error
	if err != nil {
		log.Printf("[MessageRepository] Database error during message creation for chat ID %d: %v", message.ChatID, err)
		return nil, errors.New("database error creating message")
	}

	return message, nil
}

// FindByChatID returns the full transcript in creation order, oldest first.
// The id tiebreak keeps ordering stable when timestamps collide.
func (r *gormMessageRepository) FindByChatID(ctx context.Context, chatID uint) ([]domain.Message, error) {
	if chatID == 0 {
		return nil, errors.New("invalid chat ID")
	}

	var messages []domain.Message
	err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error

	if err != nil {
		log.Printf("[MessageRepository] Database error finding messages for chat ID %d: %v", chatID, err)
		return nil, errors.New("database error fetching messages")
	}

	return messages, nil
}

// CreateInBatch bulk-inserts messages, used by chat import.
func (r *gormMessageRepository) CreateInBatch(ctx context.Context, messages []*domain.Message, batchSize int) error {
	if len(messages) == 0 {
		return nil
	}

	if batchSize <= 0 || batchSize > 1000 {
		batchSize = 100
	}

	// Pre-validate everything so a bad record fails before any insert.
	for i, message := range messages {
		if err := r.validateMessageInput(message); err != nil {
			return fmt.Errorf("validation failed for message %d: %w", i, err)
		}
	}

	if err := r.db.WithContext(ctx).CreateInBatches(messages, batchSize).Error; err != nil {
		log.Printf("[MessageRepository] Batch creation of %d messages failed: %v", len(messages), err)
		return errors.New("database error creating messages in batch")
	}

	return nil
}

func (r *gormMessageRepository) CountByChatID(ctx context.Context, chatID uint) (int64, error) {
	if chatID == 0 {
		return 0, errors.New("invalid chat ID")
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Message{}).Where("chat_id = ?", chatID).Count(&count).Error
	if err != nil {
		log.Printf("[MessageRepository] Database error counting messages for chat ID %d: %v", chatID, err)
		return 0, errors.New("database error counting chat messages")
	}

	return count, nil
}

// DeleteByChatID performs a bulk deletion of all messages associated with a
// given chatID. Used as the cascade when a chat is deleted.
func (r *gormMessageRepository) DeleteByChatID(ctx context.Context, chatID uint) error {
	if chatID == 0 {
		return errors.New("invalid chat ID")
	}

	result := r.db.WithContext(ctx).Where("chat_id = ?", chatID).Delete(&domain.Message{})
	if result.Error != nil {
		log.Printf("[MessageRepository] Database error deleting messages for chat ID %d: %v", chatID, result.Error)
		return errors.New("database error deleting messages by chat ID")
	}

	return nil
}

func (r *gormMessageRepository) validateMessageInput(message *domain.Message) error {
	if message == nil {
		return errors.New("message cannot be nil")
	}

	if message.ChatID == 0 {
		return errors.New("chat ID is required")
	}

	if !domain.ValidRole(message.Role) {
		return errors.New("invalid message role")
	}

	// Assistant messages may legitimately be empty (provider returned no
	// choices); user and system turns must carry content.
	if message.Role != domain.RoleAssistant && strings.TrimSpace(message.Content) == "" {
		return errors.New("message content cannot be empty")
	}

	return nil
}
