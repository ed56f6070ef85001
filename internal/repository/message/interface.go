// File: internal/repository/message/interface.go
package message

import (
	"context"

	"github.com/sohbetapp/sohbet/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) (*domain.Message, error)
	FindByChatID(ctx context.Context, chatID uint) ([]domain.Message, error)
	CreateInBatch(ctx context.Context, messages []*domain.Message, batchSize int) error
	CountByChatID(ctx context.Context, chatID uint) (int64, error)
	DeleteByChatID(ctx context.Context, chatID uint) error
}
