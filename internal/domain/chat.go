// File: internal/domain/chat.go
package domain

import "time"

// DefaultChatTitle is the sentinel title given to a chat before its first
// user message. The send pipeline replaces it exactly once.
const DefaultChatTitle = "New Chat"

// Chat represents a single conversation thread.
type Chat struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasDefaultTitle reports whether the chat still carries the sentinel title.
func (c *Chat) HasDefaultTitle() bool {
	return c.Title == DefaultChatTitle
}
