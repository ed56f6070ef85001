// File: internal/domain/message.go
package domain

import "time"

// Message roles understood by the completion service.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message represents a single immutable turn within a chat. Transcript
// order is creation time ascending.
type Message struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	ChatID    uint      `json:"chat_id" gorm:"not null;index"`
	Role      string    `json:"role" gorm:"not null"`
	Content   string    `json:"content" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidRole reports whether role is one the store accepts.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}
