// File: internal/services/chat/transfer.go
package chat

import (
	"encoding/json"
	"io"
	"time"

	"github.com/sohbetapp/sohbet/internal/domain"
)

// ExportDocument is the portable form of one conversation. ExportedAt is the
// moment of export in RFC 3339. On import, ids and timestamps inside Chat
// and Messages are discarded; only title, roles and content survive.
type ExportDocument struct {
	Chat       *domain.Chat     `json:"chat"`
	Messages   []domain.Message `json:"messages"`
	ExportedAt time.Time        `json:"exportedAt"`
}

// ParseExportDocument reads and validates an export document. A document
// without a chat object or with a message of unknown role is malformed.
func ParseExportDocument(r io.Reader) (*ExportDocument, error) {
	var doc ExportDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, NewImportError("parse", "malformed import document", err)
	}

	for _, m := range doc.Messages {
		if !domain.ValidRole(m.Role) {
			return nil, NewImportError("parse", "import document has a message with an unknown role", nil)
		}
	}

	return &doc, nil
}

// Title returns the chat title to use for the imported conversation,
// falling back to the configured default when the document lacks one.
func (d *ExportDocument) Title(fallback string) string {
	if d.Chat == nil || d.Chat.Title == "" {
		return fallback
	}
	return d.Chat.Title
}
