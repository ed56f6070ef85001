// File: internal/services/chat/config.go
package chat

import "fmt"

type Config struct {
	// Title Configuration. A chat keeps the sentinel title until the first
	// user message, whose text is truncated to TitleMaxLen characters with
	// TitleEllipsis appended when cut.
	TitleMaxLen   int
	TitleEllipsis string

	// Import Configuration
	ImportedChatTitle string
	ImportBatchSize   int
}

func (c *Config) Validate() error {
	if c.TitleMaxLen <= 0 {
		return fmt.Errorf("title_max_len must be positive")
	}
	if c.ImportedChatTitle == "" {
		return fmt.Errorf("imported_chat_title is required")
	}
	if c.ImportBatchSize <= 0 {
		return fmt.Errorf("import_batch_size must be positive")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		TitleMaxLen:       50,
		TitleEllipsis:     "...",
		ImportedChatTitle: "Imported Chat",
		ImportBatchSize:   100,
	}
}

// DeriveTitle truncates the first user message into a chat title.
func (c *Config) DeriveTitle(content string) string {
	runes := []rune(content)
	if len(runes) <= c.TitleMaxLen {
		return content
	}
	return string(runes[:c.TitleMaxLen]) + c.TitleEllipsis
}
