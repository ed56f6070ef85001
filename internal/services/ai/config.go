// File: internal/services/ai/config.go
package ai

import "fmt"

// DefaultBaseURL points at the Groq OpenAI-compatible endpoint.
const DefaultBaseURL = "https://api.groq.com/openai/v1"

type Config struct {
	// BaseURL of the chat-completions endpoint.
	BaseURL string

	// Model Parameters. The wire contract is fixed: temperature 0.7 and
	// max_tokens 2048 on every request.
	Temperature float32
	MaxTokens   int
}

func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature out of range")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		BaseURL:     DefaultBaseURL,
		Temperature: 0.7,
		MaxTokens:   2048,
	}
}
