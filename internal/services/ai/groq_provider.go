// File: internal/services/ai/groq_provider.go
package ai

import (
	"context"
	"errors"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// GroqProvider talks to a Groq-compatible chat-completions endpoint. The
// credential is per-user and arrives with every call, so the underlying
// client is constructed per request around a shared http.Client.
type GroqProvider struct {
	config     *Config
	httpClient *http.Client
}

func NewGroqProvider(config *Config) (*GroqProvider, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, NewConfigError(err.Error())
	}

	return &GroqProvider{
		config:     config,
		httpClient: &http.Client{},
	}, nil
}

func (p *GroqProvider) client(apiKey string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = p.config.BaseURL
	cfg.HTTPClient = p.httpClient
	return openai.NewClientWithConfig(cfg)
}

// Complete sends the full transcript in order, with fixed sampling
// parameters, and returns the first choice's content. A response with no
// choices yields an empty string and no error; the caller decides what an
// empty reply means.
func (p *GroqProvider) Complete(ctx context.Context, apiKey, model string, transcript []Turn) (string, error) {
	if strings.TrimSpace(apiKey) == "" {
		return "", NewValidationError("api key is required")
	}
	if strings.TrimSpace(model) == "" {
		return "", NewValidationError("model is required")
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(transcript))
	for _, t := range transcript {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    t.Role,
			Content: t.Content,
		})
	}

	resp, err := p.client(apiKey).CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: p.config.Temperature,
		MaxTokens:   p.config.MaxTokens,
	})
	if err != nil {
		return "", wrapUpstreamError(err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}

	return resp.Choices[0].Message.Content, nil
}

// wrapUpstreamError extracts the upstream error.message when the response
// body carried one, falling back to a generic message.
func wrapUpstreamError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = "completion request failed"
		}
		return NewCompletionError(apiErr.HTTPStatusCode, msg, err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return NewCompletionError(reqErr.HTTPStatusCode, "completion request failed", err)
	}

	return NewCompletionError(0, "completion service unreachable", err)
}
