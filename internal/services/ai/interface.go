// File: internal/services/ai/interface.go
package ai

import "context"

// Turn is one {role, content} entry of the transcript projection sent to the
// completion service. It carries no identifiers or timestamps.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionProvider sends a full ordered transcript to the completion
// service and returns the generated reply text. Exactly one round trip per
// call: no streaming, no retry, no backoff.
type CompletionProvider interface {
	Complete(ctx context.Context, apiKey, model string, transcript []Turn) (string, error)
}
