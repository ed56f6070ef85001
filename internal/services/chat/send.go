// File: internal/services/chat/send.go
package chat

import (
	"context"
	"strings"

	"github.com/sohbetapp/sohbet/internal/domain"
	chatrepo "github.com/sohbetapp/sohbet/internal/repository/chat"
	messagerepo "github.com/sohbetapp/sohbet/internal/repository/message"
	"github.com/sohbetapp/sohbet/internal/services/ai"
)

// SendState names how far a send got before stopping. The pipeline runs its
// steps strictly in order and never rolls back, so a failure leaves the
// store exactly as the completed states describe: a failure after
// StateUserAppended leaves an orphan user message with no assistant reply.
type SendState int

const (
	StateIdle SendState = iota
	StateUserAppended
	StateTranscriptFetched
	StateCompletionRequested
	StateAssistantAppended
	StateMetadataUpdated
)

func (s SendState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateUserAppended:
		return "user_appended"
	case StateTranscriptFetched:
		return "transcript_fetched"
	case StateCompletionRequested:
		return "completion_requested"
	case StateAssistantAppended:
		return "assistant_appended"
	case StateMetadataUpdated:
		return "metadata_updated"
	}
	return "unknown"
}

// SendOutcome reports the terminal state of one pipeline run. A run that did
// not reach StateMetadataUpdated is partially failed; Err holds the failure
// and State the last step that completed.
type SendOutcome struct {
	State            SendState
	PartiallyFailed  bool
	Reply            string
	UserMessage      *domain.Message
	AssistantMessage *domain.Message
	Err              error
}

// SendPipeline is the conversation-send sequence: append the user turn,
// re-read the full transcript, call the completion service, append the
// assistant turn, update chat metadata. Every read goes back to the store;
// no state is held between steps beyond the identifiers passed in.
type SendPipeline struct {
	config      *Config
	chatRepo    chatrepo.ChatRepository
	messageRepo messagerepo.MessageRepository
	provider    ai.CompletionProvider
	logger      Logger
}

func NewSendPipeline(
	config *Config,
	chatRepo chatrepo.ChatRepository,
	messageRepo messagerepo.MessageRepository,
	provider ai.CompletionProvider,
	logger Logger,
) *SendPipeline {
	return &SendPipeline{
		config:      config,
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		provider:    provider,
		logger:      logger,
	}
}

func (p *SendPipeline) fail(state SendState, err error) (*SendOutcome, error) {
	p.logger.Warn("send pipeline stopped",
		"state", state.String(),
		"error", err.Error(),
	)
	return &SendOutcome{State: state, PartiallyFailed: true, Err: err}, err
}

// Run executes the pipeline for one user message. Preconditions (a selected
// chat and a configured API key) must be checked by the caller before any
// store write happens here.
func (p *SendPipeline) Run(ctx context.Context, chatID uint, profile *domain.Profile, content string) (*SendOutcome, error) {
	if strings.TrimSpace(content) == "" {
		return nil, NewValidationError("send", "message content cannot be empty")
	}

	// Step 1: append the user turn.
	userMsg, err := p.messageRepo.Create(ctx, &domain.Message{
		ChatID:  chatID,
		Role:    domain.RoleUser,
		Content: content,
	})
	if err != nil {
		return p.fail(StateIdle, NewPersistenceError("append_user", "could not store user message", err))
	}

	// Step 2: re-read the full transcript. The just-appended message is
	// included because this read happens after the write completed.
	transcript, err := p.messageRepo.FindByChatID(ctx, chatID)
	if err != nil {
		return p.fail(StateUserAppended, NewPersistenceError("read_transcript", "could not read transcript", err))
	}

	// Step 3: project to {role, content} and request a completion.
	turns := make([]ai.Turn, 0, len(transcript))
	for _, m := range transcript {
		turns = append(turns, ai.Turn{Role: m.Role, Content: m.Content})
	}

	reply, err := p.provider.Complete(ctx, profile.APIKey, profile.SelectedModel, turns)
	if err != nil {
		return p.fail(StateTranscriptFetched, NewCompletionError("complete", "completion request failed", err))
	}
	if reply == "" {
		// No choices from the provider. The empty reply is still stored as a
		// regular assistant turn so the transcript stays aligned.
		p.logger.Warn("completion returned empty reply", "chat_id", chatID)
	}

	// Step 4: append the assistant turn.
	assistantMsg, err := p.messageRepo.Create(ctx, &domain.Message{
		ChatID:  chatID,
		Role:    domain.RoleAssistant,
		Content: reply,
	})
	if err != nil {
		return p.fail(StateCompletionRequested, NewPersistenceError("append_assistant", "could not store assistant message", err))
	}

	// Step 5: re-read the chat and update metadata. The title is derived
	// from the first user turn exactly once; afterwards only the timestamp
	// moves.
	chatRecord, err := p.chatRepo.FindByID(ctx, chatID)
	if err != nil {
		return p.fail(StateAssistantAppended, NewPersistenceError("read_chat", "could not read chat", err))
	}

	if chatRecord.HasDefaultTitle() && content != "" {
		err = p.chatRepo.UpdateTitle(ctx, chatID, p.config.DeriveTitle(content))
	} else {
		err = p.chatRepo.TouchUpdatedAt(ctx, chatID)
	}
	if err != nil {
		return p.fail(StateAssistantAppended, NewPersistenceError("update_metadata", "could not update chat metadata", err))
	}

	return &SendOutcome{
		State:            StateMetadataUpdated,
		Reply:            reply,
		UserMessage:      userMsg,
		AssistantMessage: assistantMsg,
	}, nil
}
