package service

import (
	"context"
	"errors"

	"verdic-backend/llm"

	"go.uber.org/zap"
)

var (
	ErrEmptyConversation   = errors.New("at least one message is required")
	ErrConversationTooLong = errors.New("conversation exceeds the allowed number of messages")
	ErrInvalidMessageRole  = errors.New("message roles must be user or assistant")
	ErrMessageTooLong      = errors.New("message exceeds the allowed length")
)

const (
	maxConversationTurns = 40
	maxMessageLength     = 4000
)

const assistantSystemPrompt = "You are Verdic, an AI legal assistant for Indian courts. " +
	"Answer questions about Indian law, court procedure, and case management clearly and concisely. " +
	"Cite relevant statutes and judgments where applicable, and remind users that your answers are " +
	"not a substitute for advice from a qualified advocate."

// AssistantService powers the dashboard chat assistant. It is stateless:
// the caller sends the running transcript and nothing is stored.
type AssistantService struct {
	ai     completer
	logger *zap.Logger
}

// AssistantServiceOption is a functional option for AssistantService
type AssistantServiceOption func(*AssistantService)

// AssistantWithCompleter sets the AI gateway client
func AssistantWithCompleter(ai completer) AssistantServiceOption {
	return func(s *AssistantService) {
		s.ai = ai
	}
}

// AssistantWithLogger sets the logger
func AssistantWithLogger(logger *zap.Logger) AssistantServiceOption {
	return func(s *AssistantService) {
		s.logger = logger
	}
}

// NewAssistantService creates a new assistant service
func NewAssistantService(opts ...AssistantServiceOption) *AssistantService {
	s := &AssistantService{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ChatRequest carries the caller's transcript, oldest message first
type ChatRequest struct {
	Messages []llm.Message
}

// ChatResult holds the assistant's reply
type ChatResult struct {
	Reply string
}

// Chat validates the transcript, prepends the assistant's system prompt, and
// returns the gateway's reply.
func (s *AssistantService) Chat(ctx context.Context, req ChatRequest) (*ChatResult, error) {
	if s.ai == nil {
		return nil, errors.New("ai client not set")
	}

	if len(req.Messages) == 0 {
		return nil, ErrEmptyConversation
	}
	if len(req.Messages) > maxConversationTurns {
		return nil, ErrConversationTooLong
	}
	for _, m := range req.Messages {
		if m.Role != "user" && m.Role != "assistant" {
			return nil, ErrInvalidMessageRole
		}
		if m.Content == "" || len(m.Content) > maxMessageLength {
			return nil, ErrMessageTooLong
		}
	}

	messages := make([]llm.Message, 0, len(req.Messages)+1)
	messages = append(messages, llm.Message{Role: "system", Content: assistantSystemPrompt})
	messages = append(messages, req.Messages...)

	reply, err := s.ai.Complete(ctx, messages)
	if err != nil {
		return nil, err
	}

	return &ChatResult{Reply: reply}, nil
}
