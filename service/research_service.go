package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"verdic-backend/llm"

	"go.uber.org/zap"
)

var (
	ErrQueryRequired = errors.New("query is required")
	ErrQueryTooLong  = errors.New("query must be under 5000 characters")
)

const maxQueryLength = 5000

const researchSystemPrompt = "You are a legal research expert analyzing Indian case law and precedents. " +
	"Provide comprehensive analysis of legal queries with citations and principles."

// ResearchService turns a free-text legal question, plus optional known
// precedents, into a prose analysis from the AI gateway.
type ResearchService struct {
	ai     completer
	logger *zap.Logger
}

// ResearchServiceOption is a functional option for ResearchService
type ResearchServiceOption func(*ResearchService)

// ResearchWithCompleter sets the AI gateway client
func ResearchWithCompleter(ai completer) ResearchServiceOption {
	return func(s *ResearchService) {
		s.ai = ai
	}
}

// ResearchWithLogger sets the logger
func ResearchWithLogger(logger *zap.Logger) ResearchServiceOption {
	return func(s *ResearchService) {
		s.logger = logger
	}
}

// NewResearchService creates a new research service
func NewResearchService(opts ...ResearchServiceOption) *ResearchService {
	s := &ResearchService{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PrecedentRef is a caller-supplied precedent snippet attached to a query
type PrecedentRef struct {
	Title    string `json:"title"`
	Citation string `json:"citation"`
	Summary  string `json:"summary"`
}

// ResearchRequest represents a legal research query
type ResearchRequest struct {
	Query      string
	Precedents []PrecedentRef
}

// ResearchResult holds the model's prose analysis, unmodified
type ResearchResult struct {
	Insights string
}

// Research builds the analysis prompt and returns the gateway's reply
// verbatim. Input failures are detected before any upstream call.
func (s *ResearchService) Research(ctx context.Context, req ResearchRequest) (*ResearchResult, error) {
	if s.ai == nil {
		return nil, errors.New("ai client not set")
	}

	if req.Query == "" {
		return nil, ErrQueryRequired
	}
	if len(req.Query) > maxQueryLength {
		return nil, ErrQueryTooLong
	}

	var precedentContext string
	if len(req.Precedents) > 0 {
		var lines []string
		for _, p := range req.Precedents {
			lines = append(lines, fmt.Sprintf("- %s (%s): %s", p.Title, p.Citation, p.Summary))
		}
		precedentContext = "\n\nRelevant precedents found:\n" + strings.Join(lines, "\n")
	}

	userPrompt := fmt.Sprintf(
		"Legal Research Query: %s%s\n\nProvide a detailed legal analysis including relevant principles, interpretations, and implications.",
		req.Query, precedentContext)

	insights, err := s.ai.Complete(ctx, []llm.Message{
		{Role: "system", Content: researchSystemPrompt},
		{Role: "user", Content: userPrompt},
	})
	if err != nil {
		return nil, err
	}

	return &ResearchResult{Insights: insights}, nil
}
