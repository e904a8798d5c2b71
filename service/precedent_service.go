package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"verdic-backend/llm"
	"verdic-backend/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrAbstractRequired = errors.New("case abstract is required")
	ErrAbstractTooLong  = errors.New("case abstract must be under 10000 characters")
	ErrCandidatesFailed = errors.New("failed to load candidate cases")
)

const (
	maxAbstractLength = 10000
	maxSimilarCases   = 5
)

// caseReader is the slice of the case repository the precedent service needs
type caseReader interface {
	ListVisibleTo(ctx context.Context, callerID uuid.UUID, role models.AppRole, excludeID *uuid.UUID) ([]*models.Case, error)
}

// completer is the slice of the AI gateway client the services need
type completer interface {
	Complete(ctx context.Context, messages []llm.Message) (string, error)
}

// PrecedentService finds existing cases similar to a free-text case abstract
// by asking the AI gateway to rank the caller's visible cases.
type PrecedentService struct {
	cases  caseReader
	ai     completer
	logger *zap.Logger
}

// PrecedentServiceOption is a functional option for PrecedentService
type PrecedentServiceOption func(*PrecedentService)

// PrecedentWithCaseStore sets the candidate case source
func PrecedentWithCaseStore(cases caseReader) PrecedentServiceOption {
	return func(s *PrecedentService) {
		s.cases = cases
	}
}

// PrecedentWithCompleter sets the AI gateway client
func PrecedentWithCompleter(ai completer) PrecedentServiceOption {
	return func(s *PrecedentService) {
		s.ai = ai
	}
}

// PrecedentWithLogger sets the logger
func PrecedentWithLogger(logger *zap.Logger) PrecedentServiceOption {
	return func(s *PrecedentService) {
		s.logger = logger
	}
}

// NewPrecedentService creates a new precedent service
func NewPrecedentService(opts ...PrecedentServiceOption) *PrecedentService {
	s := &PrecedentService{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindSimilarCasesRequest represents a request to rank similar cases
type FindSimilarCasesRequest struct {
	CallerID      uuid.UUID
	Role          models.AppRole
	CaseAbstract  string
	ExcludeCaseID *uuid.UUID
}

// FindSimilarCasesResult holds the ranked similar cases. Note carries a
// human-readable explanation when no comparison was possible.
type FindSimilarCasesResult struct {
	SimilarCases []models.SimilarCase
	Note         string
}

// rankedCase is one entry of the JSON array the model is instructed to return
type rankedCase struct {
	CaseIndex       int     `json:"case_index"`
	SimilarityScore float64 `json:"similarity_score"`
	Reasoning       string  `json:"reasoning"`
}

// jsonArrayPattern matches the first JSON-array-shaped substring in the model
// reply, tolerating prose wrapped around it.
var jsonArrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

// FindSimilarCases validates the abstract, loads the caller's visible cases
// (excluding the case under review), asks the gateway to rank them, and
// returns up to five results sorted by descending similarity. An unparsable
// model reply degrades to an empty list rather than an error.
func (s *PrecedentService) FindSimilarCases(
	ctx context.Context,
	req FindSimilarCasesRequest,
) (*FindSimilarCasesResult, error) {
	if s.cases == nil {
		return nil, errors.New("case store not set")
	}
	if s.ai == nil {
		return nil, errors.New("ai client not set")
	}

	if req.CaseAbstract == "" {
		return nil, ErrAbstractRequired
	}
	if len(req.CaseAbstract) > maxAbstractLength {
		return nil, ErrAbstractTooLong
	}

	candidates, err := s.cases.ListVisibleTo(ctx, req.CallerID, req.Role, req.ExcludeCaseID)
	if err != nil {
		s.logger.Error("failed to load candidate cases", zap.Error(err))
		return nil, ErrCandidatesFailed
	}

	if len(candidates) == 0 {
		return &FindSimilarCasesResult{
			SimilarCases: []models.SimilarCase{},
			Note:         "No cases found in database for comparison.",
		}, nil
	}

	prompt := buildRankingPrompt(req.CaseAbstract, candidates)

	reply, err := s.ai.Complete(ctx, []llm.Message{
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return nil, err
	}

	ranking := s.parseRanking(reply)

	similar := make([]models.SimilarCase, 0, len(ranking))
	for _, r := range ranking {
		if r.CaseIndex < 1 || r.CaseIndex > len(candidates) {
			s.logger.Warn("model returned out-of-range case index", zap.Int("case_index", r.CaseIndex))
			continue
		}
		similar = append(similar, models.SimilarCase{
			Case:            *candidates[r.CaseIndex-1],
			SimilarityScore: clampScore(r.SimilarityScore),
			Reasoning:       r.Reasoning,
		})
	}

	sort.SliceStable(similar, func(i, j int) bool {
		return similar[i].SimilarityScore > similar[j].SimilarityScore
	})
	if len(similar) > maxSimilarCases {
		similar = similar[:maxSimilarCases]
	}

	return &FindSimilarCasesResult{SimilarCases: similar}, nil
}

// buildRankingPrompt enumerates the candidate cases and instructs the model
// to score each one against the abstract, returning bare JSON.
func buildRankingPrompt(abstract string, candidates []*models.Case) string {
	var casesText strings.Builder
	for i, c := range candidates {
		if i > 0 {
			casesText.WriteString("\n\n")
		}
		description := "No description"
		if c.Description != nil && *c.Description != "" {
			description = *c.Description
		}
		casesText.WriteString(fmt.Sprintf("Case %d [%s]: %s\n%s", i+1, c.CaseNumber, c.Title, description))
	}

	return fmt.Sprintf(`You are a legal AI assistant analyzing case similarity. Given the following case abstract:

"%s"

Compare it with these existing cases and identify the most similar ones:

%s

For each case, analyze:
1. Thematic similarity (legal issues, subject matter)
2. Factual similarity (circumstances, parties involved)
3. Legal principles involved
4. Case type relevance

Return a JSON array of the top 5 most similar cases with this exact structure:
[
  {
    "case_index": <number>,
    "similarity_score": <float between 0-1>,
    "reasoning": "<brief explanation of why similar>"
  }
]

Only return the JSON array, no other text.`, abstract, casesText.String())
}

// parseRanking extracts the first JSON array from the model reply and parses
// it. Any failure yields an empty ranking: the feature is best-effort
// enrichment, so a garbled reply must not fail the request.
func (s *PrecedentService) parseRanking(reply string) []rankedCase {
	match := jsonArrayPattern.FindString(reply)
	if match == "" {
		s.logger.Warn("no JSON array found in model reply", zap.Int("reply_length", len(reply)))
		return nil
	}

	var ranking []rankedCase
	if err := json.Unmarshal([]byte(match), &ranking); err != nil {
		s.logger.Warn("failed to parse model ranking", zap.Error(err))
		return nil
	}

	return ranking
}

// clampScore forces a model-produced score into [0,1]
func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
