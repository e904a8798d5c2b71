package service

import (
	"context"
	"errors"
	"time"

	"verdic-backend/models"
	"verdic-backend/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrCaseNotFound      = errors.New("case not found")
	ErrMissingCaseFields = errors.New("case is missing required fields")
	ErrInvalidCaseType   = errors.New("invalid case type")
	ErrInvalidStatus     = errors.New("invalid case status")
	ErrInvalidPriority   = errors.New("invalid case priority")
	ErrPermissionDenied  = errors.New("caller is not permitted to perform this action")
)

// staleAfter is how long a case may go without updates before the backlog
// flags it.
const staleAfter = 30 * 24 * time.Hour

// caseStore is the full case repository surface the case service needs
type caseStore interface {
	caseReader
	Create(ctx context.Context, c *models.Case) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Case, error)
	Update(ctx context.Context, c *models.Case) error
	UpdatePriority(ctx context.Context, id uuid.UUID, priority models.CasePriority) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListBacklog(ctx context.Context, callerID uuid.UUID, role models.AppRole, filters repository.BacklogFilters) ([]*models.Case, error)
	CountByStatus(ctx context.Context, callerID uuid.UUID, role models.AppRole) (map[models.CaseStatus]int, error)
}

// CaseService handles case management logic
type CaseService struct {
	cases  caseStore
	logger *zap.Logger
	now    func() time.Time
}

// CaseServiceOption is a functional option for CaseService
type CaseServiceOption func(*CaseService)

// CaseWithStore sets the case repository
func CaseWithStore(cases caseStore) CaseServiceOption {
	return func(s *CaseService) {
		s.cases = cases
	}
}

// CaseWithLogger sets the logger
func CaseWithLogger(logger *zap.Logger) CaseServiceOption {
	return func(s *CaseService) {
		s.logger = logger
	}
}

// CaseWithClock overrides the time source
func CaseWithClock(now func() time.Time) CaseServiceOption {
	return func(s *CaseService) {
		s.now = now
	}
}

// NewCaseService creates a new case service
func NewCaseService(opts ...CaseServiceOption) *CaseService {
	s := &CaseService{
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateCaseRequest represents a request to file a new case
type CreateCaseRequest struct {
	CallerID uuid.UUID
	Role     models.AppRole

	CaseNumber     string
	Title          string
	Description    *string
	CaseType       models.CaseType
	Priority       models.CasePriority
	PetitionerName string
	RespondentName string
	CourtName      *string
	FilingDate     *time.Time
}

// CreateCase files a new case. Only lawyers, judges, and admins may create
// cases; missing required fields fail before any write.
func (s *CaseService) CreateCase(ctx context.Context, req CreateCaseRequest) (*models.Case, error) {
	if s.cases == nil {
		return nil, errors.New("case store not set")
	}

	if !req.Role.CanManageCases() {
		return nil, ErrPermissionDenied
	}
	if req.CaseNumber == "" || req.Title == "" || req.PetitionerName == "" || req.RespondentName == "" {
		return nil, ErrMissingCaseFields
	}
	if !req.CaseType.Valid() {
		return nil, ErrInvalidCaseType
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		return nil, ErrInvalidPriority
	}

	filingDate := s.now()
	if req.FilingDate != nil {
		filingDate = *req.FilingDate
	}

	callerID := req.CallerID
	c := &models.Case{
		CaseNumber:     req.CaseNumber,
		Title:          req.Title,
		Description:    req.Description,
		CaseType:       req.CaseType,
		Status:         models.StatusFiled,
		Priority:       priority,
		FilingDate:     filingDate,
		PetitionerName: req.PetitionerName,
		RespondentName: req.RespondentName,
		CourtName:      req.CourtName,
		CreatedBy:      &callerID,
	}

	if err := s.cases.Create(ctx, c); err != nil {
		s.logger.Error("failed to create case", zap.Error(err))
		return nil, err
	}

	return c, nil
}

// GetCase retrieves a single case by ID
func (s *CaseService) GetCase(ctx context.Context, id uuid.UUID) (*models.Case, error) {
	if s.cases == nil {
		return nil, errors.New("case store not set")
	}

	c, err := s.cases.GetByID(ctx, id)
	if err != nil {
		return nil, ErrCaseNotFound
	}
	return c, nil
}

// UpdateCaseRequest represents a partial update to a case
type UpdateCaseRequest struct {
	Role models.AppRole
	ID   uuid.UUID

	Title           *string
	Description     *string
	Status          *models.CaseStatus
	Priority        *models.CasePriority
	CourtName       *string
	NextHearingDate *time.Time
}

// UpdateCase applies the provided fields to an existing case
func (s *CaseService) UpdateCase(ctx context.Context, req UpdateCaseRequest) (*models.Case, error) {
	if s.cases == nil {
		return nil, errors.New("case store not set")
	}

	if !req.Role.CanManageCases() {
		return nil, ErrPermissionDenied
	}

	c, err := s.cases.GetByID(ctx, req.ID)
	if err != nil {
		return nil, ErrCaseNotFound
	}

	if req.Title != nil {
		c.Title = *req.Title
	}
	if req.Description != nil {
		c.Description = req.Description
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		c.Status = *req.Status
	}
	if req.Priority != nil {
		if !req.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		c.Priority = *req.Priority
	}
	if req.CourtName != nil {
		c.CourtName = req.CourtName
	}
	if req.NextHearingDate != nil {
		c.NextHearingDate = req.NextHearingDate
	}

	if err := s.cases.Update(ctx, c); err != nil {
		s.logger.Error("failed to update case", zap.Error(err), zap.String("case_id", req.ID.String()))
		return nil, err
	}

	return c, nil
}

// UpdatePriority changes only the priority of a case
func (s *CaseService) UpdatePriority(ctx context.Context, role models.AppRole, id uuid.UUID, priority models.CasePriority) error {
	if s.cases == nil {
		return errors.New("case store not set")
	}

	if !role.CanManageCases() {
		return ErrPermissionDenied
	}
	if !priority.Valid() {
		return ErrInvalidPriority
	}

	if _, err := s.cases.GetByID(ctx, id); err != nil {
		return ErrCaseNotFound
	}

	return s.cases.UpdatePriority(ctx, id, priority)
}

// DeleteCase removes a case record. Admin only.
func (s *CaseService) DeleteCase(ctx context.Context, role models.AppRole, id uuid.UUID) error {
	if s.cases == nil {
		return errors.New("case store not set")
	}

	if role != models.RoleAdmin {
		return ErrPermissionDenied
	}

	if _, err := s.cases.GetByID(ctx, id); err != nil {
		return ErrCaseNotFound
	}

	return s.cases.Delete(ctx, id)
}

// ListCases retrieves the caller's visible cases, newest first
func (s *CaseService) ListCases(ctx context.Context, callerID uuid.UUID, role models.AppRole) ([]*models.Case, error) {
	if s.cases == nil {
		return nil, errors.New("case store not set")
	}
	return s.cases.ListVisibleTo(ctx, callerID, role, nil)
}

// BacklogEntry is a case annotated with staleness information
type BacklogEntry struct {
	models.Case
	IsStale         bool `json:"is_stale"`
	DaysSinceUpdate int  `json:"days_since_update"`
}

// BacklogResult holds the annotated backlog plus summary counts
type BacklogResult struct {
	Entries       []BacklogEntry `json:"cases"`
	Total         int            `json:"total"`
	StaleCount    int            `json:"stale_count"`
	CriticalCount int            `json:"critical_count"`
}

// Backlog retrieves the caller's visible cases ordered for triage and flags
// cases that have sat without updates for more than thirty days.
func (s *CaseService) Backlog(ctx context.Context, callerID uuid.UUID, role models.AppRole, filters repository.BacklogFilters) (*BacklogResult, error) {
	if s.cases == nil {
		return nil, errors.New("case store not set")
	}

	cases, err := s.cases.ListBacklog(ctx, callerID, role, filters)
	if err != nil {
		return nil, err
	}

	return annotateBacklog(cases, s.now()), nil
}

func annotateBacklog(cases []*models.Case, now time.Time) *BacklogResult {
	result := &BacklogResult{
		Entries: make([]BacklogEntry, 0, len(cases)),
		Total:   len(cases),
	}

	for _, c := range cases {
		lastUpdate := c.UpdatedAt
		if lastUpdate.IsZero() {
			lastUpdate = c.CreatedAt
		}
		sinceUpdate := now.Sub(lastUpdate)

		entry := BacklogEntry{
			Case:            *c,
			IsStale:         sinceUpdate > staleAfter,
			DaysSinceUpdate: int(sinceUpdate.Hours() / 24),
		}
		if entry.IsStale {
			result.StaleCount++
		}
		if c.Priority == models.PriorityCritical {
			result.CriticalCount++
		}
		result.Entries = append(result.Entries, entry)
	}

	return result
}

// DashboardStats summarizes the caller's visible caseload
type DashboardStats struct {
	Total       int                       `json:"total"`
	ByStatus    map[models.CaseStatus]int `json:"by_status"`
	RecentCases []*models.Case            `json:"recent_cases"`
}

// Dashboard returns status counts and the five most recent visible cases
func (s *CaseService) Dashboard(ctx context.Context, callerID uuid.UUID, role models.AppRole) (*DashboardStats, error) {
	if s.cases == nil {
		return nil, errors.New("case store not set")
	}

	counts, err := s.cases.CountByStatus(ctx, callerID, role)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	recent, err := s.cases.ListVisibleTo(ctx, callerID, role, nil)
	if err != nil {
		return nil, err
	}
	if len(recent) > 5 {
		recent = recent[:5]
	}

	return &DashboardStats{
		Total:       total,
		ByStatus:    counts,
		RecentCases: recent,
	}, nil
}
