package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CaseStatus represents where a case sits in its lifecycle
type CaseStatus string

const (
	StatusFiled              CaseStatus = "filed"
	StatusUnderReview        CaseStatus = "under_review"
	StatusHearingScheduled   CaseStatus = "hearing_scheduled"
	StatusEvidenceSubmission CaseStatus = "evidence_submission"
	StatusJudgmentPending    CaseStatus = "judgment_pending"
	StatusClosed             CaseStatus = "closed"
	StatusAppealed           CaseStatus = "appealed"
)

// Valid reports whether the status is one of the known lifecycle states
func (s CaseStatus) Valid() bool {
	switch s {
	case StatusFiled, StatusUnderReview, StatusHearingScheduled,
		StatusEvidenceSubmission, StatusJudgmentPending, StatusClosed, StatusAppealed:
		return true
	}
	return false
}

// CaseType represents the branch of law a case falls under
type CaseType string

const (
	TypeCivil          CaseType = "civil"
	TypeCriminal       CaseType = "criminal"
	TypeFamily         CaseType = "family"
	TypeCorporate      CaseType = "corporate"
	TypeConstitutional CaseType = "constitutional"
	TypeTax            CaseType = "tax"
	TypeLabor          CaseType = "labor"
)

// Valid reports whether the case type is a known branch of law
func (t CaseType) Valid() bool {
	switch t {
	case TypeCivil, TypeCriminal, TypeFamily, TypeCorporate,
		TypeConstitutional, TypeTax, TypeLabor:
		return true
	}
	return false
}

// CasePriority represents the urgency assigned to a case
type CasePriority string

const (
	PriorityCritical CasePriority = "critical"
	PriorityHigh     CasePriority = "high"
	PriorityMedium   CasePriority = "medium"
	PriorityLow      CasePriority = "low"
)

// Valid reports whether the priority is one of the four known levels
func (p CasePriority) Valid() bool {
	switch p {
	case PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Rank returns a numeric weight for ordering, highest urgency first
func (p CasePriority) Rank() int {
	switch p {
	case PriorityCritical:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// CaseMetadata holds free-form per-case attributes stored as JSONB
type CaseMetadata map[string]interface{}

// Value implements driver.Valuer for JSONB
func (m CaseMetadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner for JSONB
func (m *CaseMetadata) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	if len(bytes) == 0 {
		*m = make(CaseMetadata)
		return nil
	}

	return json.Unmarshal(bytes, m)
}

// Case represents a court case record
type Case struct {
	ID          uuid.UUID    `json:"id"`
	CaseNumber  string       `json:"case_number"`
	Title       string       `json:"title"`
	Description *string      `json:"description"`
	CaseType    CaseType     `json:"case_type"`
	Status      CaseStatus   `json:"status"`
	Priority    CasePriority `json:"priority"`
	FilingDate  time.Time    `json:"filing_date"`

	PetitionerName string  `json:"petitioner_name"`
	RespondentName string  `json:"respondent_name"`
	CourtName      *string `json:"court_name"`

	PetitionerLawyerID *uuid.UUID `json:"petitioner_lawyer_id"`
	RespondentLawyerID *uuid.UUID `json:"respondent_lawyer_id"`
	AssignedJudgeID    *uuid.UUID `json:"assigned_judge_id"`
	CreatedBy          *uuid.UUID `json:"created_by"`

	NextHearingDate         *time.Time   `json:"next_hearing_date"`
	AIPriorityScore         *float64     `json:"ai_priority_score"`
	EstimatedDurationMonths *int         `json:"estimated_duration_months"`
	Metadata                CaseMetadata `json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
