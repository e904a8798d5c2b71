package models

import (
	"time"

	"github.com/google/uuid"
)

// Precedent represents a prior judgment in the research corpus
type Precedent struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Citation      string     `json:"citation"`
	CourtName     string     `json:"court_name"`
	Summary       string     `json:"summary"`
	FullText      *string    `json:"full_text"`
	CaseType      *CaseType  `json:"case_type"`
	JudgmentDate  *time.Time `json:"judgment_date"`
	Judges        []string   `json:"judges"`
	KeyPrinciples []string   `json:"key_principles"`
	RelatedLaws   []string   `json:"related_laws"`
	CreatedAt     time.Time  `json:"created_at"`
}
