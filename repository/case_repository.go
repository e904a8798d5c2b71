package repository

import (
	"context"
	"fmt"

	"verdic-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CaseRepository handles database operations for cases
type CaseRepository struct {
	db *pgxpool.Pool
}

// NewCaseRepository creates a new case repository
func NewCaseRepository(db *pgxpool.Pool) *CaseRepository {
	return &CaseRepository{db: db}
}

const caseColumns = `id, case_number, title, description, case_type, status, priority,
	filing_date, petitioner_name, respondent_name, court_name,
	petitioner_lawyer_id, respondent_lawyer_id, assigned_judge_id, created_by,
	next_hearing_date, ai_priority_score, estimated_duration_months, metadata,
	created_at, updated_at`

// priorityRank orders backlog rows by urgency in SQL without relying on the
// enum's lexical order.
const priorityRank = `CASE priority
	WHEN 'critical' THEN 4
	WHEN 'high' THEN 3
	WHEN 'medium' THEN 2
	ELSE 1
END`

func scanCase(row pgx.Row) (*models.Case, error) {
	c := &models.Case{}
	err := row.Scan(
		&c.ID,
		&c.CaseNumber,
		&c.Title,
		&c.Description,
		&c.CaseType,
		&c.Status,
		&c.Priority,
		&c.FilingDate,
		&c.PetitionerName,
		&c.RespondentName,
		&c.CourtName,
		&c.PetitionerLawyerID,
		&c.RespondentLawyerID,
		&c.AssignedJudgeID,
		&c.CreatedBy,
		&c.NextHearingDate,
		&c.AIPriorityScore,
		&c.EstimatedDurationMonths,
		&c.Metadata,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Create creates a new case record
func (r *CaseRepository) Create(ctx context.Context, c *models.Case) error {
	query := `
		INSERT INTO cases (
			case_number, title, description, case_type, status, priority,
			filing_date, petitioner_name, respondent_name, court_name,
			petitioner_lawyer_id, respondent_lawyer_id, assigned_judge_id, created_by,
			next_hearing_date, ai_priority_score, estimated_duration_months, metadata
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18
		) RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		c.CaseNumber,
		c.Title,
		c.Description,
		c.CaseType,
		c.Status,
		c.Priority,
		c.FilingDate,
		c.PetitionerName,
		c.RespondentName,
		c.CourtName,
		c.PetitionerLawyerID,
		c.RespondentLawyerID,
		c.AssignedJudgeID,
		c.CreatedBy,
		c.NextHearingDate,
		c.AIPriorityScore,
		c.EstimatedDurationMonths,
		c.Metadata,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)

	return err
}

// GetByID retrieves a case by ID
func (r *CaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Case, error) {
	query := `SELECT ` + caseColumns + ` FROM cases WHERE id = $1`
	return scanCase(r.db.QueryRow(ctx, query, id))
}

// Update updates a case record
func (r *CaseRepository) Update(ctx context.Context, c *models.Case) error {
	query := `
		UPDATE cases SET
			case_number = $2,
			title = $3,
			description = $4,
			case_type = $5,
			status = $6,
			priority = $7,
			filing_date = $8,
			petitioner_name = $9,
			respondent_name = $10,
			court_name = $11,
			petitioner_lawyer_id = $12,
			respondent_lawyer_id = $13,
			assigned_judge_id = $14,
			next_hearing_date = $15,
			ai_priority_score = $16,
			estimated_duration_months = $17,
			metadata = $18,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(
		ctx, query,
		c.ID,
		c.CaseNumber,
		c.Title,
		c.Description,
		c.CaseType,
		c.Status,
		c.Priority,
		c.FilingDate,
		c.PetitionerName,
		c.RespondentName,
		c.CourtName,
		c.PetitionerLawyerID,
		c.RespondentLawyerID,
		c.AssignedJudgeID,
		c.NextHearingDate,
		c.AIPriorityScore,
		c.EstimatedDurationMonths,
		c.Metadata,
	).Scan(&c.UpdatedAt)

	return err
}

// UpdatePriority updates only the priority of a case
func (r *CaseRepository) UpdatePriority(ctx context.Context, id uuid.UUID, priority models.CasePriority) error {
	query := `UPDATE cases SET priority = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id, priority)
	return err
}

// Delete deletes a case record
func (r *CaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM cases WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

// visibilityClause returns a WHERE fragment restricting rows to what the
// caller may read, mirroring the hosted deployment's row policies: admins and
// judges see every case, lawyers see cases they created or appear on as
// counsel, everyone else sees only their own filings.
func visibilityClause(role models.AppRole, callerID uuid.UUID, args []interface{}) (string, []interface{}) {
	switch role {
	case models.RoleAdmin, models.RoleJudge:
		return "TRUE", args
	case models.RoleLawyer:
		args = append(args, callerID)
		n := len(args)
		return fmt.Sprintf("(created_by = $%d OR petitioner_lawyer_id = $%d OR respondent_lawyer_id = $%d)", n, n, n), args
	default:
		args = append(args, callerID)
		return fmt.Sprintf("created_by = $%d", len(args)), args
	}
}

// ListVisibleTo retrieves every case the caller is allowed to read, newest
// first, optionally excluding one case (the case under review when gathering
// similarity candidates).
func (r *CaseRepository) ListVisibleTo(ctx context.Context, callerID uuid.UUID, role models.AppRole, excludeID *uuid.UUID) ([]*models.Case, error) {
	args := make([]interface{}, 0, 2)
	clause, args := visibilityClause(role, callerID, args)

	query := `SELECT ` + caseColumns + ` FROM cases WHERE ` + clause
	if excludeID != nil {
		args = append(args, *excludeID)
		query += fmt.Sprintf(" AND id != $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	return r.queryCases(ctx, query, args)
}

// BacklogFilters narrows the backlog listing
type BacklogFilters struct {
	Status   *models.CaseStatus
	Priority *models.CasePriority
}

// ListBacklog retrieves the caller's visible cases ordered for backlog
// triage: highest priority first, then oldest filing date.
func (r *CaseRepository) ListBacklog(ctx context.Context, callerID uuid.UUID, role models.AppRole, filters BacklogFilters) ([]*models.Case, error) {
	args := make([]interface{}, 0, 3)
	clause, args := visibilityClause(role, callerID, args)

	query := `SELECT ` + caseColumns + ` FROM cases WHERE ` + clause
	if filters.Status != nil {
		args = append(args, *filters.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filters.Priority != nil {
		args = append(args, *filters.Priority)
		query += fmt.Sprintf(" AND priority = $%d", len(args))
	}
	query += ` ORDER BY ` + priorityRank + ` DESC, filing_date ASC`

	return r.queryCases(ctx, query, args)
}

// CountByStatus returns the number of visible cases per lifecycle status
func (r *CaseRepository) CountByStatus(ctx context.Context, callerID uuid.UUID, role models.AppRole) (map[models.CaseStatus]int, error) {
	args := make([]interface{}, 0, 1)
	clause, args := visibilityClause(role, callerID, args)

	query := `SELECT status, COUNT(*) FROM cases WHERE ` + clause + ` GROUP BY status`
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.CaseStatus]int)
	for rows.Next() {
		var status models.CaseStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}

	return counts, rows.Err()
}

func (r *CaseRepository) queryCases(ctx context.Context, query string, args []interface{}) ([]*models.Case, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cases []*models.Case
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}

	return cases, rows.Err()
}
