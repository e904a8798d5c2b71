package repository

import (
	"context"
	"strings"

	"verdic-backend/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PrecedentRepository handles database operations for the precedent corpus
type PrecedentRepository struct {
	db *pgxpool.Pool
}

// NewPrecedentRepository creates a new precedent repository
func NewPrecedentRepository(db *pgxpool.Pool) *PrecedentRepository {
	return &PrecedentRepository{db: db}
}

const precedentColumns = `id, title, citation, court_name, summary, full_text,
	case_type, judgment_date, judges, key_principles, related_laws, created_at`

func scanPrecedent(row pgx.Row) (*models.Precedent, error) {
	p := &models.Precedent{}
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Citation,
		&p.CourtName,
		&p.Summary,
		&p.FullText,
		&p.CaseType,
		&p.JudgmentDate,
		&p.Judges,
		&p.KeyPrinciples,
		&p.RelatedLaws,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// EscapeSearchTerm escapes SQL LIKE wildcards so user input matches literally
func EscapeSearchTerm(term string) string {
	term = strings.ReplaceAll(term, `\`, `\\`)
	term = strings.ReplaceAll(term, `%`, `\%`)
	term = strings.ReplaceAll(term, `_`, `\_`)
	return strings.TrimSpace(term)
}

// Search finds precedents whose title or summary contains the term,
// case-insensitively. The term is escaped before being wrapped in wildcards.
func (r *PrecedentRepository) Search(ctx context.Context, term string, limit int) ([]*models.Precedent, error) {
	if limit <= 0 {
		limit = 10
	}
	pattern := "%" + EscapeSearchTerm(term) + "%"

	query := `SELECT ` + precedentColumns + `
		FROM legal_precedents
		WHERE title ILIKE $1 OR summary ILIKE $1
		ORDER BY judgment_date DESC NULLS LAST
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var precedents []*models.Precedent
	for rows.Next() {
		p, err := scanPrecedent(rows)
		if err != nil {
			return nil, err
		}
		precedents = append(precedents, p)
	}

	return precedents, rows.Err()
}

// ListRecent retrieves the most recently added precedents
func (r *PrecedentRepository) ListRecent(ctx context.Context, limit int) ([]*models.Precedent, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `SELECT ` + precedentColumns + `
		FROM legal_precedents
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var precedents []*models.Precedent
	for rows.Next() {
		p, err := scanPrecedent(rows)
		if err != nil {
			return nil, err
		}
		precedents = append(precedents, p)
	}

	return precedents, rows.Err()
}
