package repository

import (
	"context"

	"verdic-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProfileRepository handles database operations for user profiles and roles
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetByID retrieves a profile by user ID
func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	p := &models.Profile{}
	query := `
		SELECT id, email, full_name, phone, bar_council_id, specialization,
			years_of_experience, created_at, updated_at
		FROM profiles
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Email,
		&p.FullName,
		&p.Phone,
		&p.BarCouncilID,
		&p.Specialization,
		&p.YearsOfExperience,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// GetRole retrieves the application role for a user. Users without an
// explicit role row default to public_user.
func (r *ProfileRepository) GetRole(ctx context.Context, userID uuid.UUID) (models.AppRole, error) {
	var role models.AppRole
	query := `SELECT role FROM user_roles WHERE user_id = $1 LIMIT 1`

	err := r.db.QueryRow(ctx, query, userID).Scan(&role)
	if err != nil {
		return models.RolePublicUser, err
	}

	return role, nil
}
