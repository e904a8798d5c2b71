package models

import (
	"time"

	"github.com/google/uuid"
)

// AppRole represents the access role attached to a user
type AppRole string

const (
	RoleAdmin      AppRole = "admin"
	RoleJudge      AppRole = "judge"
	RoleLawyer     AppRole = "lawyer"
	RolePublicUser AppRole = "public_user"
)

// Valid reports whether the role is one of the known application roles
func (r AppRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleJudge, RoleLawyer, RolePublicUser:
		return true
	}
	return false
}

// CanManageCases reports whether the role may create or modify case records
func (r AppRole) CanManageCases() bool {
	return r == RoleAdmin || r == RoleJudge || r == RoleLawyer
}

// Profile represents a registered user of the platform. Credentials live with
// the external identity provider; this row only carries directory data.
type Profile struct {
	ID                uuid.UUID `json:"id"`
	Email             string    `json:"email"`
	FullName          string    `json:"full_name"`
	Phone             *string   `json:"phone"`
	BarCouncilID      *string   `json:"bar_council_id"`
	Specialization    *string   `json:"specialization"`
	YearsOfExperience *int      `json:"years_of_experience"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// UserRole maps a user to an application role
type UserRole struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Role      AppRole   `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
