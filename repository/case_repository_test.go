package repository

import (
	"testing"

	"verdic-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestVisibilityClause(t *testing.T) {
	callerID := uuid.New()

	t.Run("admin and judge see everything", func(t *testing.T) {
		for _, role := range []models.AppRole{models.RoleAdmin, models.RoleJudge} {
			clause, args := visibilityClause(role, callerID, nil)
			require.Equal(t, "TRUE", clause)
			require.Empty(t, args)
		}
	})

	t.Run("lawyer sees own and counsel cases", func(t *testing.T) {
		clause, args := visibilityClause(models.RoleLawyer, callerID, nil)
		require.Equal(t, "(created_by = $1 OR petitioner_lawyer_id = $1 OR respondent_lawyer_id = $1)", clause)
		require.Equal(t, []interface{}{callerID}, args)
	})

	t.Run("public user sees own filings only", func(t *testing.T) {
		clause, args := visibilityClause(models.RolePublicUser, callerID, nil)
		require.Equal(t, "created_by = $1", clause)
		require.Equal(t, []interface{}{callerID}, args)
	})

	t.Run("placeholders continue from existing args", func(t *testing.T) {
		existing := []interface{}{"filed"}
		clause, args := visibilityClause(models.RolePublicUser, callerID, existing)
		require.Equal(t, "created_by = $2", clause)
		require.Len(t, args, 2)
	})
}
