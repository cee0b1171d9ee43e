package postgres

import (
	"errors"
	"fmt"
	"testing"

	apperrors "asset-service/pkg/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestViolationClassifiers(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505"}
	foreignKey := &pgconn.PgError{Code: "23503"}

	assert.True(t, isUniqueViolation(unique))
	assert.True(t, isUniqueViolation(fmt.Errorf("exec: %w", unique)))
	assert.False(t, isUniqueViolation(foreignKey))
	assert.False(t, isUniqueViolation(errors.New("connection reset")))
	assert.False(t, isUniqueViolation(nil))

	assert.True(t, isForeignKeyViolation(foreignKey))
	assert.True(t, isForeignKeyViolation(fmt.Errorf("exec: %w", foreignKey)))
	assert.False(t, isForeignKeyViolation(unique))
	assert.False(t, isForeignKeyViolation(nil))
}

func TestConflictMessages(t *testing.T) {
	// These messages are surfaced to API clients verbatim, so the
	// repositories must keep returning the exact wording.
	assert.Equal(t, "username already exists", apperrors.Conflict(errUsernameExists).Message)
	assert.Equal(t, "device has assignment history", apperrors.Conflict(errDeviceHasAssignments).Message)
}
