package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	apperrors "qualityflow-backend/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	err := apperrors.ErrProjectNotFound
	assert.Equal(t, "project not found", err.Error())
	assert.True(t, apperrors.IsNotFound(err))
	assert.False(t, apperrors.IsNotFound(stderrors.New("other")))
}

func TestNotFoundErrorIsComparesEntity(t *testing.T) {
	wrapped := fmt.Errorf("loading schedule: %w", apperrors.ErrPhaseNotFound)
	assert.True(t, stderrors.Is(wrapped, apperrors.ErrPhaseNotFound))
	assert.False(t, stderrors.Is(wrapped, apperrors.ErrProjectNotFound))
}

func TestAlreadyExistsError(t *testing.T) {
	assert.Equal(t, "project already exists with this name", apperrors.ErrProjectExists.Error())
	assert.True(t, apperrors.IsAlreadyExists(apperrors.ErrTeamMemberExists))
}

func TestValidationError(t *testing.T) {
	err := apperrors.NewValidationError("phase_key", "is required")
	assert.Equal(t, "validation error: phase_key - is required", err.Error())
	assert.True(t, apperrors.IsValidation(err))

	bare := &apperrors.ValidationError{Message: "bad payload"}
	assert.Equal(t, "validation error: bad payload", bare.Error())
}

func TestAuthenticationError(t *testing.T) {
	assert.True(t, apperrors.IsAuthentication(apperrors.ErrUserEmailNotFound))
	assert.False(t, apperrors.IsAuthentication(apperrors.ErrDependencyCycle))
}
