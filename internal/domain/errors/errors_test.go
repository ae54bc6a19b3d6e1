package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestBaseError_IsMatchesDerivedCopies(t *testing.T) {
	detailed := ErrValidationFailed.WithDetails("avatar missing")
	renamed := ErrValidationFailed.WithMessage("Avatar file is required")

	assert.True(t, stderrors.Is(detailed, ErrValidationFailed))
	assert.True(t, stderrors.Is(renamed, ErrValidationFailed))
	assert.True(t, stderrors.Is(ErrAccountNotFound.WrapMessage("lookup"), ErrAccountNotFound))
	assert.False(t, stderrors.Is(detailed, ErrUnauthorized))

	assert.Equal(t, "Avatar file is required", renamed.Message())
	assert.Equal(t, http.StatusBadRequest, renamed.HTTPCode())
	assert.Equal(t, "avatar missing", detailed.Details())
}

func TestDatabaseExecuteError(t *testing.T) {
	err := NewDatabaseExecuteError(errors.New("connection reset"), "failed to find account")

	var appErr AppError
	assert.True(t, stderrors.As(errors.Wrap(err, "outer"), &appErr))
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPCode())
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", appErr.ErrorCode())
	assert.Contains(t, appErr.Error(), "connection reset")
}
