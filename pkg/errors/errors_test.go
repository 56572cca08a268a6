package errors

import (
	"database/sql"
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloneKeepsCodeForErrorsIs(t *testing.T) {
	err := Clone(ErrNotFound, "event not found or not yours")
	wrapped := fmt.Errorf("lookup: %w", err)

	assert.True(t, stdErrors.Is(wrapped, ErrNotFound))
	assert.False(t, stdErrors.Is(wrapped, ErrForbidden))
	assert.Equal(t, "event not found or not yours", err.Error())
}

func TestFromErrorDefaultsToInternal(t *testing.T) {
	appErr := FromError(sql.ErrConnDone)
	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.ErrorIs(t, appErr, sql.ErrConnDone)
}

func TestFromErrorPreservesTypedError(t *testing.T) {
	appErr := FromError(fmt.Errorf("ctx: %w", ErrInvalidTransition))
	assert.Equal(t, "INVALID_TRANSITION", appErr.Code)
	assert.Equal(t, http.StatusConflict, appErr.Status)
	assert.Nil(t, FromError(nil))
}
