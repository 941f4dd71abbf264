package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err    error
		code   string
		status int
	}{
		{NewValidationError("bad", nil), CodeValidationFailed, http.StatusBadRequest},
		{NewNotFound("job", nil), CodeNotFound, http.StatusNotFound},
		{NewUnauthorized("who"), CodeUnauthorized, http.StatusUnauthorized},
		{NewForbidden("no"), CodeForbidden, http.StatusForbidden},
		{NewConflict("dup", nil), CodeConflict, http.StatusConflict},
		{NewInvalidState("closed", nil), CodeInvalidState, http.StatusBadRequest},
		{NewInternalError(errors.New("db")), CodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		domainErr := ToDomainError(tc.err)
		assert.Equal(t, tc.code, domainErr.Code)
		assert.Equal(t, tc.status, domainErr.HTTPStatus)
		assert.True(t, HasCode(tc.err, tc.code))
	}
	assert.Equal(t, "job not found", NewNotFound("job", nil).Error())
}

func TestToDomainErrorWrapsUnknownErrors(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	domainErr := ToDomainError(cause)
	assert.Equal(t, CodeInternal, domainErr.Code)
	assert.ErrorIs(t, domainErr, cause)
	assert.Nil(t, ToDomainError(nil))

	wrapped := fmt.Errorf("handler: %w", NewForbidden("no"))
	assert.True(t, HasCode(wrapped, CodeForbidden))
	assert.False(t, HasCode(cause, CodeInternal))
}
