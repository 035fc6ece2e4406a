package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestToDomainError(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))

	notFound := ToDomainError(fmt.Errorf("lookup: %w", pgx.ErrNoRows))
	assert.Equal(t, CodeNotFound, notFound.Code)
	assert.Equal(t, http.StatusNotFound, notFound.HTTPStatus)

	internal := ToDomainError(errors.New("connection reset"))
	assert.Equal(t, CodeInternal, internal.Code)
	assert.Equal(t, "internal server error", internal.Message)
	assert.Equal(t, http.StatusInternalServerError, internal.HTTPStatus)

	wrapped := fmt.Errorf("ctx: %w", NewForbidden("nope"))
	assert.Equal(t, CodeForbidden, ToDomainError(wrapped).Code)
}

func TestStatuses(t *testing.T) {
	cases := []struct {
		err    error
		code   string
		status int
	}{
		{NewValidationError("bad", nil), CodeValidation, http.StatusBadRequest},
		{NewNotFound("job", nil), CodeNotFound, http.StatusNotFound},
		{NewInvalidCredential(), CodeInvalidCredential, http.StatusBadRequest},
		{NewUnauthorized("who"), CodeUnauthorized, http.StatusUnauthorized},
		{NewForbidden("no"), CodeForbidden, http.StatusForbidden},
		{NewConflict("dup", nil), CodeConflict, http.StatusBadRequest},
		{NewInternalError(nil), CodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		de := ToDomainError(tc.err)
		assert.Equal(t, tc.code, de.Code)
		assert.Equal(t, tc.status, de.HTTPStatus)
		assert.True(t, HasCode(tc.err, tc.code))
	}
	assert.False(t, HasCode(errors.New("plain"), CodeInternal))
}
