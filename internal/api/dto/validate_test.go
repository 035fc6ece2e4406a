package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/jobboard/pkg/util"
)

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	err := Validate(VolunteerJoinRequest{Email: "a@x.com", Password: "pw1"})

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, apperrors.CodeValidation, domainErr.Code)
	assert.Equal(t, []string{"birth_date", "name", "phone_number"}, domainErr.Details["missing"])
}

func TestValidate_Passes(t *testing.T) {
	assert.NoError(t, Validate(LoginRequest{Email: "a@x.com", Password: "pw1"}))
	assert.NoError(t, Validate(UpdateJobRequest{}))
}

func TestValidate_RejectsNonStruct(t *testing.T) {
	assert.True(t, apperrors.HasCode(Validate("nope"), apperrors.CodeInternal))
}
