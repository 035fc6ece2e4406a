package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	role, err := ParseRole("user")
	assert.NoError(t, err)
	assert.Equal(t, RoleVolunteer, role)

	role, err = ParseRole("companies")
	assert.NoError(t, err)
	assert.Equal(t, RoleCompany, role)

	for _, raw := range []string{"", "admin", "USER", "company"} {
		_, err := ParseRole(raw)
		assert.ErrorIs(t, err, ErrUnknownRole, raw)
		assert.False(t, Role(raw).Valid(), raw)
	}
}
