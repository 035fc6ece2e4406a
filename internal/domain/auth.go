package domain

import (
	"errors"
	"time"
)

// Role differentiates volunteer vs company tokens.
type Role string

const (
	RoleVolunteer Role = "user"
	RoleCompany   Role = "companies"
)

// ErrUnknownRole is returned for role values outside the known variants.
var ErrUnknownRole = errors.New("unknown role")

// ParseRole maps a raw claim value onto a known role.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleVolunteer:
		return RoleVolunteer, nil
	case RoleCompany:
		return RoleCompany, nil
	default:
		return "", ErrUnknownRole
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// Identity is the set of claims embedded when issuing a token.
type Identity struct {
	SubjectID   string
	DisplayName string
	Role        Role
}

// Session is the verified identity of a caller, valid for one request.
type Session struct {
	Identity
	IssuedAt  time.Time
	ExpiresAt time.Time
}
