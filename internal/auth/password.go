package auth

import (
	"encoding/base64"
	"errors"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the work factor used when none is configured.
const DefaultBcryptCost = 10

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	if cost <= 0 {
		cost = DefaultBcryptCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether candidate matches hash. A mismatch or a
// malformed hash yields false with a nil error; only unexpected library
// failures are returned as errors.
func VerifyPassword(candidate, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate))
	if err == nil {
		return true, nil
	}
	if isMismatchOrMalformed(err) {
		return false, nil
	}
	return false, err
}

func isMismatchOrMalformed(err error) bool {
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) || errors.Is(err, bcrypt.ErrHashTooShort) {
		return true
	}
	var versionErr bcrypt.HashVersionTooNewError
	var prefixErr bcrypt.InvalidHashPrefixError
	var costErr bcrypt.InvalidCostError
	var saltErr base64.CorruptInputError
	var costFieldErr *strconv.NumError
	return errors.As(err, &versionErr) || errors.As(err, &prefixErr) ||
		errors.As(err, &costErr) || errors.As(err, &saltErr) ||
		errors.As(err, &costFieldErr)
}
