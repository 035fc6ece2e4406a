package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/jobboard/internal/domain"
)

// AccessTokenTTL is the fixed lifetime of an access token.
const AccessTokenTTL = time.Hour

const tokenProvider = "local"

var (
	// ErrInvalidToken is the only error Verify returns. Bad signatures,
	// malformed input and expiry are not distinguished.
	ErrInvalidToken = errors.New("invalid token")
	// ErrMissingSecret is returned when the manager is built without a key.
	ErrMissingSecret = errors.New("token signing secret is empty")
)

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// TokenOption customizes a TokenManager.
type TokenOption func(*TokenManager)

// WithClock overrides the time source used for issuing and validating.
func WithClock(now func() time.Time) TokenOption {
	return func(tm *TokenManager) {
		if now != nil {
			tm.now = now
		}
	}
}

// NewTokenManager builds a new manager. The secret must be non-empty.
func NewTokenManager(secret string, opts ...TokenOption) (*TokenManager, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrMissingSecret
	}
	tm := &TokenManager{secret: []byte(secret), ttl: AccessTokenTTL, now: time.Now}
	for _, opt := range opts {
		opt(tm)
	}
	return tm, nil
}

// Claims describes JWT payload.
type Claims struct {
	Name     string      `json:"name"`
	Role     domain.Role `json:"role"`
	Provider string      `json:"provider"`
	jwt.RegisteredClaims
}

// Issue builds and signs a JWT for the identity, returning the token and its expiry.
func (tm *TokenManager) Issue(identity domain.Identity) (string, time.Time, error) {
	if !identity.Role.Valid() {
		return "", time.Time{}, fmt.Errorf("issue token: %w", domain.ErrUnknownRole)
	}
	if identity.SubjectID == "" {
		return "", time.Time{}, errors.New("issue token: empty subject")
	}

	now := tm.now()
	claims := &Claims{
		Name:     identity.DisplayName,
		Role:     identity.Role,
		Provider: tokenProvider,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.SubjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return tokenString, claims.ExpiresAt.Time, nil
}

// Verify validates signature and expiry and returns the embedded session.
func (tm *TokenManager) Verify(tokenStr string) (*domain.Session, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	session := &domain.Session{
		Identity: domain.Identity{
			SubjectID:   claims.Subject,
			DisplayName: claims.Name,
			Role:        claims.Role,
		},
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}
	return session, nil
}
