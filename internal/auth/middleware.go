package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/jobboard/internal/domain"
	apperrors "github.com/spec-kit/jobboard/pkg/util"
)

const sessionKey = "auth_session"

// AuthMiddleware validates the access token cookie and exposes the session.
type AuthMiddleware struct {
	tokens *TokenManager
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Handle enforces authentication for protected routes. It makes no role decision.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	raw := c.Cookies(AccessTokenCookie)
	if raw == "" {
		return apperrors.NewUnauthorized("authentication required")
	}

	session, err := m.tokens.Verify(raw)
	if err != nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	c.Locals(sessionKey, session)
	return c.Next()
}

// SessionFromContext retrieves the verified session for the request.
func SessionFromContext(c *fiber.Ctx) (*domain.Session, bool) {
	val := c.Locals(sessionKey)
	if val == nil {
		return nil, false
	}
	session, ok := val.(*domain.Session)
	return session, ok && session != nil
}
