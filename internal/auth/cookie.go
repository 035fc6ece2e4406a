package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/jobboard/internal/config"
)

// AccessTokenCookie carries the access token between client and server.
const AccessTokenCookie = "accessToken"

// CookieIssuer writes and clears the access token cookie.
type CookieIssuer struct {
	cfg config.CookieConfig
}

// NewCookieIssuer constructs an issuer from cookie configuration.
func NewCookieIssuer(cfg config.CookieConfig) *CookieIssuer {
	if cfg.Path == "" {
		cfg.Path = "/"
	}
	cfg.SameSite = normalizeSameSite(cfg.SameSite)
	// browsers drop SameSite=None cookies that are not Secure
	if cfg.SameSite == fiber.CookieSameSiteNoneMode {
		cfg.Secure = true
	}
	return &CookieIssuer{cfg: cfg}
}

// Set attaches the token as an HTTP-only cookie living as long as the token.
func (ci *CookieIssuer) Set(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     AccessTokenCookie,
		Value:    token,
		Path:     ci.cfg.Path,
		Domain:   ci.cfg.Domain,
		Expires:  expiresAt,
		MaxAge:   int(AccessTokenTTL / time.Second),
		Secure:   ci.cfg.Secure,
		HTTPOnly: true,
		SameSite: ci.cfg.SameSite,
	})
}

// Clear expires the cookie on the client.
func (ci *CookieIssuer) Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     AccessTokenCookie,
		Value:    "",
		Path:     ci.cfg.Path,
		Domain:   ci.cfg.Domain,
		Expires:  time.Unix(0, 0),
		Secure:   ci.cfg.Secure,
		HTTPOnly: true,
		SameSite: ci.cfg.SameSite,
	})
}

func normalizeSameSite(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case fiber.CookieSameSiteLaxMode:
		return fiber.CookieSameSiteLaxMode
	case fiber.CookieSameSiteNoneMode:
		return fiber.CookieSameSiteNoneMode
	default:
		return fiber.CookieSameSiteStrictMode
	}
}
