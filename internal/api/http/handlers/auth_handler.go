package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/jobboard/internal/api/dto"
	"github.com/spec-kit/jobboard/internal/auth"
	"github.com/spec-kit/jobboard/internal/domain"
	"github.com/spec-kit/jobboard/internal/service"
	apperrors "github.com/spec-kit/jobboard/pkg/util"
)

// AuthHandler exposes login, logout and session endpoints.
type AuthHandler struct {
	auth    *service.AuthService
	cookies *auth.CookieIssuer
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, cookies *auth.CookieIssuer) *AuthHandler {
	return &AuthHandler{auth: authService, cookies: cookies}
}

type loginFunc func(ctx context.Context, email, password string) (*service.LoginResult, error)

// VolunteerLogin handles POST /auth/volunteer-login.
func (h *AuthHandler) VolunteerLogin(c *fiber.Ctx) error {
	return h.login(c, h.auth.LoginVolunteer)
}

// CompanyLogin handles POST /auth/companies-login.
func (h *AuthHandler) CompanyLogin(c *fiber.Ctx) error {
	return h.login(c, h.auth.LoginCompany)
}

func (h *AuthHandler) login(c *fiber.Ctx, fn loginFunc) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return apperrors.NewValidationError("email and password required", nil)
	}

	result, err := fn(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.cookies.Set(c, result.Token, result.ExpiresAt)
	return c.JSON(fiber.Map{"data": dto.MessageResponse{Message: "login successful"}})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	profile, err := h.auth.Resolve(c.UserContext(), session)
	if err != nil {
		return err
	}

	resp := dto.MeResponse{Role: string(profile.Role)}
	switch profile.Role {
	case domain.RoleCompany:
		resp.Profile = profile.Company
	default:
		resp.Profile = profile.Volunteer
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Logout handles POST /auth/logout. Issued tokens stay valid until expiry.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.cookies.Clear(c)
	return c.JSON(fiber.Map{"data": dto.MessageResponse{Message: "logged out"}})
}
