package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/jobboard/internal/api/dto"
	"github.com/spec-kit/jobboard/internal/service"
	apperrors "github.com/spec-kit/jobboard/pkg/util"
)

// JoinHandler exposes registration endpoints.
type JoinHandler struct {
	auth *service.AuthService
}

// NewJoinHandler constructs handler.
func NewJoinHandler(authService *service.AuthService) *JoinHandler {
	return &JoinHandler{auth: authService}
}

// Volunteer handles POST /join/volunteer.
func (h *JoinHandler) Volunteer(c *fiber.Ctx) error {
	var req dto.VolunteerJoinRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	volunteer, err := h.auth.RegisterVolunteer(c.UserContext(), service.VolunteerRegistration{
		Email:       req.Email,
		Password:    req.Password,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		BirthDate:   req.BirthDate,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.CreatedResponse{ID: volunteer.ID}})
}

// Company handles POST /join/companies.
func (h *JoinHandler) Company(c *fiber.Ctx) error {
	var req dto.CompanyJoinRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	company, err := h.auth.RegisterCompany(c.UserContext(), service.CompanyRegistration{
		Email:          req.Email,
		Password:       req.Password,
		Name:           req.Name,
		Address:        req.Address,
		Phone:          req.Phone,
		BusinessNumber: req.BusinessNumber,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.CreatedResponse{ID: company.ID}})
}
