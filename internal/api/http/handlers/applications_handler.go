package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/jobboard/internal/api/dto"
	"github.com/spec-kit/jobboard/internal/auth"
	"github.com/spec-kit/jobboard/internal/domain"
	"github.com/spec-kit/jobboard/internal/service"
	apperrors "github.com/spec-kit/jobboard/pkg/util"
)

// ApplicationsHandler manages job applications.
type ApplicationsHandler struct {
	service *service.ApplicationService
}

// NewApplicationsHandler constructs handler.
func NewApplicationsHandler(applicationService *service.ApplicationService) *ApplicationsHandler {
	return &ApplicationsHandler{service: applicationService}
}

// Submit POST /jobapplications/:id.
func (h *ApplicationsHandler) Submit(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	application, err := h.service.Submit(c.UserContext(), session, c.Params("id"), service.ApplicationInput{
		Email:       req.Email,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Position:    req.Position,
		Intro:       req.Intro,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.CreatedResponse{ID: application.ID}})
}

// ListMine GET /jobapplications.
func (h *ApplicationsHandler) ListMine(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	applications, err := h.service.ListMine(c.UserContext(), session)
	if err != nil {
		return err
	}
	items := make([]dto.ApplicationResponse, 0, len(applications))
	for i := range applications {
		items = append(items, applicationResponse(&applications[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func applicationResponse(a *domain.JobApplication) dto.ApplicationResponse {
	resp := dto.ApplicationResponse{
		ID:          a.ID,
		JobID:       a.JobID,
		Email:       a.Email,
		Name:        a.Name,
		PhoneNumber: a.PhoneNumber,
		Position:    a.Position,
		Intro:       a.Intro,
		Status:      a.Status,
		CreatedAt:   a.CreatedAt,
	}
	if a.BirthDate != nil {
		bd := a.BirthDate.Format(domain.DateLayout)
		resp.BirthDate = &bd
	}
	return resp
}
