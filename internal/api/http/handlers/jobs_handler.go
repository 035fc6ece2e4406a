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

// JobsHandler manages the job catalogue.
type JobsHandler struct {
	service *service.JobService
}

// NewJobsHandler constructs handler.
func NewJobsHandler(jobService *service.JobService) *JobsHandler {
	return &JobsHandler{service: jobService}
}

// List GET /jobs.
func (h *JobsHandler) List(c *fiber.Ctx) error {
	jobs, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.JobSummary, 0, len(jobs))
	for _, job := range jobs {
		items = append(items, dto.JobSummary{
			ID:          job.ID,
			CompanyID:   job.CompanyID,
			CompanyName: optionalString(job.CompanyName),
			Title:       job.Title,
			DDay:        job.DDay,
			Position:    job.Position,
			Status:      job.Status,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// Detail GET /jobs/detail/:id.
func (h *JobsHandler) Detail(c *fiber.Ctx) error {
	job, err := h.service.Detail(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.JobDetailResponse{
		ID:             job.ID,
		CompanyName:    optionalString(job.CompanyName),
		Title:          job.Title,
		JobDescription: job.JobDescription,
		Position:       job.Position,
		Status:         job.Status,
		DeadLine:       job.DeadLine,
		DDay:           job.DDay,
		VolunteerCount: job.VolunteerCount,
	}})
}

// Create POST /jobs.
func (h *JobsHandler) Create(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	// role before body: a volunteer gets 403 regardless of payload
	if err := auth.CanCreateJob(session); err != nil {
		return err
	}

	var req dto.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	job, err := h.service.Create(c.UserContext(), session, service.JobInput{
		Title:          req.Title,
		Position:       req.Position,
		StartLine:      req.StartLine,
		DeadLine:       req.DeadLine,
		JobDescription: req.JobDescription,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.CreatedResponse{ID: job.ID}})
}

// Update PATCH /jobs/:id.
func (h *JobsHandler) Update(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	job, err := h.service.Update(c.UserContext(), session, c.Params("id"), service.JobUpdateInput{
		Title:          req.Title,
		Position:       req.Position,
		StartLine:      req.StartLine,
		DeadLine:       req.DeadLine,
		JobDescription: req.JobDescription,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobResponse(job)})
}

// Delete DELETE /jobs/:id.
func (h *JobsHandler) Delete(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.Delete(c.UserContext(), session, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.MessageResponse{Message: "job deleted"}})
}

func jobResponse(job *domain.Job) dto.JobResponse {
	return dto.JobResponse{
		ID:             job.ID,
		CompanyID:      job.CompanyID,
		Title:          job.Title,
		Position:       job.Position,
		StartLine:      job.StartLine,
		DeadLine:       job.DeadLine,
		JobDescription: job.JobDescription,
		Status:         job.Status,
		CreatedAt:      job.CreatedAt,
		UpdatedAt:      job.UpdatedAt,
	}
}

// optionalString renders an empty company name as null.
func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
