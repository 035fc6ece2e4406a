package dto

import (
	"time"

	"github.com/spec-kit/jobboard/internal/domain"
)

// CreateJobRequest payload for POST /jobs.
type CreateJobRequest struct {
	Title          string `json:"title" validate:"required"`
	Position       string `json:"position" validate:"required"`
	StartLine      string `json:"start_line" validate:"required"`
	DeadLine       string `json:"dead_line" validate:"required"`
	JobDescription string `json:"job_description" validate:"required"`
}

// UpdateJobRequest payload for PATCH /jobs/:id. Absent fields are kept.
type UpdateJobRequest struct {
	Title          *string `json:"title"`
	Position       *string `json:"position"`
	StartLine      *string `json:"start_line"`
	DeadLine       *string `json:"dead_line"`
	JobDescription *string `json:"job_description"`
}

// JobSummary response row for GET /jobs.
type JobSummary struct {
	ID          string           `json:"id"`
	CompanyID   string           `json:"company_id"`
	CompanyName *string          `json:"company_name"`
	Title       string           `json:"title"`
	DDay        string           `json:"dday"`
	Position    string           `json:"position"`
	Status      domain.JobStatus `json:"status"`
}

// JobDetailResponse for GET /jobs/detail/:id.
type JobDetailResponse struct {
	ID             string           `json:"id"`
	CompanyName    *string          `json:"company_name"`
	Title          string           `json:"title"`
	JobDescription string           `json:"job_description"`
	Position       string           `json:"position"`
	Status         domain.JobStatus `json:"status"`
	DeadLine       time.Time        `json:"deadline"`
	DDay           string           `json:"dday"`
	VolunteerCount int              `json:"volunteer_count"`
}

// JobResponse is the full job returned after a write.
type JobResponse struct {
	ID             string           `json:"id"`
	CompanyID      string           `json:"company_id"`
	Title          string           `json:"title"`
	Position       string           `json:"position"`
	StartLine      time.Time        `json:"start_line"`
	DeadLine       time.Time        `json:"dead_line"`
	JobDescription string           `json:"job_description"`
	Status         domain.JobStatus `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}
