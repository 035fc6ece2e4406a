package dto

import (
	"time"

	"github.com/spec-kit/jobboard/internal/domain"
)

// ApplyRequest payload for POST /jobapplications/:id.
type ApplyRequest struct {
	Email       string `json:"email" validate:"required"`
	Name        string `json:"name" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	Position    string `json:"position" validate:"required"`
	Intro       string `json:"intro" validate:"required"`
}

// ApplicationResponse describes one of the caller's applications.
type ApplicationResponse struct {
	ID          string                   `json:"id"`
	JobID       string                   `json:"job_id"`
	Email       string                   `json:"email"`
	Name        string                   `json:"name"`
	PhoneNumber string                   `json:"phone_number"`
	BirthDate   *string                  `json:"birth_date"`
	Position    string                   `json:"position"`
	Intro       string                   `json:"intro"`
	Status      domain.ApplicationStatus `json:"status"`
	CreatedAt   time.Time                `json:"created_at"`
}
