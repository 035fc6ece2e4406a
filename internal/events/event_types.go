package events

import (
	"time"

	"github.com/spec-kit/jobboard/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventJobCreated           EventType = "job_created"
	EventJobUpdated           EventType = "job_updated"
	EventJobDeleted           EventType = "job_deleted"
	EventApplicationSubmitted EventType = "application_submitted"
)

// Actor identifies the principal that caused an event.
type Actor struct {
	ID   string      `json:"id"`
	Role domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	JobID     string      `json:"job_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// JobPayload describes a created or updated job.
type JobPayload struct {
	CompanyID string    `json:"company_id"`
	Title     string    `json:"title"`
	Position  string    `json:"position"`
	DeadLine  time.Time `json:"dead_line"`
}

// ApplicationSubmittedPayload describes a new application.
type ApplicationSubmittedPayload struct {
	ApplicationID string `json:"application_id"`
	ApplicantName string `json:"applicant_name"`
	Position      string `json:"position"`
}
