package domain

import "time"

// JobStatus enumerates posting states.
type JobStatus string

const (
	JobStatusOpen   JobStatus = "OPEN"
	JobStatusClosed JobStatus = "CLOSED"
)

// Job is a posting owned by a company.
type Job struct {
	ID             string
	CompanyID      string
	CompanyName    string
	Title          string
	Position       string
	StartLine      time.Time
	DeadLine       time.Time
	JobDescription string
	Status         JobStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
