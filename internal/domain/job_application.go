package domain

import "time"

// ApplicationStatus enumerates application states.
type ApplicationStatus string

const ApplicationStatusSubmitted ApplicationStatus = "SUBMITTED"

// JobApplication is a principal's application to a job.
type JobApplication struct {
	ID            string
	JobID         string
	ApplicantID   string
	ApplicantRole Role
	Email         string
	Name          string
	PhoneNumber   string
	BirthDate     *time.Time
	Position      string
	Intro         string
	Status        ApplicationStatus
	CreatedAt     time.Time
}
