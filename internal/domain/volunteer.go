package domain

import "time"

// Volunteer is an individual user who applies to jobs.
type Volunteer struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	PhoneNumber  string
	BirthDate    time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// VolunteerProfile is the public view of a volunteer.
type VolunteerProfile struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	BirthDate   string    `json:"birth_date"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Profile strips the credential and creation timestamp.
func (v *Volunteer) Profile() VolunteerProfile {
	return VolunteerProfile{
		ID:          v.ID,
		Name:        v.Name,
		Email:       v.Email,
		PhoneNumber: v.PhoneNumber,
		BirthDate:   v.BirthDate.Format(DateLayout),
		UpdatedAt:   v.UpdatedAt,
	}
}

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"
