package domain

import "time"

// Company is an organization that posts jobs.
type Company struct {
	ID             string
	Name           string
	Email          string
	PasswordHash   string
	Address        string
	Phone          string
	BusinessNumber string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CompanyProfile is the public view of a company.
type CompanyProfile struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Address        string    `json:"address"`
	Phone          string    `json:"phone"`
	BusinessNumber string    `json:"business_number"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Profile strips the credential and creation timestamp.
func (c *Company) Profile() CompanyProfile {
	return CompanyProfile{
		ID:             c.ID,
		Name:           c.Name,
		Email:          c.Email,
		Address:        c.Address,
		Phone:          c.Phone,
		BusinessNumber: c.BusinessNumber,
		UpdatedAt:      c.UpdatedAt,
	}
}
