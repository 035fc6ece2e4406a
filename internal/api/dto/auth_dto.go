package dto

// LoginRequest payload for both login endpoints.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// VolunteerJoinRequest payload for POST /join/volunteer.
type VolunteerJoinRequest struct {
	Email       string `json:"email" validate:"required"`
	Password    string `json:"password" validate:"required"`
	Name        string `json:"name" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	BirthDate   string `json:"birth_date" validate:"required"`
}

// CompanyJoinRequest payload for POST /join/companies.
type CompanyJoinRequest struct {
	Email          string `json:"email" validate:"required"`
	Password       string `json:"password" validate:"required"`
	Name           string `json:"name" validate:"required"`
	Address        string `json:"address" validate:"required"`
	Phone          string `json:"phone" validate:"required"`
	BusinessNumber string `json:"business_number" validate:"required"`
}

// MeResponse describes the caller.
type MeResponse struct {
	Role    string `json:"role"`
	Profile any    `json:"profile"`
}

// CreatedResponse carries the id of a newly created resource.
type CreatedResponse struct {
	ID string `json:"id"`
}

// MessageResponse is a generic acknowledgment.
type MessageResponse struct {
	Message string `json:"message"`
}
