package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/jobboard/internal/auth"
	"github.com/spec-kit/jobboard/internal/domain"
	"github.com/spec-kit/jobboard/internal/repository"
	apperrors "github.com/spec-kit/jobboard/pkg/util"
)

// AuthService coordinates registration, login and session resolution for
// both principal kinds.
type AuthService struct {
	volunteers repository.VolunteerRepository
	companies  repository.CompanyRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	VolunteerRepo repository.VolunteerRepository
	CompanyRepo   repository.CompanyRepository
	TokenManager  *auth.TokenManager
	BcryptCost    int
}

// LoginResult carries a freshly issued token. It is delivered by cookie only.
type LoginResult struct {
	Identity  domain.Identity
	Token     string
	ExpiresAt time.Time
}

// VolunteerRegistration is the input for creating a volunteer account.
type VolunteerRegistration struct {
	Email       string
	Password    string
	Name        string
	PhoneNumber string
	BirthDate   string
}

// CompanyRegistration is the input for creating a company account.
type CompanyRegistration struct {
	Email          string
	Password       string
	Name           string
	Address        string
	Phone          string
	BusinessNumber string
}

// PublicProfile is the caller's profile; exactly one of the pointers is set.
type PublicProfile struct {
	Role      domain.Role
	Volunteer *domain.VolunteerProfile
	Company   *domain.CompanyProfile
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		volunteers: deps.VolunteerRepo,
		companies:  deps.CompanyRepo,
		tokenMgr:   deps.TokenManager,
		bcryptCost: deps.BcryptCost,
	}
}

// LoginVolunteer authenticates a volunteer.
func (s *AuthService) LoginVolunteer(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if err := requireCredentials(email, password); err != nil {
		return nil, err
	}

	volunteer, err := s.volunteers.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("account", nil)
		}
		return nil, apperrors.NewInternalError(fmt.Errorf("lookup volunteer: %w", err))
	}

	return s.completeLogin(volunteer.PasswordHash, password, domain.Identity{
		SubjectID:   volunteer.ID,
		DisplayName: volunteer.Name,
		Role:        domain.RoleVolunteer,
	})
}

// LoginCompany authenticates a company.
func (s *AuthService) LoginCompany(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if err := requireCredentials(email, password); err != nil {
		return nil, err
	}

	company, err := s.companies.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("account", nil)
		}
		return nil, apperrors.NewInternalError(fmt.Errorf("lookup company: %w", err))
	}

	return s.completeLogin(company.PasswordHash, password, domain.Identity{
		SubjectID:   company.ID,
		DisplayName: company.Name,
		Role:        domain.RoleCompany,
	})
}

func (s *AuthService) completeLogin(hash, password string, identity domain.Identity) (*LoginResult, error) {
	ok, err := auth.VerifyPassword(password, hash)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("verify password: %w", err))
	}
	if !ok {
		return nil, apperrors.NewInvalidCredential()
	}

	token, exp, err := s.tokenMgr.Issue(identity)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &LoginResult{Identity: identity, Token: token, ExpiresAt: exp}, nil
}

// RegisterVolunteer creates a new volunteer account.
func (s *AuthService) RegisterVolunteer(ctx context.Context, in VolunteerRegistration) (*domain.Volunteer, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if missing := missingFields(map[string]string{
		"email":        in.Email,
		"password":     in.Password,
		"name":         in.Name,
		"phone_number": in.PhoneNumber,
		"birth_date":   in.BirthDate,
	}); len(missing) > 0 {
		return nil, apperrors.NewValidationError("all required fields must be provided", map[string]any{"missing": missing})
	}

	birthDate, err := time.Parse(domain.DateLayout, strings.TrimSpace(in.BirthDate))
	if err != nil {
		return nil, apperrors.NewValidationError("birth_date must be YYYY-MM-DD", nil)
	}

	if err := s.ensureEmailAvailable(ctx, in.Email); err != nil {
		return nil, err
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	volunteer := &domain.Volunteer{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		PhoneNumber:  strings.TrimSpace(in.PhoneNumber),
		BirthDate:    birthDate,
	}
	if err := s.volunteers.Create(ctx, volunteer); err != nil {
		return nil, mapCreateError("create volunteer", err)
	}
	return volunteer, nil
}

// hashPassword rejects passwords bcrypt cannot hash as client input errors.
func (s *AuthService) hashPassword(password string) (string, error) {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", apperrors.NewValidationError("password must be at most 72 bytes", map[string]any{"field": "password"})
		}
		return "", apperrors.NewInternalError(fmt.Errorf("hash password: %w", err))
	}
	return hash, nil
}

// RegisterCompany creates a new company account.
func (s *AuthService) RegisterCompany(ctx context.Context, in CompanyRegistration) (*domain.Company, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if missing := missingFields(map[string]string{
		"email":           in.Email,
		"password":        in.Password,
		"name":            in.Name,
		"address":         in.Address,
		"phone":           in.Phone,
		"business_number": in.BusinessNumber,
	}); len(missing) > 0 {
		return nil, apperrors.NewValidationError("all required fields must be provided", map[string]any{"missing": missing})
	}

	if err := s.ensureEmailAvailable(ctx, in.Email); err != nil {
		return nil, err
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	company := &domain.Company{
		Name:           in.Name,
		Email:          in.Email,
		PasswordHash:   hash,
		Address:        strings.TrimSpace(in.Address),
		Phone:          strings.TrimSpace(in.Phone),
		BusinessNumber: strings.TrimSpace(in.BusinessNumber),
	}
	if err := s.companies.Create(ctx, company); err != nil {
		return nil, mapCreateError("create company", err)
	}
	return company, nil
}

// ensureEmailAvailable checks both principal stores. The check is not atomic
// with the insert; the per-table unique index catches same-table races only.
func (s *AuthService) ensureEmailAvailable(ctx context.Context, email string) error {
	if _, err := s.volunteers.GetByEmail(ctx, email); err == nil {
		return errEmailTaken()
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewInternalError(fmt.Errorf("check volunteer email: %w", err))
	}

	if _, err := s.companies.GetByEmail(ctx, email); err == nil {
		return errEmailTaken()
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewInternalError(fmt.Errorf("check company email: %w", err))
	}
	return nil
}

// Resolve returns the public profile of the session's principal.
func (s *AuthService) Resolve(ctx context.Context, session *domain.Session) (*PublicProfile, error) {
	if session == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}

	switch session.Role {
	case domain.RoleCompany:
		company, err := s.companies.GetByID(ctx, session.SubjectID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("company", nil)
			}
			return nil, apperrors.NewInternalError(fmt.Errorf("load company: %w", err))
		}
		profile := company.Profile()
		return &PublicProfile{Role: domain.RoleCompany, Company: &profile}, nil
	case domain.RoleVolunteer:
		volunteer, err := s.volunteers.GetByID(ctx, session.SubjectID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("user", nil)
			}
			return nil, apperrors.NewInternalError(fmt.Errorf("load volunteer: %w", err))
		}
		profile := volunteer.Profile()
		return &PublicProfile{Role: domain.RoleVolunteer, Volunteer: &profile}, nil
	default:
		return nil, apperrors.NewForbidden("invalid role claim")
	}
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func requireCredentials(email, password string) error {
	if email == "" || password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}
	return nil
}

func errEmailTaken() error {
	return apperrors.NewConflict("email already registered", nil)
}

func mapCreateError(op string, err error) error {
	if isUniqueViolation(err) {
		return errEmailTaken()
	}
	return apperrors.NewInternalError(fmt.Errorf("%s: %w", op, err))
}
