package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/jobboard/internal/auth"
	"github.com/spec-kit/jobboard/internal/domain"
	"github.com/spec-kit/jobboard/internal/events"
	"github.com/spec-kit/jobboard/internal/repository"
	apperrors "github.com/spec-kit/jobboard/pkg/util"
)

// ApplicationService handles job applications.
type ApplicationService struct {
	applications repository.JobApplicationRepository
	jobs         repository.JobRepository
	volunteers   repository.VolunteerRepository
	dispatcher   events.Dispatcher
	logger       *zap.Logger
	now          func() time.Time
}

// ApplicationDependencies bundles collaborators for the application service.
type ApplicationDependencies struct {
	ApplicationRepo repository.JobApplicationRepository
	JobRepo         repository.JobRepository
	VolunteerRepo   repository.VolunteerRepository
	Dispatcher      events.Dispatcher
	Logger          *zap.Logger
	Clock           func() time.Time
}

// ApplicationInput is the body of an application.
type ApplicationInput struct {
	Email       string
	Name        string
	PhoneNumber string
	Position    string
	Intro       string
}

// NewApplicationService builds the service.
func NewApplicationService(deps ApplicationDependencies) *ApplicationService {
	svc := &ApplicationService{
		applications: deps.ApplicationRepo,
		jobs:         deps.JobRepo,
		volunteers:   deps.VolunteerRepo,
		dispatcher:   deps.Dispatcher,
		logger:       deps.Logger,
		now:          deps.Clock,
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc
}

// Submit files an application for jobID on behalf of the caller. Each
// principal may apply to a job once.
func (s *ApplicationService) Submit(ctx context.Context, session *domain.Session, jobID string, in ApplicationInput) (*domain.JobApplication, error) {
	if err := auth.CanApply(session); err != nil {
		return nil, err
	}

	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if missing := missingFields(map[string]string{
		"email":        in.Email,
		"name":         in.Name,
		"phone_number": in.PhoneNumber,
		"position":     in.Position,
		"intro":        in.Intro,
	}); len(missing) > 0 {
		return nil, apperrors.NewValidationError("all required fields must be provided", map[string]any{"missing": missing})
	}

	job, err := loadJob(ctx, s.jobs, jobID)
	if err != nil {
		return nil, err
	}

	exists, err := s.applications.Exists(ctx, job.ID, session.SubjectID)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("check application: %w", err))
	}
	if exists {
		return nil, errAlreadyApplied()
	}

	var birthDate *time.Time
	if session.Role == domain.RoleVolunteer {
		volunteer, err := s.volunteers.GetByID(ctx, session.SubjectID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("user", nil)
			}
			return nil, apperrors.NewInternalError(fmt.Errorf("load volunteer: %w", err))
		}
		bd := volunteer.BirthDate
		birthDate = &bd
	}

	application := &domain.JobApplication{
		JobID:         job.ID,
		ApplicantID:   session.SubjectID,
		ApplicantRole: session.Role,
		Email:         in.Email,
		Name:          in.Name,
		PhoneNumber:   strings.TrimSpace(in.PhoneNumber),
		BirthDate:     birthDate,
		Position:      strings.TrimSpace(in.Position),
		Intro:         in.Intro,
		Status:        domain.ApplicationStatusSubmitted,
	}
	if err := s.applications.Create(ctx, application); err != nil {
		if isUniqueViolation(err) {
			return nil, errAlreadyApplied()
		}
		return nil, apperrors.NewInternalError(fmt.Errorf("create application: %w", err))
	}

	publishEvent(ctx, s.dispatcher, s.logger, s.now, events.Event{
		Type:  events.EventApplicationSubmitted,
		JobID: job.ID,
		Actor: sessionActor(session),
		Payload: events.ApplicationSubmittedPayload{
			ApplicationID: application.ID,
			ApplicantName: application.Name,
			Position:      application.Position,
		},
	})
	return application, nil
}

// ListMine returns the caller's own applications.
func (s *ApplicationService) ListMine(ctx context.Context, session *domain.Session) ([]domain.JobApplication, error) {
	if err := auth.CanApply(session); err != nil {
		return nil, err
	}
	applications, err := s.applications.ListByApplicant(ctx, session.SubjectID)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("list applications: %w", err))
	}
	return applications, nil
}

func errAlreadyApplied() error {
	return apperrors.NewConflict("already applied to this job", nil)
}
