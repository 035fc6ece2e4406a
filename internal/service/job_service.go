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
	"github.com/spec-kit/jobboard/internal/cache"
	"github.com/spec-kit/jobboard/internal/domain"
	"github.com/spec-kit/jobboard/internal/events"
	"github.com/spec-kit/jobboard/internal/repository"
	apperrors "github.com/spec-kit/jobboard/pkg/util"
)

// JobService coordinates the job catalogue.
type JobService struct {
	jobs         repository.JobRepository
	applications repository.JobApplicationRepository
	cache        cache.JobListCache
	dispatcher   events.Dispatcher
	logger       *zap.Logger
	now          func() time.Time
}

// JobDependencies bundles collaborators for the job service.
type JobDependencies struct {
	JobRepo         repository.JobRepository
	ApplicationRepo repository.JobApplicationRepository
	Cache           cache.JobListCache
	Dispatcher      events.Dispatcher
	Logger          *zap.Logger
	Clock           func() time.Time
}

// JobSummary is one row of the public listing.
type JobSummary struct {
	ID          string
	CompanyID   string
	CompanyName string
	Title       string
	DDay        string
	Position    string
	Status      domain.JobStatus
}

// JobDetail is the public view of a single job.
type JobDetail struct {
	ID             string
	CompanyName    string
	Title          string
	JobDescription string
	Position       string
	Status         domain.JobStatus
	DeadLine       time.Time
	DDay           string
	VolunteerCount int
}

// JobInput describes a new job. Dates accept YYYY-MM-DD or RFC 3339.
type JobInput struct {
	Title          string
	Position       string
	StartLine      string
	DeadLine       string
	JobDescription string
}

// JobUpdateInput describes a partial update; nil fields are left untouched.
type JobUpdateInput struct {
	Title          *string
	Position       *string
	StartLine      *string
	DeadLine       *string
	JobDescription *string
}

// NewJobService builds the service.
func NewJobService(deps JobDependencies) *JobService {
	svc := &JobService{
		jobs:         deps.JobRepo,
		applications: deps.ApplicationRepo,
		cache:        deps.Cache,
		dispatcher:   deps.Dispatcher,
		logger:       deps.Logger,
		now:          deps.Clock,
	}
	if svc.cache == nil {
		svc.cache = cache.NewJobListCache(nil, 0)
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc
}

// List returns every job with its D-day relative to today.
func (s *JobService) List(ctx context.Context) ([]JobSummary, error) {
	jobs, err := s.loadJobs(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	result := make([]JobSummary, 0, len(jobs))
	for _, job := range jobs {
		result = append(result, JobSummary{
			ID:          job.ID,
			CompanyID:   job.CompanyID,
			CompanyName: job.CompanyName,
			Title:       job.Title,
			DDay:        FormatDDay(now, job.DeadLine),
			Position:    job.Position,
			Status:      job.Status,
		})
	}
	return result, nil
}

func (s *JobService) loadJobs(ctx context.Context) ([]domain.Job, error) {
	cached, ok, err := s.cache.Get(ctx)
	if err != nil {
		s.logger.Warn("job list cache read failed", zap.Error(err))
	} else if ok {
		return cached, nil
	}

	jobs, err := s.jobs.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("list jobs: %w", err))
	}
	if err := s.cache.Set(ctx, jobs); err != nil {
		s.logger.Warn("job list cache write failed", zap.Error(err))
	}
	return jobs, nil
}

// Detail returns a single job with its applicant count.
func (s *JobService) Detail(ctx context.Context, id string) (*JobDetail, error) {
	job, err := s.getJob(ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := s.applications.CountByJob(ctx, job.ID)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("count applications: %w", err))
	}

	return &JobDetail{
		ID:             job.ID,
		CompanyName:    job.CompanyName,
		Title:          job.Title,
		JobDescription: job.JobDescription,
		Position:       job.Position,
		Status:         job.Status,
		DeadLine:       job.DeadLine,
		DDay:           FormatDDay(s.now(), job.DeadLine),
		VolunteerCount: count,
	}, nil
}

// Create posts a job owned by the calling company.
func (s *JobService) Create(ctx context.Context, session *domain.Session, in JobInput) (*domain.Job, error) {
	if err := auth.CanCreateJob(session); err != nil {
		return nil, err
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Position = strings.TrimSpace(in.Position)
	if missing := missingFields(map[string]string{
		"title":           in.Title,
		"position":        in.Position,
		"start_line":      in.StartLine,
		"dead_line":       in.DeadLine,
		"job_description": in.JobDescription,
	}); len(missing) > 0 {
		return nil, apperrors.NewValidationError("all required fields must be provided", map[string]any{"missing": missing})
	}

	startLine, err := parseDate("start_line", in.StartLine)
	if err != nil {
		return nil, err
	}
	deadLine, err := parseDate("dead_line", in.DeadLine)
	if err != nil {
		return nil, err
	}

	job := &domain.Job{
		CompanyID:      session.SubjectID,
		CompanyName:    session.DisplayName,
		Title:          in.Title,
		Position:       in.Position,
		StartLine:      startLine,
		DeadLine:       deadLine,
		JobDescription: in.JobDescription,
		Status:         domain.JobStatusOpen,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("create job: %w", err))
	}

	s.invalidate(ctx)
	s.publishEvent(ctx, events.Event{
		Type:  events.EventJobCreated,
		JobID: job.ID,
		Actor: sessionActor(session),
		Payload: events.JobPayload{
			CompanyID: job.CompanyID,
			Title:     job.Title,
			Position:  job.Position,
			DeadLine:  job.DeadLine,
		},
	})
	return job, nil
}

// Update applies a partial update to a job owned by the caller. A missing job
// is reported before any ownership decision.
func (s *JobService) Update(ctx context.Context, session *domain.Session, id string, in JobUpdateInput) (*domain.Job, error) {
	if session == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	job, err := s.getJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.CanModifyJob(session, job); err != nil {
		return nil, err
	}

	patch, err := buildPatch(in)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return job, nil
	}

	if err := s.jobs.Update(ctx, job.ID, patch); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("job", nil)
		}
		return nil, apperrors.NewInternalError(fmt.Errorf("update job: %w", err))
	}

	updated, err := s.getJob(ctx, job.ID)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.publishEvent(ctx, events.Event{
		Type:  events.EventJobUpdated,
		JobID: updated.ID,
		Actor: sessionActor(session),
		Payload: events.JobPayload{
			CompanyID: updated.CompanyID,
			Title:     updated.Title,
			Position:  updated.Position,
			DeadLine:  updated.DeadLine,
		},
	})
	return updated, nil
}

// Delete removes a job owned by the caller.
func (s *JobService) Delete(ctx context.Context, session *domain.Session, id string) error {
	if session == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	job, err := s.getJob(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.CanModifyJob(session, job); err != nil {
		return err
	}

	if err := s.jobs.Delete(ctx, job.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("job", nil)
		}
		return apperrors.NewInternalError(fmt.Errorf("delete job: %w", err))
	}

	s.invalidate(ctx)
	s.publishEvent(ctx, events.Event{
		Type:  events.EventJobDeleted,
		JobID: job.ID,
		Actor: sessionActor(session),
	})
	return nil
}

func (s *JobService) getJob(ctx context.Context, id string) (*domain.Job, error) {
	return loadJob(ctx, s.jobs, id)
}

func loadJob(ctx context.Context, jobs repository.JobRepository, id string) (*domain.Job, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperrors.NewNotFound("job", nil)
	}
	job, err := jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidTextRepresentation(err) {
			return nil, apperrors.NewNotFound("job", nil)
		}
		return nil, apperrors.NewInternalError(fmt.Errorf("load job: %w", err))
	}
	return job, nil
}

func (s *JobService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("job list cache invalidation failed", zap.Error(err))
	}
}

func (s *JobService) publishEvent(ctx context.Context, event events.Event) {
	publishEvent(ctx, s.dispatcher, s.logger, s.now, event)
}

func buildPatch(in JobUpdateInput) (repository.JobPatch, error) {
	var patch repository.JobPatch
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return patch, apperrors.NewValidationError("title must not be empty", nil)
		}
		patch.Title = &title
	}
	if in.Position != nil {
		position := strings.TrimSpace(*in.Position)
		if position == "" {
			return patch, apperrors.NewValidationError("position must not be empty", nil)
		}
		patch.Position = &position
	}
	if in.StartLine != nil {
		start, err := parseDate("start_line", *in.StartLine)
		if err != nil {
			return patch, err
		}
		patch.StartLine = &start
	}
	if in.DeadLine != nil {
		deadline, err := parseDate("dead_line", *in.DeadLine)
		if err != nil {
			return patch, err
		}
		patch.DeadLine = &deadline
	}
	if in.JobDescription != nil {
		description := *in.JobDescription
		patch.JobDescription = &description
	}
	return patch, nil
}

func parseDate(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(domain.DateLayout, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, apperrors.NewValidationError(field+" must be a date", map[string]any{"field": field})
}

// FormatDDay renders the calendar-day distance from now to deadline as
// "D-n", or "D+n" once the deadline has passed. Both sides are compared as
// UTC calendar dates.
func FormatDDay(now, deadline time.Time) string {
	days := civilDays(deadline) - civilDays(now)
	if days < 0 {
		return fmt.Sprintf("D+%d", -days)
	}
	return fmt.Sprintf("D-%d", days)
}

func civilDays(t time.Time) int {
	y, m, d := t.UTC().Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

func sessionActor(session *domain.Session) events.Actor {
	return events.Actor{ID: session.SubjectID, Role: session.Role}
}
