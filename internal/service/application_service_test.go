package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/jobboard/internal/domain"
	"github.com/spec-kit/jobboard/internal/events"
	apperrors "github.com/spec-kit/jobboard/pkg/util"
)

type applicationFixture struct {
	svc          *ApplicationService
	jobs         *memJobs
	volunteers   *memVolunteers
	applications *memApplications
	dispatcher   *recordingDispatcher
	job          *domain.Job
}

func newApplicationFixture(t *testing.T) *applicationFixture {
	t.Helper()
	f := &applicationFixture{
		jobs:         newMemJobs(nil),
		volunteers:   newMemVolunteers(),
		applications: &memApplications{},
		dispatcher:   &recordingDispatcher{},
	}
	f.svc = NewApplicationService(ApplicationDependencies{
		ApplicationRepo: f.applications,
		JobRepo:         f.jobs,
		VolunteerRepo:   f.volunteers,
		Dispatcher:      f.dispatcher,
		Clock:           func() time.Time { return fixedNow },
	})

	f.job = &domain.Job{CompanyID: "co-1", Title: "Beach cleanup", Status: domain.JobStatusOpen}
	require.NoError(t, f.jobs.Create(context.Background(), f.job))
	return f
}

func (f *applicationFixture) volunteer(t *testing.T, email string) *domain.Session {
	t.Helper()
	v := &domain.Volunteer{
		Name:      "A",
		Email:     email,
		BirthDate: time.Date(1990, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, f.volunteers.Create(context.Background(), v))
	return volunteerSession(v.ID)
}

func sampleApplication() ApplicationInput {
	return ApplicationInput{
		Email:       "a@x.com",
		Name:        "A",
		PhoneNumber: "010-0000-0000",
		Position:    "Coordinator",
		Intro:       "I like beaches.",
	}
}

func TestSubmit_VolunteerCopiesBirthDate(t *testing.T) {
	f := newApplicationFixture(t)
	session := f.volunteer(t, "a@x.com")

	application, err := f.svc.Submit(context.Background(), session, f.job.ID, sampleApplication())
	require.NoError(t, err)
	assert.NotEmpty(t, application.ID)
	assert.Equal(t, domain.ApplicationStatusSubmitted, application.Status)
	assert.Equal(t, domain.RoleVolunteer, application.ApplicantRole)
	require.NotNil(t, application.BirthDate)
	assert.Equal(t, "1990-01-02", application.BirthDate.Format(domain.DateLayout))
	assert.Equal(t, []events.EventType{events.EventApplicationSubmitted}, f.dispatcher.types())
}

func TestSubmit_DuplicateIsConflict(t *testing.T) {
	f := newApplicationFixture(t)
	session := f.volunteer(t, "a@x.com")
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, session, f.job.ID, sampleApplication())
	require.NoError(t, err)

	_, err = f.svc.Submit(ctx, session, f.job.ID, sampleApplication())
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, apperrors.CodeConflict, domainErr.Code)
	assert.Equal(t, 400, domainErr.HTTPStatus)
	assert.Len(t, f.applications.rows, 1)

	other := f.volunteer(t, "b@x.com")
	_, err = f.svc.Submit(ctx, other, f.job.ID, sampleApplication())
	assert.NoError(t, err)
}

func TestSubmit_CompanyMayApply(t *testing.T) {
	f := newApplicationFixture(t)

	application, err := f.svc.Submit(context.Background(), companySession("co-2", "Globex"), f.job.ID, sampleApplication())
	require.NoError(t, err)
	assert.Nil(t, application.BirthDate)
	assert.Equal(t, domain.RoleCompany, application.ApplicantRole)
}

func TestSubmit_Failures(t *testing.T) {
	f := newApplicationFixture(t)
	ctx := context.Background()
	session := f.volunteer(t, "a@x.com")

	_, err := f.svc.Submit(ctx, nil, f.job.ID, sampleApplication())
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))

	_, err = f.svc.Submit(ctx, &domain.Session{Identity: domain.Identity{SubjectID: "x", Role: "admin"}}, f.job.ID, sampleApplication())
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))

	in := sampleApplication()
	in.Intro = ""
	_, err = f.svc.Submit(ctx, session, f.job.ID, in)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))

	_, err = f.svc.Submit(ctx, session, "job-404", sampleApplication())
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))

	_, err = f.svc.Submit(ctx, volunteerSession("vol-gone"), f.job.ID, sampleApplication())
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, apperrors.CodeNotFound, domainErr.Code)
	assert.Equal(t, "user not found", domainErr.Message)

	assert.Empty(t, f.applications.rows)
	assert.Empty(t, f.dispatcher.types())
}

func TestListMine(t *testing.T) {
	f := newApplicationFixture(t)
	ctx := context.Background()
	mine := f.volunteer(t, "a@x.com")
	theirs := f.volunteer(t, "b@x.com")

	second := &domain.Job{CompanyID: "co-1", Title: "Park cleanup"}
	require.NoError(t, f.jobs.Create(ctx, second))

	for _, jobID := range []string{f.job.ID, second.ID} {
		_, err := f.svc.Submit(ctx, mine, jobID, sampleApplication())
		require.NoError(t, err)
	}
	_, err := f.svc.Submit(ctx, theirs, f.job.ID, sampleApplication())
	require.NoError(t, err)

	applications, err := f.svc.ListMine(ctx, mine)
	require.NoError(t, err)
	assert.Len(t, applications, 2)
	for _, a := range applications {
		assert.Equal(t, mine.SubjectID, a.ApplicantID)
	}

	_, err = f.svc.ListMine(ctx, nil)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))
}
