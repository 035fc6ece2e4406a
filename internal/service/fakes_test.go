package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/jobboard/internal/domain"
	"github.com/spec-kit/jobboard/internal/events"
	"github.com/spec-kit/jobboard/internal/repository"
)

var fixedNow = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

type memVolunteers struct {
	mu   sync.Mutex
	seq  int
	rows map[string]*domain.Volunteer
}

func newMemVolunteers() *memVolunteers {
	return &memVolunteers{rows: map[string]*domain.Volunteer{}}
}

func (m *memVolunteers) Create(_ context.Context, v *domain.Volunteer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.Email == v.Email {
			return &pgconn.PgError{Code: pgUniqueViolation}
		}
	}
	m.seq++
	v.ID = fmt.Sprintf("vol-%d", m.seq)
	v.CreatedAt, v.UpdatedAt = fixedNow, fixedNow
	cp := *v
	m.rows[v.ID] = &cp
	return nil
}

func (m *memVolunteers) GetByID(_ context.Context, id string) (*domain.Volunteer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if row, ok := m.rows[id]; ok {
		cp := *row
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memVolunteers) GetByEmail(_ context.Context, email string) (*domain.Volunteer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.Email == email {
			cp := *row
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type memCompanies struct {
	mu   sync.Mutex
	seq  int
	rows map[string]*domain.Company
}

func newMemCompanies() *memCompanies {
	return &memCompanies{rows: map[string]*domain.Company{}}
}

func (m *memCompanies) Create(_ context.Context, c *domain.Company) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.Email == c.Email {
			return &pgconn.PgError{Code: pgUniqueViolation}
		}
	}
	m.seq++
	c.ID = fmt.Sprintf("co-%d", m.seq)
	c.CreatedAt, c.UpdatedAt = fixedNow, fixedNow
	cp := *c
	m.rows[c.ID] = &cp
	return nil
}

func (m *memCompanies) GetByID(_ context.Context, id string) (*domain.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if row, ok := m.rows[id]; ok {
		cp := *row
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memCompanies) GetByEmail(_ context.Context, email string) (*domain.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.Email == email {
			cp := *row
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type memJobs struct {
	mu        sync.Mutex
	seq       int
	rows      map[string]*domain.Job
	companies *memCompanies
	listCalls int
}

func newMemJobs(companies *memCompanies) *memJobs {
	return &memJobs{rows: map[string]*domain.Job{}, companies: companies}
}

func (m *memJobs) Create(_ context.Context, job *domain.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	job.ID = fmt.Sprintf("job-%d", m.seq)
	job.CreatedAt, job.UpdatedAt = fixedNow, fixedNow
	cp := *job
	m.rows[job.ID] = &cp
	return nil
}

func (m *memJobs) Update(_ context.Context, id string, patch repository.JobPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if patch.Title != nil {
		row.Title = *patch.Title
	}
	if patch.Position != nil {
		row.Position = *patch.Position
	}
	if patch.StartLine != nil {
		row.StartLine = *patch.StartLine
	}
	if patch.DeadLine != nil {
		row.DeadLine = *patch.DeadLine
	}
	if patch.JobDescription != nil {
		row.JobDescription = *patch.JobDescription
	}
	return nil
}

func (m *memJobs) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.rows, id)
	return nil
}

func (m *memJobs) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	m.mu.Lock()
	row, ok := m.rows[id]
	m.mu.Unlock()
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *row
	m.fillCompany(ctx, &cp)
	return &cp, nil
}

func (m *memJobs) List(ctx context.Context) ([]domain.Job, error) {
	m.mu.Lock()
	m.listCalls++
	out := make([]domain.Job, 0, len(m.rows))
	for _, row := range m.rows {
		out = append(out, *row)
	}
	m.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	for i := range out {
		m.fillCompany(ctx, &out[i])
	}
	return out, nil
}

func (m *memJobs) fillCompany(ctx context.Context, job *domain.Job) {
	if m.companies == nil {
		return
	}
	if company, err := m.companies.GetByID(ctx, job.CompanyID); err == nil {
		job.CompanyName = company.Name
	}
}

type memApplications struct {
	mu   sync.Mutex
	seq  int
	rows []domain.JobApplication
}

func (m *memApplications) Create(_ context.Context, a *domain.JobApplication) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.JobID == a.JobID && row.ApplicantID == a.ApplicantID {
			return &pgconn.PgError{Code: pgUniqueViolation}
		}
	}
	m.seq++
	a.ID = fmt.Sprintf("app-%d", m.seq)
	a.CreatedAt = fixedNow
	m.rows = append(m.rows, *a)
	return nil
}

func (m *memApplications) Exists(_ context.Context, jobID, applicantID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.JobID == jobID && row.ApplicantID == applicantID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memApplications) CountByJob(_ context.Context, jobID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, row := range m.rows {
		if row.JobID == jobID {
			n++
		}
	}
	return n, nil
}

func (m *memApplications) ListByApplicant(_ context.Context, applicantID string) ([]domain.JobApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.JobApplication
	for _, row := range m.rows {
		if row.ApplicantID == applicantID {
			out = append(out, row)
		}
	}
	return out, nil
}

type memJobCache struct {
	jobs        []domain.Job
	ok          bool
	getErr      error
	invalidated int
}

func (c *memJobCache) Get(context.Context) ([]domain.Job, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	return c.jobs, c.ok, nil
}

func (c *memJobCache) Set(_ context.Context, jobs []domain.Job) error {
	c.jobs, c.ok = jobs, true
	return nil
}

func (c *memJobCache) Invalidate(context.Context) error {
	c.jobs, c.ok = nil, false
	c.invalidated++
	return nil
}

type recordingDispatcher struct {
	mu        sync.Mutex
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.EventType, 0, len(d.published))
	for _, e := range d.published {
		out = append(out, e.Type)
	}
	return out
}
