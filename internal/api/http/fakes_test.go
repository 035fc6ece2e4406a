package http

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/jobboard/internal/domain"
	"github.com/spec-kit/jobboard/internal/repository"
)

// store is a single in-memory backing for every repository used in the
// router tests.
type store struct {
	mu           sync.Mutex
	seq          int
	volunteers   map[string]domain.Volunteer
	companies    map[string]domain.Company
	jobs         map[string]domain.Job
	applications []domain.JobApplication
}

func newStore() *store {
	return &store{
		volunteers: map[string]domain.Volunteer{},
		companies:  map[string]domain.Company{},
		jobs:       map[string]domain.Job{},
	}
}

func (s *store) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

type volunteerRepo struct{ *store }

func (r volunteerRepo) Create(_ context.Context, v *domain.Volunteer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v.ID = r.nextID("vol")
	v.CreatedAt, v.UpdatedAt = time.Now(), time.Now()
	r.volunteers[v.ID] = *v
	return nil
}

func (r volunteerRepo) GetByID(_ context.Context, id string) (*domain.Volunteer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.volunteers[id]; ok {
		return &v, nil
	}
	return nil, pgx.ErrNoRows
}

func (r volunteerRepo) GetByEmail(_ context.Context, email string) (*domain.Volunteer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.volunteers {
		if v.Email == email {
			return &v, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type companyRepo struct{ *store }

func (r companyRepo) Create(_ context.Context, c *domain.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = r.nextID("co")
	c.CreatedAt, c.UpdatedAt = time.Now(), time.Now()
	r.companies[c.ID] = *c
	return nil
}

func (r companyRepo) GetByID(_ context.Context, id string) (*domain.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.companies[id]; ok {
		return &c, nil
	}
	return nil, pgx.ErrNoRows
}

func (r companyRepo) GetByEmail(_ context.Context, email string) (*domain.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.companies {
		if c.Email == email {
			return &c, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type jobRepo struct{ *store }

func (r jobRepo) Create(_ context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job.ID = r.nextID("job")
	job.CreatedAt, job.UpdatedAt = time.Now(), time.Now()
	r.jobs[job.ID] = *job
	return nil
}

func (r jobRepo) Update(_ context.Context, id string, patch repository.JobPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if patch.Title != nil {
		job.Title = *patch.Title
	}
	if patch.Position != nil {
		job.Position = *patch.Position
	}
	if patch.StartLine != nil {
		job.StartLine = *patch.StartLine
	}
	if patch.DeadLine != nil {
		job.DeadLine = *patch.DeadLine
	}
	if patch.JobDescription != nil {
		job.JobDescription = *patch.JobDescription
	}
	r.jobs[id] = job
	return nil
}

func (r jobRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.jobs, id)
	return nil
}

func (r jobRepo) GetByID(_ context.Context, id string) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	job.CompanyName = r.companies[job.CompanyID].Name
	return &job, nil
}

func (r jobRepo) List(_ context.Context) ([]domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Job, 0, len(r.jobs))
	for _, job := range r.jobs {
		job.CompanyName = r.companies[job.CompanyID].Name
		out = append(out, job)
	}
	return out, nil
}

type applicationRepo struct{ *store }

func (r applicationRepo) Create(_ context.Context, a *domain.JobApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = r.nextID("app")
	a.CreatedAt = time.Now()
	r.applications = append(r.applications, *a)
	return nil
}

func (r applicationRepo) Exists(_ context.Context, jobID, applicantID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.applications {
		if a.JobID == jobID && a.ApplicantID == applicantID {
			return true, nil
		}
	}
	return false, nil
}

func (r applicationRepo) CountByJob(_ context.Context, jobID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, a := range r.applications {
		if a.JobID == jobID {
			n++
		}
	}
	return n, nil
}

func (r applicationRepo) ListByApplicant(_ context.Context, applicantID string) ([]domain.JobApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.JobApplication
	for _, a := range r.applications {
		if a.ApplicantID == applicantID {
			out = append(out, a)
		}
	}
	return out, nil
}
