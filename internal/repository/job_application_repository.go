package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/jobboard/internal/domain"
)

// JobApplicationRepository manages application persistence.
type JobApplicationRepository interface {
	Create(ctx context.Context, application *domain.JobApplication) error
	Exists(ctx context.Context, jobID, applicantID string) (bool, error)
	CountByJob(ctx context.Context, jobID string) (int, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]domain.JobApplication, error)
}

type jobApplicationRepository struct {
	pool *pgxpool.Pool
}

// NewJobApplicationRepository constructs repository.
func NewJobApplicationRepository(pool *pgxpool.Pool) JobApplicationRepository {
	return &jobApplicationRepository{pool: pool}
}

func (r *jobApplicationRepository) Create(ctx context.Context, application *domain.JobApplication) error {
	const query = `
        INSERT INTO job_applications (job_id, applicant_id, applicant_role, email, name, phone_number, birth_date, position, intro, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		application.JobID,
		application.ApplicantID,
		application.ApplicantRole,
		application.Email,
		application.Name,
		application.PhoneNumber,
		application.BirthDate,
		application.Position,
		application.Intro,
		application.Status,
	).Scan(&application.ID, &application.CreatedAt)
}

func (r *jobApplicationRepository) Exists(ctx context.Context, jobID, applicantID string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM job_applications WHERE job_id=$1 AND applicant_id=$2)`
	var exists bool
	err := r.pool.QueryRow(ctx, query, jobID, applicantID).Scan(&exists)
	return exists, err
}

func (r *jobApplicationRepository) CountByJob(ctx context.Context, jobID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM job_applications WHERE job_id=$1`, jobID).Scan(&count)
	return count, err
}

func (r *jobApplicationRepository) ListByApplicant(ctx context.Context, applicantID string) ([]domain.JobApplication, error) {
	const query = `
        SELECT id, job_id, applicant_id, applicant_role, email, name, phone_number, birth_date, position, intro, status, created_at
        FROM job_applications WHERE applicant_id=$1
        ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, applicantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.JobApplication
	for rows.Next() {
		var app domain.JobApplication
		if err := rows.Scan(
			&app.ID,
			&app.JobID,
			&app.ApplicantID,
			&app.ApplicantRole,
			&app.Email,
			&app.Name,
			&app.PhoneNumber,
			&app.BirthDate,
			&app.Position,
			&app.Intro,
			&app.Status,
			&app.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, app)
	}
	return result, rows.Err()
}
