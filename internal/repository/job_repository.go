package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/jobboard/internal/domain"
)

// JobPatch lists the fields of a job to overwrite; nil fields are kept.
type JobPatch struct {
	Title          *string
	Position       *string
	StartLine      *time.Time
	DeadLine       *time.Time
	JobDescription *string
}

// Empty reports whether the patch changes nothing.
func (p JobPatch) Empty() bool {
	return p.Title == nil && p.Position == nil && p.StartLine == nil && p.DeadLine == nil && p.JobDescription == nil
}

// JobRepository encapsulates job persistence.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	Update(ctx context.Context, id string, patch JobPatch) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	List(ctx context.Context) ([]domain.Job, error)
}

type jobRepository struct {
	pool *pgxpool.Pool
}

// NewJobRepository instantiates repository.
func NewJobRepository(pool *pgxpool.Pool) JobRepository {
	return &jobRepository{pool: pool}
}

const jobSelect = `
        SELECT j.id, j.company_id, COALESCE(c.name, ''), j.title, j.position, j.start_line, j.dead_line,
            j.job_description, j.status, j.created_at, j.updated_at
        FROM jobs j LEFT JOIN companies c ON c.id = j.company_id`

func (r *jobRepository) Create(ctx context.Context, job *domain.Job) error {
	const query = `
        INSERT INTO jobs (company_id, title, position, start_line, dead_line, job_description, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		job.CompanyID,
		job.Title,
		job.Position,
		job.StartLine,
		job.DeadLine,
		job.JobDescription,
		job.Status,
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
}

func (r *jobRepository) Update(ctx context.Context, id string, patch JobPatch) error {
	args := []any{}
	sets := []string{}
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Position != nil {
		add("position", *patch.Position)
	}
	if patch.StartLine != nil {
		add("start_line", *patch.StartLine)
	}
	if patch.DeadLine != nil {
		add("dead_line", *patch.DeadLine)
	}
	if patch.JobDescription != nil {
		add("job_description", *patch.JobDescription)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE jobs SET %s, updated_at=NOW() WHERE id=$%d", strings.Join(sets, ", "), len(args))
	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *jobRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *jobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	job, err := scanJob(r.pool.QueryRow(ctx, jobSelect+` WHERE j.id=$1`, id))
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (r *jobRepository) List(ctx context.Context) ([]domain.Job, error) {
	rows, err := r.pool.Query(ctx, jobSelect+` ORDER BY j.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *job)
	}
	return result, rows.Err()
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var job domain.Job
	if err := row.Scan(
		&job.ID,
		&job.CompanyID,
		&job.CompanyName,
		&job.Title,
		&job.Position,
		&job.StartLine,
		&job.DeadLine,
		&job.JobDescription,
		&job.Status,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &job, nil
}
