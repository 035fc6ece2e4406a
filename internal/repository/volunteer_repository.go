package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/jobboard/internal/domain"
)

// VolunteerRepository defines persistence access for volunteers.
// Lookups return pgx.ErrNoRows when no row matches.
type VolunteerRepository interface {
	Create(ctx context.Context, volunteer *domain.Volunteer) error
	GetByID(ctx context.Context, id string) (*domain.Volunteer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Volunteer, error)
}

type volunteerRepository struct {
	pool *pgxpool.Pool
}

// NewVolunteerRepository returns a Postgres-backed implementation.
func NewVolunteerRepository(pool *pgxpool.Pool) VolunteerRepository {
	return &volunteerRepository{pool: pool}
}

const volunteerColumns = `id, name, email, password_hash, phone_number, birth_date, created_at, updated_at`

func (r *volunteerRepository) Create(ctx context.Context, volunteer *domain.Volunteer) error {
	const query = `
        INSERT INTO users (name, email, password_hash, phone_number, birth_date)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		volunteer.Name,
		volunteer.Email,
		volunteer.PasswordHash,
		volunteer.PhoneNumber,
		volunteer.BirthDate,
	).Scan(&volunteer.ID, &volunteer.CreatedAt, &volunteer.UpdatedAt)
}

func (r *volunteerRepository) GetByID(ctx context.Context, id string) (*domain.Volunteer, error) {
	return r.getOne(ctx, `SELECT `+volunteerColumns+` FROM users WHERE id=$1`, id)
}

func (r *volunteerRepository) GetByEmail(ctx context.Context, email string) (*domain.Volunteer, error) {
	return r.getOne(ctx, `SELECT `+volunteerColumns+` FROM users WHERE email=$1`, email)
}

func (r *volunteerRepository) getOne(ctx context.Context, query string, arg any) (*domain.Volunteer, error) {
	var volunteer domain.Volunteer
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&volunteer.ID,
		&volunteer.Name,
		&volunteer.Email,
		&volunteer.PasswordHash,
		&volunteer.PhoneNumber,
		&volunteer.BirthDate,
		&volunteer.CreatedAt,
		&volunteer.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &volunteer, nil
}
