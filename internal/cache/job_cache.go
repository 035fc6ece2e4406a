package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/jobboard/internal/domain"
)

const jobListKey = "jobboard:jobs:list"

// JobListCache stores the public job listing between writes.
type JobListCache interface {
	Get(ctx context.Context) ([]domain.Job, bool, error)
	Set(ctx context.Context, jobs []domain.Job) error
	Invalidate(ctx context.Context) error
}

type redisJobListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewJobListCache returns a Redis-backed cache, or a no-op cache when the
// client is nil or ttl is not positive.
func NewJobListCache(client *redis.Client, ttl time.Duration) JobListCache {
	if client == nil || ttl <= 0 {
		return noopJobListCache{}
	}
	return &redisJobListCache{client: client, ttl: ttl}
}

type cachedJob struct {
	ID             string           `json:"id"`
	CompanyID      string           `json:"company_id"`
	CompanyName    string           `json:"company_name"`
	Title          string           `json:"title"`
	Position       string           `json:"position"`
	StartLine      time.Time        `json:"start_line"`
	DeadLine       time.Time        `json:"dead_line"`
	JobDescription string           `json:"job_description"`
	Status         domain.JobStatus `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

func (c *redisJobListCache) Get(ctx context.Context) ([]domain.Job, bool, error) {
	raw, err := c.client.Get(ctx, jobListKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	jobs, err := decodeJobs(raw)
	if err != nil {
		return nil, false, err
	}
	return jobs, true, nil
}

func (c *redisJobListCache) Set(ctx context.Context, jobs []domain.Job) error {
	raw, err := encodeJobs(jobs)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, jobListKey, raw, c.ttl).Err()
}

func (c *redisJobListCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, jobListKey).Err()
}

func encodeJobs(jobs []domain.Job) ([]byte, error) {
	items := make([]cachedJob, 0, len(jobs))
	for _, job := range jobs {
		items = append(items, cachedJob{
			ID:             job.ID,
			CompanyID:      job.CompanyID,
			CompanyName:    job.CompanyName,
			Title:          job.Title,
			Position:       job.Position,
			StartLine:      job.StartLine,
			DeadLine:       job.DeadLine,
			JobDescription: job.JobDescription,
			Status:         job.Status,
			CreatedAt:      job.CreatedAt,
			UpdatedAt:      job.UpdatedAt,
		})
	}
	return json.Marshal(items)
}

func decodeJobs(raw []byte) ([]domain.Job, error) {
	var items []cachedJob
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	jobs := make([]domain.Job, 0, len(items))
	for _, item := range items {
		jobs = append(jobs, domain.Job{
			ID:             item.ID,
			CompanyID:      item.CompanyID,
			CompanyName:    item.CompanyName,
			Title:          item.Title,
			Position:       item.Position,
			StartLine:      item.StartLine,
			DeadLine:       item.DeadLine,
			JobDescription: item.JobDescription,
			Status:         item.Status,
			CreatedAt:      item.CreatedAt,
			UpdatedAt:      item.UpdatedAt,
		})
	}
	return jobs, nil
}

type noopJobListCache struct{}

func (noopJobListCache) Get(context.Context) ([]domain.Job, bool, error) { return nil, false, nil }
func (noopJobListCache) Set(context.Context, []domain.Job) error         { return nil }
func (noopJobListCache) Invalidate(context.Context) error                { return nil }
