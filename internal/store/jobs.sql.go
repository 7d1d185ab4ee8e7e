package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const jobColumns = `id, job_type, payload, status, attempt, max_attempts, error, run_at, completed_at, created_at`

func scanJob(row interface{ Scan(...interface{}) error }) (Job, error) {
	var i Job
	err := row.Scan(
		&i.ID,
		&i.JobType,
		&i.Payload,
		&i.Status,
		&i.Attempt,
		&i.MaxAttempts,
		&i.Error,
		&i.RunAt,
		&i.CompletedAt,
		&i.CreatedAt,
	)
	return i, err
}

const claimNextJob = `-- name: ClaimNextJob :one
UPDATE jobs
SET status = 'running', attempt = attempt + 1
WHERE id = (
    SELECT id FROM jobs
    WHERE status = 'pending' AND run_at <= now()
    ORDER BY run_at
    LIMIT 1
    FOR UPDATE SKIP LOCKED
)
RETURNING ` + jobColumns

func (q *Queries) ClaimNextJob(ctx context.Context) (Job, error) {
	row := q.db.QueryRow(ctx, claimNextJob)
	return scanJob(row)
}

const createJob = `-- name: CreateJob :one
INSERT INTO jobs (job_type, payload, max_attempts)
VALUES ($1, $2, $3)
RETURNING ` + jobColumns

type CreateJobParams struct {
	JobType     string `json:"job_type"`
	Payload     []byte `json:"payload"`
	MaxAttempts int32  `json:"max_attempts"`
}

func (q *Queries) CreateJob(ctx context.Context, arg CreateJobParams) (Job, error) {
	row := q.db.QueryRow(ctx, createJob, arg.JobType, arg.Payload, arg.MaxAttempts)
	return scanJob(row)
}

const getJob = `-- name: GetJob :one
SELECT ` + jobColumns + `
FROM jobs
WHERE id = $1`

func (q *Queries) GetJob(ctx context.Context, id uuid.UUID) (Job, error) {
	row := q.db.QueryRow(ctx, getJob, id)
	return scanJob(row)
}

const updateJobStatus = `-- name: UpdateJobStatus :one
UPDATE jobs
SET status = $2, error = $3, completed_at = $4, run_at = $5
WHERE id = $1
RETURNING ` + jobColumns

type UpdateJobStatusParams struct {
	ID          uuid.UUID   `json:"id"`
	Status      string      `json:"status"`
	Error       pgtype.Text `json:"error"`
	CompletedAt *time.Time  `json:"completed_at"`
	RunAt       time.Time   `json:"run_at"`
}

func (q *Queries) UpdateJobStatus(ctx context.Context, arg UpdateJobStatusParams) (Job, error) {
	row := q.db.QueryRow(ctx, updateJobStatus,
		arg.ID,
		arg.Status,
		arg.Error,
		arg.CompletedAt,
		arg.RunAt,
	)
	return scanJob(row)
}
