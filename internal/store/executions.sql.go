package store

import (
	"context"

	"github.com/google/uuid"
)

const getCodeExecution = `-- name: GetCodeExecution :one
SELECT id, job_id, language, outcome, output, token, attempts, status_id, status, created_at
FROM code_executions
WHERE job_id = $1`

func (q *Queries) GetCodeExecution(ctx context.Context, jobID uuid.UUID) (CodeExecution, error) {
	row := q.db.QueryRow(ctx, getCodeExecution, jobID)
	var i CodeExecution
	err := row.Scan(
		&i.ID,
		&i.JobID,
		&i.Language,
		&i.Outcome,
		&i.Output,
		&i.Token,
		&i.Attempts,
		&i.StatusID,
		&i.Status,
		&i.CreatedAt,
	)
	return i, err
}

const insertCodeExecution = `-- name: InsertCodeExecution :one
INSERT INTO code_executions (job_id, language, outcome, output, token, attempts, status_id, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, job_id, language, outcome, output, token, attempts, status_id, status, created_at`

type InsertCodeExecutionParams struct {
	JobID    uuid.UUID `json:"job_id"`
	Language string    `json:"language"`
	Outcome  string    `json:"outcome"`
	Output   string    `json:"output"`
	Token    string    `json:"token"`
	Attempts int32     `json:"attempts"`
	StatusID int32     `json:"status_id"`
	Status   string    `json:"status"`
}

func (q *Queries) InsertCodeExecution(ctx context.Context, arg InsertCodeExecutionParams) (CodeExecution, error) {
	row := q.db.QueryRow(ctx, insertCodeExecution,
		arg.JobID,
		arg.Language,
		arg.Outcome,
		arg.Output,
		arg.Token,
		arg.Attempts,
		arg.StatusID,
		arg.Status,
	)
	var i CodeExecution
	err := row.Scan(
		&i.ID,
		&i.JobID,
		&i.Language,
		&i.Outcome,
		&i.Output,
		&i.Token,
		&i.Attempts,
		&i.StatusID,
		&i.Status,
		&i.CreatedAt,
	)
	return i, err
}
