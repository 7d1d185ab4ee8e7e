package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type CodeExecution struct {
	ID        uuid.UUID `json:"id"`
	JobID     uuid.UUID `json:"job_id"`
	Language  string    `json:"language"`
	Outcome   string    `json:"outcome"`
	Output    string    `json:"output"`
	Token     string    `json:"token"`
	Attempts  int32     `json:"attempts"`
	StatusID  int32     `json:"status_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type Gist struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Language  string    `json:"language"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}

type Job struct {
	ID          uuid.UUID   `json:"id"`
	JobType     string      `json:"job_type"`
	Payload     []byte      `json:"payload"`
	Status      string      `json:"status"`
	Attempt     int32       `json:"attempt"`
	MaxAttempts int32       `json:"max_attempts"`
	Error       pgtype.Text `json:"error"`
	RunAt       time.Time   `json:"run_at"`
	CompletedAt *time.Time  `json:"completed_at"`
	CreatedAt   time.Time   `json:"created_at"`
}
