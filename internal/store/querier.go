package store

import (
	"context"

	"github.com/google/uuid"
)

type Querier interface {
	ClaimNextJob(ctx context.Context) (Job, error)
	CreateGist(ctx context.Context, arg CreateGistParams) (Gist, error)
	CreateJob(ctx context.Context, arg CreateJobParams) (Job, error)
	GetCodeExecution(ctx context.Context, jobID uuid.UUID) (CodeExecution, error)
	GetGist(ctx context.Context, id uuid.UUID) (Gist, error)
	GetJob(ctx context.Context, id uuid.UUID) (Job, error)
	InsertCodeExecution(ctx context.Context, arg InsertCodeExecutionParams) (CodeExecution, error)
	UpdateJobStatus(ctx context.Context, arg UpdateJobStatusParams) (Job, error)
}

var _ Querier = (*Queries)(nil)
