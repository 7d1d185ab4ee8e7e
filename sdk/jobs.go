package codepad

import (
	"context"
	"fmt"
	"net/http"
)

// JobsService provides job status lookup operations.
type JobsService struct {
	c *Client
}

// Get retrieves the current status and metadata for a background job.
// jobID is the UUID returned by ExecuteAsync.
func (s *JobsService) Get(ctx context.Context, jobID string) (*Job, error) {
	path := fmt.Sprintf("/jobs/%s", jobID)
	return doRequest[Job](ctx, s.c, http.MethodGet, path, nil, http.StatusOK)
}

// ExecutionsService reads the stored results of queued executions.
type ExecutionsService struct {
	c *Client
}

// Get returns the Outcome stored for a completed job. It returns a 404
// APIError until the job has finished.
func (s *ExecutionsService) Get(ctx context.Context, jobID string) (*Execution, error) {
	path := fmt.Sprintf("/executions/%s", jobID)
	return doRequest[Execution](ctx, s.c, http.MethodGet, path, nil, http.StatusOK)
}
