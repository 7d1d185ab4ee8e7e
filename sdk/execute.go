package codepad

import (
	"context"
	"fmt"
	"net/http"
)

// Execute runs a program and waits for its outcome. The server polls the
// engine for at most its configured budget, so the call can take ~20s.
func (c *Client) Execute(ctx context.Context, req ExecuteRequest) (*ExecuteResult, error) {
	return doRequest[ExecuteResult](ctx, c, http.MethodPost, "/execute", req, http.StatusOK)
}

// ExecuteAsync queues a program and returns the job to poll with Jobs.Get.
func (c *Client) ExecuteAsync(ctx context.Context, req ExecuteRequest) (*QueuedJob, error) {
	query := map[string]string{"async": "true"}
	return doRequestWithQuery[QueuedJob](ctx, c, http.MethodPost, "/execute", query, req, http.StatusAccepted)
}

// Share publishes a snippet under the caller's name. Requires a token.
func (c *Client) Share(ctx context.Context, language, code string) (*Gist, error) {
	body := ShareRequest{Language: language, Code: code}
	return doRequest[Gist](ctx, c, http.MethodPost, "/share", body, http.StatusCreated)
}

// GetShared fetches a shared snippet by id.
func (c *Client) GetShared(ctx context.Context, id string) (*Gist, error) {
	path := fmt.Sprintf("/share/%s", id)
	return doRequest[Gist](ctx, c, http.MethodGet, path, nil, http.StatusOK)
}
