// Package codepad provides a Go client for the codepad API.
//
// codepad runs programs on a remote Judge0 engine, shares snippets and keeps
// per-user editor drafts.
//
// Usage:
//
//	client := codepad.New("https://codepad.example.com", codepad.WithToken(sessionToken))
//
//	// Run a program and wait for the outcome
//	res, err := client.Execute(ctx, codepad.ExecuteRequest{
//	    Language: "python",
//	    Code:     "print('hello')",
//	})
//
//	// Or queue it and fetch the result later
//	job, err := client.ExecuteAsync(ctx, req)
//	exec, err := client.Executions.Get(ctx, job.JobID)
package codepad

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Client is the codepad API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client

	// Service accessors
	Jobs       *JobsService
	Executions *ExecutionsService
	Drafts     *DraftsService
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithToken sets the session token sent as a Bearer credential. Sharing and
// drafts require one; execution does not.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// New creates a codepad client.
// baseURL should be the root URL (e.g. "https://codepad.example.com").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, o := range opts {
		o(c)
	}
	c.Jobs = &JobsService{c: c}
	c.Executions = &ExecutionsService{c: c}
	c.Drafts = &DraftsService{c: c}
	return c
}

// Health checks that the codepad server is reachable and healthy.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	return doRequest[HealthResponse](ctx, c, http.MethodGet, "/health", nil, http.StatusOK)
}

// Languages lists the languages the server can run.
func (c *Client) Languages(ctx context.Context) ([]Language, error) {
	out, err := doRequest[LanguagesResponse](ctx, c, http.MethodGet, "/languages", nil, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return out.Languages, nil
}

// --- internal helpers ---

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("codepad: marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func doRequest[T any](ctx context.Context, c *Client, method, path string, body any, expectedStatus int) (*T, error) {
	return doRequestWithQuery[T](ctx, c, method, path, nil, body, expectedStatus)
}

func doRequestWithQuery[T any](ctx context.Context, c *Client, method, path string, query map[string]string, body any, expectedStatuses ...int) (*T, error) {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	if len(query) > 0 {
		q := req.URL.Query()
		for k, v := range query {
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	for _, s := range expectedStatuses {
		if resp.StatusCode == s {
			var out T
			if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
				return nil, fmt.Errorf("codepad: decode response: %w", err)
			}
			return &out, nil
		}
	}
	return nil, parseError(resp)
}

func parseError(resp *http.Response) *APIError {
	e := &APIError{StatusCode: resp.StatusCode}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		e.Message = body.Error
	} else {
		e.Message = http.StatusText(resp.StatusCode)
	}
	return e
}
