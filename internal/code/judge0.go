package code

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Judge0Config holds the connection settings for a Judge0 CE instance.
// URL is the base URL (e.g. "https://judge0-ce.p.rapidapi.com").
// APIKey and APIHost are sent as the RapidAPI headers. AuthToken is optional;
// send it as X-Auth-Token when a self-hosted instance sets AUTHN_TOKEN.
type Judge0Config struct {
	URL       string `json:"url" yaml:"url"`
	APIKey    string `json:"api_key" yaml:"api_key"`
	APIHost   string `json:"api_host" yaml:"api_host"`
	AuthToken string `json:"auth_token,omitempty" yaml:"auth_token"`
}

// Validate reports which required settings are absent.
func (c Judge0Config) Validate() error {
	var missing []string
	if c.URL == "" {
		missing = append(missing, "JUDGE0_URL")
	}
	if c.APIKey == "" {
		missing = append(missing, "X_RAPIDAPI_KEY")
	}
	if c.APIHost == "" {
		missing = append(missing, "X_RAPIDAPI_HOST")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrConfigurationMissing, strings.Join(missing, ", "))
	}
	return nil
}

// Judge0Client talks to the Judge0 submissions API.
type Judge0Client struct {
	url       string
	apiKey    string
	apiHost   string
	authToken string
	client    *http.Client
}

// NewJudge0Client constructs a Judge0Client, failing with
// ErrConfigurationMissing when cfg is incomplete.
func NewJudge0Client(cfg Judge0Config) (*Judge0Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Judge0Client{
		url:       strings.TrimRight(cfg.URL, "/"),
		apiKey:    cfg.APIKey,
		apiHost:   cfg.APIHost,
		authToken: cfg.AuthToken,
		client:    &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Submit posts the request with wait=false and returns the engine token.
// It is never retried here: a repeated submission could run the program twice.
func (c *Judge0Client) Submit(ctx context.Context, sub ExecutionRequest) (JobHandle, error) {
	bodyJSON, err := json.Marshal(sub)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	q := url.Values{}
	q.Set("base64_encoded", "true")
	q.Set("wait", "false")
	q.Set("fields", "*")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.url+"/submissions?"+q.Encode(), bytes.NewReader(bodyJSON))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setAuth(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &SubmissionError{Err: err}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode != http.StatusCreated {
		return "", &SubmissionError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	var created struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(raw, &created); err != nil {
		return "", &SubmissionError{StatusCode: resp.StatusCode, Body: string(raw), Err: err}
	}
	if created.Token == "" {
		return "", &SubmissionError{StatusCode: resp.StatusCode, Body: string(raw), Err: fmt.Errorf("response has no token")}
	}
	return JobHandle(created.Token), nil
}

// Status fetches the submission keyed by handle with base64-encoded fields.
func (c *Judge0Client) Status(ctx context.Context, handle JobHandle) (*JobStatus, error) {
	q := url.Values{}
	q.Set("base64_encoded", "true")
	q.Set("fields", "*")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.url+"/submissions/"+url.PathEscape(string(handle))+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	c.setAuth(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query judge0: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("judge0 returned HTTP %d", resp.StatusCode)
	}

	var raw struct {
		Stdout        *string `json:"stdout"`
		Stderr        *string `json:"stderr"`
		CompileOutput *string `json:"compile_output"`
		Message       *string `json:"message"`
		Time          *string `json:"time"`
		Memory        *int    `json:"memory"`
		Status        struct {
			ID          int    `json:"id"`
			Description string `json:"description"`
		} `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode judge0 response: %w", err)
	}

	st := &JobStatus{
		StatusID:          raw.Status.ID,
		StatusDescription: raw.Status.Description,
	}
	if raw.Stdout != nil {
		st.Stdout = *raw.Stdout
	}
	if raw.Stderr != nil {
		st.Stderr = *raw.Stderr
	}
	if raw.CompileOutput != nil {
		st.CompileOutput = *raw.CompileOutput
	}
	if raw.Message != nil {
		st.Message = *raw.Message
	}
	if raw.Time != nil {
		st.Time = *raw.Time
	}
	if raw.Memory != nil {
		st.Memory = *raw.Memory
	}
	return st, nil
}

func (c *Judge0Client) setAuth(req *http.Request) {
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.apiHost)
	if c.authToken != "" {
		req.Header.Set("X-Auth-Token", c.authToken)
	}
}
