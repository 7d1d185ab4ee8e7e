package codepad

import "time"

// HealthResponse is returned by the /health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

// StatusResponse is a generic {"status": "..."} response.
type StatusResponse struct {
	Status string `json:"status"`
}

// --- Languages ---

// Language is a language the server can run.
type Language struct {
	Name       string `json:"name"`
	LanguageID int    `json:"language_id"`
	Starter    string `json:"starter"`
}

// LanguagesResponse is returned by GET /languages.
type LanguagesResponse struct {
	Languages []Language `json:"languages"`
}

// --- Execution ---

// ExecuteRequest runs a program.
type ExecuteRequest struct {
	Language string `json:"language"`
	Code     string `json:"code"`
	Stdin    string `json:"stdin,omitempty"`
}

// Outcome values reported in ExecuteResult.Outcome and Execution.Outcome.
const (
	OutcomeSuccess          = "success"
	OutcomeRuntimeError     = "runtime_error"
	OutcomeCompileError     = "compile_error"
	OutcomeEngineMessage    = "engine_message"
	OutcomeNoOutput         = "no_output"
	OutcomeTimedOut         = "timed_out"
	OutcomeTransportFailure = "transport_failure"
	OutcomeCancelled        = "cancelled"
)

// ExecuteResult is returned by a synchronous POST /execute.
type ExecuteResult struct {
	Outcome  string `json:"outcome"`
	Output   string `json:"output"`
	Token    string `json:"token,omitempty"`
	Attempts int    `json:"attempts"`
	StatusID int    `json:"status_id,omitempty"`
	Status   string `json:"status,omitempty"`
}

// QueuedJob is returned by POST /execute?async=true.
type QueuedJob struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

// Execution is the stored result of a queued execution.
type Execution struct {
	ID        string    `json:"id"`
	JobID     string    `json:"job_id"`
	Language  string    `json:"language"`
	Outcome   string    `json:"outcome"`
	Output    string    `json:"output"`
	Token     string    `json:"token"`
	Attempts  int       `json:"attempts"`
	StatusID  int       `json:"status_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// --- Sharing ---

// ShareRequest publishes a snippet.
type ShareRequest struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

// Gist is a shared snippet.
type Gist struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Language  string    `json:"language"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}

// --- Drafts ---

// SaveDraftRequest stores editor contents.
type SaveDraftRequest struct {
	Code  string `json:"code"`
	Input string `json:"input"`
}

// Draft is the editor state for one language.
type Draft struct {
	Language  string     `json:"language"`
	Code      string     `json:"code"`
	Input     string     `json:"input"`
	Saved     bool       `json:"saved"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// --- Jobs ---

// Job represents an async background job.
type Job struct {
	ID          string     `json:"id"`
	JobType     string     `json:"job_type"`
	Status      string     `json:"status"`
	Attempt     int        `json:"attempt"`
	MaxAttempts int        `json:"max_attempts"`
	Error       *string    `json:"error,omitempty"`
	RunAt       time.Time  `json:"run_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// JobStatus constants for Job.Status.
const (
	JobStatusPending   = "pending"
	JobStatusRunning   = "running"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
)
