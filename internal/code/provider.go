package code

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrSubmissionFailed matches every *SubmissionError.
	ErrSubmissionFailed = errors.New("submission failed")
	// ErrConfigurationMissing is returned when the engine URL or credentials are absent.
	ErrConfigurationMissing = errors.New("execution engine configuration missing")
)

// StatusFinishedThreshold is the first Judge0 status id that denotes a
// finished run. Ids 1 (In Queue) and 2 (Processing) are still running.
const StatusFinishedThreshold = 3

// JobHandle is the opaque token the engine issues for a submitted run.
type JobHandle string

// ExecutionRequest is the wire form of a submission. SourceCode and Stdin
// are already base64 encoded.
type ExecutionRequest struct {
	LanguageID int    `json:"language_id"`
	SourceCode string `json:"source_code"`
	Stdin      string `json:"stdin"`
}

// JobStatus is one snapshot of a submission as reported by the engine.
// Stdout, Stderr and CompileOutput are still base64 encoded.
type JobStatus struct {
	StatusID          int
	StatusDescription string
	Stdout            string
	Stderr            string
	CompileOutput     string
	Message           string
	Time              string
	Memory            int
}

// Finished reports whether the engine has stopped working on the job.
func (s *JobStatus) Finished() bool {
	return s.StatusID >= StatusFinishedThreshold
}

// SubmissionError is returned when the engine rejects or never receives a submission.
// StatusCode is 0 when the request failed before a response arrived.
type SubmissionError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *SubmissionError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("submission failed: %v", e.Err)
	}
	return fmt.Sprintf("submission failed: engine returned HTTP %d: %s", e.StatusCode, e.Body)
}

func (e *SubmissionError) Is(target error) bool { return target == ErrSubmissionFailed }

func (e *SubmissionError) Unwrap() error { return e.Err }

// Submitter issues a single non-blocking submission.
type Submitter interface {
	Submit(ctx context.Context, req ExecutionRequest) (JobHandle, error)
}

// StatusQuerier reads the current status of a submission. Calls must be
// safe to repeat.
type StatusQuerier interface {
	Status(ctx context.Context, handle JobHandle) (*JobStatus, error)
}

// Engine is a remote execution service.
type Engine interface {
	Submitter
	StatusQuerier
}

// JobPayload is the serialized form of a code.execute job stored in the jobs table.
type JobPayload struct {
	Language   string `json:"language"`
	SourceCode string `json:"source_code"`
	Stdin      string `json:"stdin,omitempty"`
}
