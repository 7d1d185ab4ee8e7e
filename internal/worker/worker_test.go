package worker_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/gsarma/codepad/internal/store"
	"github.com/gsarma/codepad/internal/worker"
)

// stubQuerier implements store.Querier for worker tests.
// Only ClaimNextJob and UpdateJobStatus are exercised; all others return zero values.
type stubQuerier struct {
	claimNextJobFn    func(ctx context.Context) (store.Job, error)
	updateJobStatusFn func(ctx context.Context, arg store.UpdateJobStatusParams) (store.Job, error)
}

func (s *stubQuerier) ClaimNextJob(ctx context.Context) (store.Job, error) {
	if s.claimNextJobFn != nil {
		return s.claimNextJobFn(ctx)
	}
	return store.Job{}, pgx.ErrNoRows
}
func (s *stubQuerier) UpdateJobStatus(ctx context.Context, arg store.UpdateJobStatusParams) (store.Job, error) {
	if s.updateJobStatusFn != nil {
		return s.updateJobStatusFn(ctx, arg)
	}
	return store.Job{}, nil
}
func (s *stubQuerier) CreateJob(ctx context.Context, arg store.CreateJobParams) (store.Job, error) {
	return store.Job{}, nil
}
func (s *stubQuerier) GetJob(ctx context.Context, id uuid.UUID) (store.Job, error) {
	return store.Job{}, nil
}
func (s *stubQuerier) CreateGist(ctx context.Context, arg store.CreateGistParams) (store.Gist, error) {
	return store.Gist{}, nil
}
func (s *stubQuerier) GetGist(ctx context.Context, id uuid.UUID) (store.Gist, error) {
	return store.Gist{}, nil
}
func (s *stubQuerier) InsertCodeExecution(ctx context.Context, arg store.InsertCodeExecutionParams) (store.CodeExecution, error) {
	return store.CodeExecution{}, nil
}
func (s *stubQuerier) GetCodeExecution(ctx context.Context, jobID uuid.UUID) (store.CodeExecution, error) {
	return store.CodeExecution{}, nil
}

// stubExecutor implements worker.JobExecutor for tests.
type stubExecutor struct {
	executeJobFn func(ctx context.Context, jobID uuid.UUID, jobType string, payload json.RawMessage) error
}

func (s *stubExecutor) ExecuteJob(ctx context.Context, jobID uuid.UUID, jobType string, payload json.RawMessage) error {
	if s.executeJobFn != nil {
		return s.executeJobFn(ctx, jobID, jobType, payload)
	}
	return nil
}

func failingExecutor(err error) *stubExecutor {
	return &stubExecutor{
		executeJobFn: func(context.Context, uuid.UUID, string, json.RawMessage) error { return err },
	}
}

// singleJobQuerier hands out job once and reports the first status update on done.
func singleJobQuerier(job store.Job, captured *store.UpdateJobStatusParams, done chan struct{}) *stubQuerier {
	var claimCount int
	return &stubQuerier{
		claimNextJobFn: func(_ context.Context) (store.Job, error) {
			claimCount++
			if claimCount == 1 {
				return job, nil
			}
			return store.Job{}, pgx.ErrNoRows
		},
		updateJobStatusFn: func(_ context.Context, arg store.UpdateJobStatusParams) (store.Job, error) {
			*captured = arg
			close(done)
			return store.Job{}, nil
		},
	}
}

// runWorkerUntilDone starts a single-goroutine worker and waits for done to be closed or the test to time out.
func runWorkerUntilDone(t *testing.T, q store.Querier, exec worker.JobExecutor, done <-chan struct{}) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	w := worker.New(q, exec, 1, worker.WithInterval(10*time.Millisecond))
	go w.Start(ctx)
	select {
	case <-done:
	case <-ctx.Done():
		t.Fatal("timed out waiting for worker to process job")
	}
}

func makeJob(attempt, maxAttempts int32) store.Job {
	return store.Job{
		ID:          uuid.New(),
		JobType:     "code.execute",
		Payload:     []byte(`{}`),
		Status:      "running",
		Attempt:     attempt,
		MaxAttempts: maxAttempts,
		RunAt:       time.Now(),
	}
}

func TestWorker_NoJobs(t *testing.T) {
	// When no jobs are pending the worker should not call UpdateJobStatus.
	updateCalled := make(chan struct{}, 1)
	q := &stubQuerier{
		updateJobStatusFn: func(_ context.Context, _ store.UpdateJobStatusParams) (store.Job, error) {
			updateCalled <- struct{}{}
			return store.Job{}, nil
		},
	}
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	w := worker.New(q, &stubExecutor{}, 1, worker.WithInterval(10*time.Millisecond))
	w.Start(ctx) // blocks until timeout
	select {
	case <-updateCalled:
		t.Error("UpdateJobStatus should not be called when there are no jobs")
	default:
	}
}

func TestWorker_JobSucceeds(t *testing.T) {
	job := makeJob(1, 1)
	var captured store.UpdateJobStatusParams
	done := make(chan struct{})

	var gotID uuid.UUID
	exec := &stubExecutor{
		executeJobFn: func(_ context.Context, jobID uuid.UUID, _ string, _ json.RawMessage) error {
			gotID = jobID
			return nil
		},
	}
	runWorkerUntilDone(t, singleJobQuerier(job, &captured, done), exec, done)

	if gotID != job.ID {
		t.Errorf("executor got job id %s, want %s", gotID, job.ID)
	}
	if captured.Status != "completed" {
		t.Errorf("expected status=completed, got %s", captured.Status)
	}
	if captured.CompletedAt == nil {
		t.Error("expected CompletedAt to be set on success")
	}
	if captured.Error.Valid {
		t.Error("expected Error to be null on success")
	}
}

func TestWorker_JobFailsWithRetry(t *testing.T) {
	// attempt=1, max_attempts=3 → should reset to pending with a future run_at.
	job := makeJob(1, 3)
	execErr := errors.New("store unavailable")
	var captured store.UpdateJobStatusParams
	done := make(chan struct{})

	runWorkerUntilDone(t, singleJobQuerier(job, &captured, done), failingExecutor(execErr), done)

	if captured.Status != "pending" {
		t.Errorf("expected status=pending for retry, got %s", captured.Status)
	}
	if !captured.Error.Valid || captured.Error.String != execErr.Error() {
		t.Errorf("expected error=%q, got %+v", execErr.Error(), captured.Error)
	}
	if captured.RunAt.Before(time.Now()) {
		t.Error("expected run_at to be in the future for retry backoff")
	}
	if captured.CompletedAt != nil {
		t.Error("expected CompletedAt to be nil on retry")
	}
}

func TestWorker_SingleAttemptJobIsNotRetried(t *testing.T) {
	// Code jobs are queued with max_attempts=1 so a failed run is never resubmitted.
	job := makeJob(1, 1)
	execErr := errors.New("submission failed: engine returned HTTP 401")
	var captured store.UpdateJobStatusParams
	done := make(chan struct{})

	runWorkerUntilDone(t, singleJobQuerier(job, &captured, done), failingExecutor(execErr), done)

	if captured.Status != "failed" {
		t.Errorf("expected status=failed, got %s", captured.Status)
	}
	if !captured.Error.Valid || captured.Error.String != execErr.Error() {
		t.Errorf("expected error=%q, got %+v", execErr.Error(), captured.Error)
	}
}

func TestBackoff_GrowsWithAttempt(t *testing.T) {
	cases := []struct {
		attempt int32
		want    time.Duration
	}{
		{1, 20 * time.Second},
		{2, 40 * time.Second},
		{3, 80 * time.Second},
	}
	for _, tc := range cases {
		if got := worker.Backoff(tc.attempt); got != tc.want {
			t.Errorf("Backoff(%d) = %v, want %v", tc.attempt, got, tc.want)
		}
	}
}

// Compile-time check: stubQuerier satisfies store.Querier.
var _ store.Querier = (*stubQuerier)(nil)

// Compile-time check: stubExecutor satisfies worker.JobExecutor.
var _ worker.JobExecutor = (*stubExecutor)(nil)

func TestWorker_ShutdownMidJobStillRecordsStatus(t *testing.T) {
	job := makeJob(1, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	var (
		captured  store.UpdateJobStatusParams
		updateErr error
	)
	claimed := false
	q := &stubQuerier{
		claimNextJobFn: func(_ context.Context) (store.Job, error) {
			if claimed {
				return store.Job{}, pgx.ErrNoRows
			}
			claimed = true
			return job, nil
		},
		updateJobStatusFn: func(uctx context.Context, arg store.UpdateJobStatusParams) (store.Job, error) {
			captured = arg
			updateErr = uctx.Err()
			close(done)
			return store.Job{}, nil
		},
	}
	// The process is shutting down while the job runs.
	exec := &stubExecutor{
		executeJobFn: func(context.Context, uuid.UUID, string, json.RawMessage) error {
			cancel()
			return nil
		},
	}

	w := worker.New(q, exec, 1, worker.WithInterval(10*time.Millisecond))
	go w.Start(ctx)

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("job status was never written after shutdown")
	}
	if updateErr != nil {
		t.Errorf("status write ran on a cancelled context: %v", updateErr)
	}
	if captured.Status != "completed" {
		t.Errorf("expected status=completed, got %s", captured.Status)
	}
}
