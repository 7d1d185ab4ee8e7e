package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"

	"github.com/gsarma/codepad/internal/store"
)

// JobExecutor executes a single job by type and payload.
type JobExecutor interface {
	ExecuteJob(ctx context.Context, jobID uuid.UUID, jobType string, payload json.RawMessage) error
}

// Worker polls the database for pending jobs and executes them concurrently.
type Worker struct {
	store       store.Querier
	executor    JobExecutor
	concurrency int
	interval    time.Duration
	log         *zap.Logger
}

// Option configures a Worker.
type Option func(*Worker)

// WithLogger sets the worker logger.
func WithLogger(log *zap.Logger) Option {
	return func(w *Worker) { w.log = log }
}

// WithInterval changes how often each goroutine looks for a job.
func WithInterval(d time.Duration) Option {
	return func(w *Worker) { w.interval = d }
}

func New(q store.Querier, executor JobExecutor, concurrency int, opts ...Option) *Worker {
	w := &Worker{
		store:       q,
		executor:    executor,
		concurrency: concurrency,
		interval:    500 * time.Millisecond,
		log:         zap.NewNop(),
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Start spawns concurrency goroutines that each poll for jobs every interval.
// It blocks until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	for i := 0; i < w.concurrency; i++ {
		go w.loop(ctx)
	}
	<-ctx.Done()
}

func (w *Worker) loop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.processNext(ctx)
		}
	}
}

// statusWriteTimeout bounds the final status write, which must outlive a
// cancelled worker context so a job never stays "running".
const statusWriteTimeout = 5 * time.Second

// Backoff is the delay before a failed job is retried.
func Backoff(attempt int32) time.Duration {
	return time.Duration(int64(1)<<uint(attempt)) * 10 * time.Second
}

func (w *Worker) processNext(ctx context.Context) {
	job, err := w.store.ClaimNextJob(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return
		}
		w.log.Error("claim job", zap.Error(err))
		return
	}
	log := w.log.With(zap.Stringer("job_id", job.ID), zap.String("job_type", job.JobType))

	execErr := w.executor.ExecuteJob(ctx, job.ID, job.JobType, json.RawMessage(job.Payload))

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), statusWriteTimeout)
	defer cancel()

	now := time.Now()
	if execErr == nil {
		_, err = w.store.UpdateJobStatus(ctx, store.UpdateJobStatusParams{
			ID:          job.ID,
			Status:      "completed",
			Error:       pgtype.Text{Valid: false},
			CompletedAt: &now,
			RunAt:       job.RunAt,
		})
		if err != nil {
			log.Error("mark completed", zap.Error(err))
		}
		return
	}

	// Job failed: retry until max_attempts, then mark as failed.
	if job.Attempt < job.MaxAttempts {
		log.Warn("job failed, retrying", zap.Int32("attempt", job.Attempt), zap.Error(execErr))
		_, err = w.store.UpdateJobStatus(ctx, store.UpdateJobStatusParams{
			ID:          job.ID,
			Status:      "pending",
			Error:       pgtype.Text{String: execErr.Error(), Valid: true},
			CompletedAt: nil,
			RunAt:       now.Add(Backoff(job.Attempt)),
		})
	} else {
		log.Warn("job failed permanently", zap.Int32("attempt", job.Attempt), zap.Error(execErr))
		_, err = w.store.UpdateJobStatus(ctx, store.UpdateJobStatusParams{
			ID:          job.ID,
			Status:      "failed",
			Error:       pgtype.Text{String: execErr.Error(), Valid: true},
			CompletedAt: nil,
			RunAt:       job.RunAt,
		})
	}
	if err != nil {
		log.Error("update job status", zap.Error(err))
	}
}
