package code_test

import (
	"context"
	"sync"
	"time"

	"github.com/gsarma/codepad/internal/code"
)

// fakeEngine implements code.Engine for tests. statusFn receives the 1-based
// index of the Status call; without it every job stays "In Queue".
type fakeEngine struct {
	mu sync.Mutex

	submitFn func(ctx context.Context, req code.ExecutionRequest) (code.JobHandle, error)
	statusFn func(ctx context.Context, handle code.JobHandle, call int) (*code.JobStatus, error)

	submits     []code.ExecutionRequest
	statusCalls int
}

func (f *fakeEngine) Submit(ctx context.Context, req code.ExecutionRequest) (code.JobHandle, error) {
	f.mu.Lock()
	f.submits = append(f.submits, req)
	f.mu.Unlock()
	if f.submitFn != nil {
		return f.submitFn(ctx, req)
	}
	return "tok-1", nil
}

func (f *fakeEngine) Status(ctx context.Context, handle code.JobHandle) (*code.JobStatus, error) {
	f.mu.Lock()
	f.statusCalls++
	call := f.statusCalls
	f.mu.Unlock()
	if f.statusFn != nil {
		return f.statusFn(ctx, handle, call)
	}
	return &code.JobStatus{StatusID: 1}, nil
}

func (f *fakeEngine) calls() (submits, statuses int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.submits), f.statusCalls
}

var _ code.Engine = (*fakeEngine)(nil)

// fastPoll keeps test runs short while preserving the doubling schedule.
var fastPoll = code.PollConfig{
	MaxAttempts: 10,
	BaseDelay:   time.Millisecond,
	MaxDelay:    4 * time.Millisecond,
}
