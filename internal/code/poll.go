package code

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// PollConfig bounds the status polling of one submission.
type PollConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	BaseDelay   time.Duration `yaml:"base_delay"`
	MaxDelay    time.Duration `yaml:"max_delay"`
}

// DefaultPollConfig returns 10 attempts with a 250ms base delay capped at 2s.
func DefaultPollConfig() PollConfig {
	return PollConfig{
		MaxAttempts: 10,
		BaseDelay:   250 * time.Millisecond,
		MaxDelay:    2 * time.Second,
	}
}

// withDefaults fills zero fields from DefaultPollConfig.
func (c PollConfig) withDefaults() PollConfig {
	d := DefaultPollConfig()
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = d.MaxAttempts
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = d.BaseDelay
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = d.MaxDelay
	}
	return c
}

// Delay returns min(MaxDelay, BaseDelay * 2^attempt).
func (c PollConfig) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	d := c.BaseDelay
	for i := 0; i < attempt; i++ {
		d *= 2
		if d >= c.MaxDelay || d <= 0 {
			return c.MaxDelay
		}
	}
	if d > c.MaxDelay {
		return c.MaxDelay
	}
	return d
}

// WorstCaseWait is the total time spent sleeping when no attempt ever sees a
// finished status: the sum of Delay(i) for i in [1, MaxAttempts].
func (c PollConfig) WorstCaseWait() time.Duration {
	var total time.Duration
	for i := 1; i <= c.MaxAttempts; i++ {
		total += c.Delay(i)
	}
	return total
}

// Poller waits for a submitted job to finish.
type Poller struct {
	engine StatusQuerier
	cfg    PollConfig
	log    *zap.Logger
}

// NewPoller creates a Poller. Zero fields of cfg take their defaults.
func NewPoller(engine StatusQuerier, cfg PollConfig, log *zap.Logger) *Poller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Poller{engine: engine, cfg: cfg.withDefaults(), log: log}
}

// Poll queries the status of handle until it finishes, the attempt budget is
// spent, or ctx is done. It always returns exactly one Outcome. A failed
// status query still consumes an attempt. Cancelling ctx leaves the remote
// job running.
func (p *Poller) Poll(ctx context.Context, handle JobHandle) Outcome {
	log := p.log.With(zap.String("token", string(handle)))

	attempt := 0
	for attempt < p.cfg.MaxAttempts {
		if ctx.Err() != nil {
			return cancelled(handle, attempt)
		}
		attempt++

		st, err := p.engine.Status(ctx, handle)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return cancelled(handle, attempt)
			}
			log.Warn("status query failed", zap.Int("attempt", attempt), zap.Error(err))
		case st.Finished():
			out := Classify(st)
			out.Token = handle
			out.Attempts = attempt
			log.Debug("job finished",
				zap.Int("attempt", attempt),
				zap.Int("status_id", st.StatusID),
				zap.Stringer("outcome", out.Kind))
			return out
		default:
			log.Debug("job still running", zap.Int("attempt", attempt), zap.Int("status_id", st.StatusID))
		}

		delay := p.cfg.Delay(attempt)
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return cancelled(handle, attempt)
		case <-timer.C:
		}
	}

	log.Info("polling budget exhausted", zap.Int("attempts", attempt))
	return Outcome{
		Kind:     KindTimedOut,
		Text:     "Execution timed out",
		Token:    handle,
		Attempts: attempt,
	}
}

func cancelled(handle JobHandle, attempts int) Outcome {
	return Outcome{
		Kind:     KindCancelled,
		Text:     "Execution cancelled",
		Token:    handle,
		Attempts: attempts,
	}
}
