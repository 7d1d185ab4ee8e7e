package code

import (
	"context"

	"go.uber.org/zap"
)

// Runner submits programs to an Engine and polls them to completion.
// A Runner holds no per-run state and is safe for concurrent use.
type Runner struct {
	engine    Engine
	poll      PollConfig
	log       *zap.Logger
	sendStdin bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithPollConfig overrides the polling budget and backoff.
func WithPollConfig(cfg PollConfig) Option {
	return func(r *Runner) { r.poll = cfg }
}

// WithLogger sets the logger used for submission and polling events.
func WithLogger(log *zap.Logger) Option {
	return func(r *Runner) { r.log = log }
}

// WithoutStdin drops caller stdin and always submits an empty input.
func WithoutStdin() Option {
	return func(r *Runner) { r.sendStdin = false }
}

// NewRunner creates a Runner for engine.
func NewRunner(engine Engine, opts ...Option) *Runner {
	r := &Runner{
		engine:    engine,
		poll:      DefaultPollConfig(),
		log:       zap.NewNop(),
		sendStdin: true,
	}
	for _, o := range opts {
		o(r)
	}
	if r.log == nil {
		r.log = zap.NewNop()
	}
	return r
}

// PollConfig returns the effective polling configuration.
func (r *Runner) PollConfig() PollConfig { return r.poll.withDefaults() }

// Submit resolves language, encodes the program and submits it once.
// An unsupported language fails before the engine is contacted.
func (r *Runner) Submit(ctx context.Context, language, source, stdin string) (JobHandle, error) {
	id, err := LanguageID(language)
	if err != nil {
		return "", err
	}
	if !r.sendStdin {
		stdin = ""
	}
	handle, err := r.engine.Submit(ctx, ExecutionRequest{
		LanguageID: id,
		SourceCode: Encode(source),
		Stdin:      Encode(stdin),
	})
	if err != nil {
		r.log.Warn("submission failed", zap.String("language", language), zap.Error(err))
		return "", err
	}
	r.log.Debug("submitted", zap.String("language", language), zap.String("token", string(handle)))
	return handle, nil
}

// RunCode submits a program and waits for its classified Outcome.
// Errors are returned only when nothing was submitted: ErrUnsupportedLanguage
// or a *SubmissionError. Everything that happens after submission, including
// timeouts and cancellation, is reported through the Outcome.
func (r *Runner) RunCode(ctx context.Context, language, source, stdin string) (Outcome, error) {
	handle, err := r.Submit(ctx, language, source, stdin)
	if err != nil {
		return Outcome{}, err
	}
	return NewPoller(r.engine, r.poll, r.log).Poll(ctx, handle), nil
}

// Result is delivered by Start.
type Result struct {
	Outcome Outcome
	Err     error
}

// Start runs RunCode in its own goroutine. The returned channel receives
// exactly one Result and is then closed; it is buffered, so an abandoned
// receiver does not leak the goroutine.
func (r *Runner) Start(ctx context.Context, language, source, stdin string) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		out, err := r.RunCode(ctx, language, source, stdin)
		ch <- Result{Outcome: out, Err: err}
	}()
	return ch
}
