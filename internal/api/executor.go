package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gsarma/codepad/internal/code"
	"github.com/gsarma/codepad/internal/store"
)

const resultWriteTimeout = 5 * time.Second

// ExecuteJob dispatches a job to the appropriate handler by type.
// It implements worker.JobExecutor.
func (h *Handler) ExecuteJob(ctx context.Context, jobID uuid.UUID, jobType string, payload json.RawMessage) error {
	switch jobType {
	case JobTypeCodeExecute:
		return h.executeCodeJob(ctx, jobID, payload)
	default:
		return fmt.Errorf("unknown job type: %s", jobType)
	}
}

func (h *Handler) executeCodeJob(ctx context.Context, jobID uuid.UUID, raw json.RawMessage) error {
	var p code.JobPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("invalid code job payload: %w", err)
	}

	out, err := h.runner.RunCode(ctx, p.Language, p.SourceCode, p.Stdin)
	if err != nil {
		return err
	}

	// A shutdown cancels ctx mid-poll; the Cancelled outcome is still stored.
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), resultWriteTimeout)
	defer cancel()
	_, err = h.queries.InsertCodeExecution(writeCtx, store.InsertCodeExecutionParams{
		JobID:    jobID,
		Language: p.Language,
		Outcome:  out.Kind.String(),
		Output:   out.Text,
		Token:    string(out.Token),
		Attempts: int32(out.Attempts),
		StatusID: int32(out.StatusID),
		Status:   out.Status,
	})
	if err != nil {
		return fmt.Errorf("store execution result: %w", err)
	}
	h.log.Info("execution stored",
		zap.Stringer("job_id", jobID),
		zap.Stringer("outcome", out.Kind),
	)
	return nil
}
