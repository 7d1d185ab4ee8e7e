package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gsarma/codepad/internal/code"
	"github.com/gsarma/codepad/internal/store"
)

// JobTypeCodeExecute is the job type for queued executions.
const JobTypeCodeExecute = "code.execute"

type executeRequest struct {
	Language string `json:"language" binding:"required"`
	Code     string `json:"code" binding:"required"`
	Stdin    string `json:"stdin"`
}

// Execute runs a program and returns its Outcome, or queues it with ?async=true.
//
// Request body:
//
//	{
//	  "language": "python",
//	  "code":     "print('hello')",
//	  "stdin":    "optional"
//	}
//
// Sync (default): returns 200 with the Outcome.
// Async (?async=true): returns 202 {"job_id": "...", "status": "queued"}; the
// result is then available from GET /executions/:job_id.
func (h *Handler) Execute(c *gin.Context) {
	var body executeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := code.LookupLanguage(body.Language); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if c.Query("async") == "true" {
		payloadJSON, _ := json.Marshal(code.JobPayload{
			Language:   body.Language,
			SourceCode: body.Code,
			Stdin:      body.Stdin,
		})
		// Submissions are not idempotent, so a failed execution is never retried.
		job, err := h.queries.CreateJob(c.Request.Context(), store.CreateJobParams{
			JobType:     JobTypeCodeExecute,
			Payload:     payloadJSON,
			MaxAttempts: 1,
		})
		if err != nil {
			h.logger(c).Error("failed to queue execution", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to queue job"})
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"job_id": job.ID, "status": "queued"})
		return
	}

	out, err := h.runner.RunCode(c.Request.Context(), body.Language, body.Code, body.Stdin)
	if err != nil {
		h.executeError(c, err)
		return
	}
	h.logger(c).Info("execution finished",
		zap.String("language", body.Language),
		zap.Stringer("outcome", out.Kind),
		zap.Int("attempts", out.Attempts),
	)
	c.JSON(http.StatusOK, out)
}

// GetCodeExecution returns the stored Outcome of a code.execute job.
// Call this after GET /jobs/:id reports status "completed".
func (h *Handler) GetCodeExecution(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("job_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}

	exec, err := h.queries.GetCodeExecution(c.Request.Context(), jobID)
	if err != nil {
		h.storeError(c, err, "execution result not found")
		return
	}

	c.JSON(http.StatusOK, exec)
}

func (h *Handler) executeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, code.ErrUnsupportedLanguage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, code.ErrSubmissionFailed):
		h.logger(c).Warn("submission failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		h.logger(c).Error("execution failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
