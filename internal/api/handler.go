package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/gsarma/codepad/internal/code"
	"github.com/gsarma/codepad/internal/drafts"
	"github.com/gsarma/codepad/internal/logger"
	"github.com/gsarma/codepad/internal/store"
)

// DraftStore persists per-user editor state.
type DraftStore interface {
	Get(ctx context.Context, userID, language string) (drafts.Draft, error)
	Save(ctx context.Context, userID, language, source, input string) (drafts.Draft, error)
	Reset(ctx context.Context, userID, language string) error
}

var _ DraftStore = (*drafts.Store)(nil)

type Handler struct {
	queries store.Querier
	runner  *code.Runner
	drafts  DraftStore
	log     *zap.Logger
}

func NewHandler(queries store.Querier, runner *code.Runner, drafts DraftStore, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{queries: queries, runner: runner, drafts: drafts, log: log}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Languages lists the languages the editor can run.
func (h *Handler) Languages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"languages": code.Languages()})
}

// GetJob returns the status of a queued job.
func (h *Handler) GetJob(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}

	job, err := h.queries.GetJob(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err, "job not found")
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *Handler) logger(c *gin.Context) *zap.Logger {
	return logger.FromContext(c.Request.Context(), h.log)
}

// storeError writes 404 for missing rows and 500 for everything else.
func (h *Handler) storeError(c *gin.Context, err error, notFound string) {
	if errors.Is(err, pgx.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
		return
	}
	h.logger(c).Error("store query failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
