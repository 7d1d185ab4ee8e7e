package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gsarma/codepad/internal/auth"
)

func RegisterRoutes(r *gin.Engine, h *Handler, verifier *auth.Verifier, log *zap.Logger) {
	r.Use(RequestLogger(log))

	r.GET("/health", h.Health)
	r.GET("/languages", h.Languages)

	r.POST("/execute", h.Execute)
	r.GET("/jobs/:id", h.GetJob)
	r.GET("/executions/:job_id", h.GetCodeExecution)

	// Shared gists are readable without a session.
	r.GET("/share/:id", h.GetShared)

	authed := r.Group("/", verifier.Middleware())
	{
		authed.POST("/share", h.Share)

		authed.GET("/drafts/:language", h.GetDraft)
		authed.PUT("/drafts/:language", h.SaveDraft)
		authed.DELETE("/drafts/:language", h.ResetDraft)
	}
}
