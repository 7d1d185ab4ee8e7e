package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gsarma/codepad/internal/auth"
	"github.com/gsarma/codepad/internal/drafts"
)

// GetDraft returns the caller's editor state for a language, falling back
// to the starter program.
func (h *Handler) GetDraft(c *gin.Context) {
	d, err := h.drafts.Get(c.Request.Context(), auth.UserID(c), c.Param("language"))
	if err != nil {
		h.draftError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// SaveDraft stores the caller's editor state for a language.
func (h *Handler) SaveDraft(c *gin.Context) {
	var body struct {
		Code  string `json:"code"`
		Input string `json:"input"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d, err := h.drafts.Save(c.Request.Context(), auth.UserID(c), c.Param("language"), body.Code, body.Input)
	if err != nil {
		h.draftError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// ResetDraft discards the caller's editor state for a language.
func (h *Handler) ResetDraft(c *gin.Context) {
	if err := h.drafts.Reset(c.Request.Context(), auth.UserID(c), c.Param("language")); err != nil {
		h.draftError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) draftError(c *gin.Context, err error) {
	if errors.Is(err, drafts.ErrUnknownLanguage) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.logger(c).Error("draft store failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "draft store unavailable"})
}
