package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gsarma/codepad/internal/auth"
	"github.com/gsarma/codepad/internal/code"
	"github.com/gsarma/codepad/internal/store"
)

// Share stores a snippet under the caller's name and returns the gist.
func (h *Handler) Share(c *gin.Context) {
	var body struct {
		Language string `json:"language" binding:"required"`
		Code     string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(body.Code) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code is empty"})
		return
	}
	if _, err := code.LookupLanguage(body.Language); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	gist, err := h.queries.CreateGist(c.Request.Context(), store.CreateGistParams{
		Username: auth.UserID(c),
		Language: body.Language,
		Code:     body.Code,
	})
	if err != nil {
		h.logger(c).Error("failed to create gist", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to share code"})
		return
	}

	c.JSON(http.StatusCreated, gist)
}

// GetShared returns a shared snippet. Gists are public.
func (h *Handler) GetShared(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid gist id"})
		return
	}

	gist, err := h.queries.GetGist(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err, "gist not found")
		return
	}

	c.JSON(http.StatusOK, gist)
}
