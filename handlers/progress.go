package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ProgressHandler exposes the home-screen daily summary.
type ProgressHandler struct {
	Registry *SessionRegistry
}

func NewProgressHandler(registry *SessionRegistry) *ProgressHandler {
	return &ProgressHandler{Registry: registry}
}

// GetTodayProgress recomputes and returns today's progress.
func (h *ProgressHandler) GetTodayProgress(c *gin.Context) {
	session, ok := riderSession(c, h.Registry)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": session.TodayProgress()})
}
