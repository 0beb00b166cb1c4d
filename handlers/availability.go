package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AvailabilityHandler exposes the online/offline switch.
type AvailabilityHandler struct {
	Registry *SessionRegistry
	Logger   *zap.Logger
}

func NewAvailabilityHandler(registry *SessionRegistry, logger *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{Registry: registry, Logger: logger}
}

// GoOnline activates today's gig and flips the rider online. Without an
// eligible gig the response tells the client to open the booking flow.
func (h *AvailabilityHandler) GoOnline(c *gin.Context) {
	session, ok := riderSession(c, h.Registry)
	if !ok {
		return
	}
	g, err := session.GoOnline()
	if err != nil {
		schedulerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"availability": session.Availability(),
		"gig":          g,
	})
}

// GoOffline flips the rider offline; the active gig keeps its window.
func (h *AvailabilityHandler) GoOffline(c *gin.Context) {
	session, ok := riderSession(c, h.Registry)
	if !ok {
		return
	}
	session.GoOffline()
	c.JSON(http.StatusOK, gin.H{"availability": session.Availability()})
}

// GetAvailability returns the reconciled online/offline state.
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	session, ok := riderSession(c, h.Registry)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": session.Availability()})
}
