package handlers

import (
	"errors"
	"net/http"

	"dashdine/services/gig"
	"dashdine/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GigHandler exposes the slot picker and booking flow.
type GigHandler struct {
	Registry *SessionRegistry
	Logger   *zap.Logger
}

func NewGigHandler(registry *SessionRegistry, logger *zap.Logger) *GigHandler {
	return &GigHandler{Registry: registry, Logger: logger}
}

func riderSession(c *gin.Context, registry *SessionRegistry) (*gig.Session, bool) {
	riderID := c.GetString("riderID")
	if riderID == "" {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "missing rider identity")
		return nil, false
	}
	return registry.SessionFor(riderID), true
}

// schedulerError maps core errors to an HTTP status and a rider-facing prompt.
func schedulerError(c *gin.Context, err error) {
	var gapErr *gig.GapError
	switch {
	case errors.As(err, &gapErr):
		utils.JSONError(c, http.StatusUnprocessableEntity, "Please select consecutive slots", gapErr.Error())
	case errors.Is(err, gig.ErrEmptySelection):
		utils.JSONError(c, http.StatusBadRequest, "Select at least one slot", err.Error())
	case errors.Is(err, gig.ErrOutOfHorizon):
		utils.JSONError(c, http.StatusUnprocessableEntity, "Date is outside your booking horizon", err.Error())
	case errors.Is(err, gig.ErrSlotInPast):
		utils.JSONError(c, http.StatusUnprocessableEntity, "That slot has already started", err.Error())
	case errors.Is(err, gig.ErrUnknownSlot):
		utils.JSONError(c, http.StatusBadRequest, "Unknown slot", err.Error())
	case errors.Is(err, gig.ErrSlotOverlap):
		utils.JSONError(c, http.StatusConflict, "Slot already booked", err.Error())
	case errors.Is(err, gig.ErrNoEligibleGig):
		utils.JSONError(c, http.StatusConflict, "Book a gig first", err.Error())
	case errors.Is(err, gig.ErrInvalidLevel):
		utils.JSONError(c, http.StatusUnprocessableEntity, "Unknown rider level", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
	}
}

// GetAvailableDates returns the level-gated booking horizon.
func (h *GigHandler) GetAvailableDates(c *gin.Context) {
	session, ok := riderSession(c, h.Registry)
	if !ok {
		return
	}
	dates, err := session.AvailableDates()
	if err != nil {
		schedulerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dates": dates})
}

// GetSlotsForDate returns the annotated slot template for one date.
func (h *GigHandler) GetSlotsForDate(c *gin.Context) {
	session, ok := riderSession(c, h.Registry)
	if !ok {
		return
	}
	slots, err := session.SlotsForDate(c.Param("date"))
	if err != nil {
		schedulerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": c.Param("date"), "slots": slots})
}

// ToggleSlotSelection adds or removes one slot from the in-progress
// selection.
func (h *GigHandler) ToggleSlotSelection(c *gin.Context) {
	session, ok := riderSession(c, h.Registry)
	if !ok {
		return
	}
	var input struct {
		Date  string `json:"date" binding:"required"`
		Start int    `json:"start" binding:"required"`
		End   int    `json:"end" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if err := session.ToggleSlotSelection(input.Date, input.Start, input.End); err != nil {
		schedulerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"selection": session.Selection()})
}

// ClearSelection drops the in-progress selection.
func (h *GigHandler) ClearSelection(c *gin.Context) {
	session, ok := riderSession(c, h.Registry)
	if !ok {
		return
	}
	session.ClearSelection()
	c.JSON(http.StatusOK, gin.H{"selection": []struct{}{}})
}

// BookSelection commits the selection into gigs.
func (h *GigHandler) BookSelection(c *gin.Context) {
	session, ok := riderSession(c, h.Registry)
	if !ok {
		return
	}
	gigs, err := session.BookSelection()
	if err != nil {
		schedulerError(c, err)
		return
	}
	h.Logger.Info("booking confirmed",
		zap.String("riderId", session.RiderID()), zap.Int("gigs", len(gigs)))
	c.JSON(http.StatusCreated, gin.H{"gigs": gigs})
}

// ListGigs returns the rider's gigs after the lifecycle sweep.
func (h *GigHandler) ListGigs(c *gin.Context) {
	session, ok := riderSession(c, h.Registry)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"gigs": session.Gigs()})
}
