package gig

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLevel is returned for a level value outside the known tiers.
	// Callers must fall back to the lowest tier, never to a longer horizon.
	ErrInvalidLevel = errors.New("unknown rider level")

	// ErrOutOfHorizon is returned when a date lies beyond the level-gated
	// booking horizon.
	ErrOutOfHorizon = errors.New("date is outside the booking horizon")

	// ErrSlotInPast is returned when a slot whose start has already passed is
	// selected or booked.
	ErrSlotInPast = errors.New("slot start time has passed")

	// ErrUnknownSlot is returned when a submitted slot does not match any
	// generated slot for its date.
	ErrUnknownSlot = errors.New("slot does not exist in the schedule")

	// ErrEmptySelection is returned when booking is attempted with nothing
	// selected.
	ErrEmptySelection = errors.New("selection is empty")

	// ErrSlotOverlap is returned when any selected slot is already part of a
	// live gig.
	ErrSlotOverlap = errors.New("slot is already booked")

	// ErrNoEligibleGig is returned by GoOnline when no booked or active gig
	// exists for today; the caller should send the rider to the booking flow.
	ErrNoEligibleGig = errors.New("no eligible gig for today")
)

// GapError reports a non-consecutive selection on a specific date.
type GapError struct {
	Date string
}

func (e *GapError) Error() string {
	return fmt.Sprintf("selected slots on %s are not consecutive", e.Date)
}
