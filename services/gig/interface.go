package gig

import (
	"context"
	"time"

	"dashdine/models"
)

// Clock supplies the current time. It is injected everywhere "now" is needed
// so the scheduler never couples to the wall clock.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// EarningsSource exposes the rider's wallet as a read-only earnings figure.
type EarningsSource interface {
	// PeriodEarnings returns earnings for "today" or "week".
	PeriodEarnings(ctx context.Context, period string) (float64, error)
}

// OrderHistorySource exposes completed-order records written by the order
// service.
type OrderHistorySource interface {
	OrdersForDate(ctx context.Context, date string) ([]models.OrderRecord, error)
}

// RiderLevelSource supplies the rider's current tenure level. Levels are
// assigned elsewhere; this service never computes them.
type RiderLevelSource interface {
	CurrentLevel(ctx context.Context) (models.RiderLevel, error)
}

// ReminderScheduler schedules a gig-start reminder. Implementations must be
// best-effort: booking never fails because a reminder could not be scheduled.
type ReminderScheduler interface {
	ScheduleGigReminder(ctx context.Context, payload models.ReminderPayload, fireAt time.Time) error
}

// RiderSession is the per-rider scheduling surface the presentation layer
// consumes.
type RiderSession interface {
	AvailableDates() ([]models.BookableDate, error)
	SlotsForDate(date string) ([]models.SlotView, error)
	ToggleSlotSelection(date string, start, end int) error
	Selection() []models.TimeSlot
	ClearSelection()
	BookSelection() ([]models.Gig, error)
	Gigs() []models.Gig
	GoOnline() (models.Gig, error)
	GoOffline()
	Availability() models.AvailabilityState
	TodayProgress() models.DailyProgress
	OnChange(func())
}
