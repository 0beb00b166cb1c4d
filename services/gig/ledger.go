package gig

import (
	"time"

	"dashdine/models"

	"github.com/google/uuid"
)

// Ledger owns the rider's committed gigs and their lifecycle. It is a plain
// in-memory structure; Session serializes access and persists snapshots.
type Ledger struct {
	gigs []models.Gig
}

func NewLedger(gigs []models.Gig) *Ledger {
	return &Ledger{gigs: gigs}
}

// Gigs returns a copy of the ledger contents.
func (l *Ledger) Gigs() []models.Gig {
	out := make([]models.Gig, len(l.gigs))
	copy(out, l.gigs)
	return out
}

// IsSlotBooked reports whether any live gig already contains the window.
func (l *Ledger) IsSlotBooked(date string, start, end int) bool {
	for _, g := range l.gigs {
		if !g.IsLive() || g.Date != date {
			continue
		}
		for _, s := range g.Slots {
			if s.Start == start && s.End == end {
				return true
			}
		}
	}
	return false
}

// BookedSlotsForDate flattens all live gigs' slots for a date, ordered as
// stored (gigs are appended chronologically, slots sorted within a gig).
func (l *Ledger) BookedSlotsForDate(date string) []models.TimeSlot {
	var out []models.TimeSlot
	for _, g := range l.gigs {
		if g.IsLive() && g.Date == date {
			out = append(out, g.Slots...)
		}
	}
	return out
}

// TodaysGig resolves the gig the availability switch should act on: an active
// gig for today wins, otherwise the earliest booked gig for today.
func (l *Ledger) TodaysGig(today string) (models.Gig, bool) {
	for _, g := range l.gigs {
		if g.Date == today && g.Status == models.GigStatusActive {
			return g, true
		}
	}
	var earliest models.Gig
	found := false
	for _, g := range l.gigs {
		if g.Date != today || g.Status != models.GigStatusBooked {
			continue
		}
		if !found || g.Start < earliest.Start {
			earliest = g
			found = true
		}
	}
	return earliest, found
}

// GigsForDate returns all live gigs for a date.
func (l *Ledger) GigsForDate(date string) []models.Gig {
	var out []models.Gig
	for _, g := range l.gigs {
		if g.IsLive() && g.Date == date {
			out = append(out, g)
		}
	}
	return out
}

// Book appends one gig per contiguous run. The overlap re-check against
// current ledger state keeps the operation read-modify-write atomic even if
// the caller validated against a stale view.
func (l *Ledger) Book(riderID string, runs [][]models.TimeSlot, now time.Time) ([]models.Gig, error) {
	for _, run := range runs {
		for _, s := range run {
			if l.IsSlotBooked(s.Date, s.Start, s.End) {
				return nil, ErrSlotOverlap
			}
		}
	}

	created := make([]models.Gig, 0, len(runs))
	for _, run := range runs {
		if len(run) == 0 {
			continue
		}
		total := 0.0
		for _, s := range run {
			total += s.Hours()
		}
		g := models.Gig{
			ID:         uuid.New().String(),
			RiderID:    riderID,
			Date:       run[0].Date,
			Start:      run[0].Start,
			End:        run[len(run)-1].End,
			Slots:      run,
			TotalHours: total,
			Status:     models.GigStatusBooked,
			CreatedAt:  now,
		}
		l.gigs = append(l.gigs, g)
		created = append(created, g)
	}
	return created, nil
}

// Activate transitions a gig to active, stamping StartedAt on the first
// activation only.
func (l *Ledger) Activate(gigID string, now time.Time) (models.Gig, bool) {
	for i := range l.gigs {
		if l.gigs[i].ID != gigID {
			continue
		}
		if !l.gigs[i].IsEligible() {
			return models.Gig{}, false
		}
		l.gigs[i].Status = models.GigStatusActive
		if l.gigs[i].StartedAt == nil {
			ts := now
			l.gigs[i].StartedAt = &ts
		}
		return l.gigs[i], true
	}
	return models.Gig{}, false
}

// Sweep advances lifecycle states whose window has closed: a booked gig that
// was never activated expires, an active gig completes. Idempotent; returns
// whether anything changed.
func (l *Ledger) Sweep(now time.Time) bool {
	changed := false
	for i := range l.gigs {
		g := &l.gigs[i]
		if g.Status != models.GigStatusBooked && g.Status != models.GigStatusActive {
			continue
		}
		endAt, err := minuteAsTime(g.Date, g.End, now.Location())
		if err != nil || !now.After(endAt) {
			continue
		}
		if g.Status == models.GigStatusBooked {
			g.Status = models.GigStatusExpired
		} else {
			g.Status = models.GigStatusCompleted
		}
		changed = true
	}
	return changed
}
