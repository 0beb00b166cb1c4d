package gig

import (
	"dashdine/models"

	"go.uber.org/zap"
)

// GoOnline flips the rider online against today's gig. The gig must be
// booked or active; a booked gig is activated, stamping StartedAt on first
// activation. With no eligible gig the call fails with ErrNoEligibleGig and
// the caller should redirect into the booking flow.
func (s *Session) GoOnline() (models.Gig, error) {
	g, err := s.goOnline()
	if err != nil {
		return models.Gig{}, err
	}
	s.notify()
	return g, nil
}

func (s *Session) goOnline() (models.Gig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.deps.Clock.Now()
	swept := s.ledger.Sweep(now)

	candidate, ok := s.ledger.TodaysGig(now.Format(DateLayout))
	if !ok {
		if swept {
			s.persistGigsLocked()
		}
		return models.Gig{}, ErrNoEligibleGig
	}

	activated, ok := s.ledger.Activate(candidate.ID, now)
	if !ok {
		if swept {
			s.persistGigsLocked()
		}
		return models.Gig{}, ErrNoEligibleGig
	}

	s.state = models.AvailabilityState{IsOnline: true, ActiveGigID: activated.ID}
	s.persistGigsLocked()
	s.persistStateLocked()
	s.deps.Logger.Info("rider online",
		zap.String("riderId", s.riderID), zap.String("gigId", activated.ID))
	return activated, nil
}

// GoOffline flips the rider offline unconditionally. The active gig keeps
// its status; pausing does not forfeit the gig window.
func (s *Session) GoOffline() {
	s.mu.Lock()
	s.state = models.AvailabilityState{}
	s.persistStateLocked()
	s.deps.Logger.Info("rider offline", zap.String("riderId", s.riderID))
	s.mu.Unlock()
	s.notify()
}

// Availability returns the online/offline state, first dropping the flag if
// the justifying gig's window has closed since it was set.
func (s *Session) Availability() models.AvailabilityState {
	s.mu.Lock()
	now := s.deps.Clock.Now()
	swept := s.ledger.Sweep(now)
	reconciled := s.reconcileLocked(now)
	if swept {
		s.persistGigsLocked()
	}
	if reconciled {
		s.persistStateLocked()
	}
	state := s.state
	s.mu.Unlock()
	if swept || reconciled {
		s.notify()
	}
	return state
}
