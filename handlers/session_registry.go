package handlers

import (
	"sync"

	"dashdine/database/kv"
	"dashdine/services/gig"

	"go.uber.org/zap"
)

// SessionRegistry lazily constructs and caches one scheduler session per
// rider. Sessions are single-actor: all requests for a rider funnel through
// the same instance.
type SessionRegistry struct {
	store    kv.Store
	reminder gig.ReminderScheduler
	logger   *zap.Logger

	mu       sync.Mutex
	sessions map[string]*gig.Session
}

func NewSessionRegistry(store kv.Store, reminder gig.ReminderScheduler, logger *zap.Logger) *SessionRegistry {
	return &SessionRegistry{
		store:    store,
		reminder: reminder,
		logger:   logger,
		sessions: make(map[string]*gig.Session),
	}
}

// SessionFor returns the rider's session, constructing and loading it on
// first use. Earnings, orders and level are read through the same key-value
// store the platform writes them to.
func (r *SessionRegistry) SessionFor(riderID string) *gig.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[riderID]; ok {
		return s
	}
	s := gig.NewSession(riderID, gig.Deps{
		Store:    r.store,
		Clock:    gig.SystemClock{},
		Earnings: &gig.KVEarningsSource{Store: r.store, RiderID: riderID},
		Orders:   &gig.KVOrderHistorySource{Store: r.store, RiderID: riderID},
		Levels:   &gig.KVLevelSource{Store: r.store, RiderID: riderID},
		Reminder: r.reminder,
		Logger:   r.logger,
	})
	r.sessions[riderID] = s
	return s
}
