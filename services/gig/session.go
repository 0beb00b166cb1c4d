package gig

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"dashdine/database/kv"
	"dashdine/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	persistTimeout = 3 * time.Second
	reminderLead   = 15 * time.Minute
)

// Deps bundles the collaborators a Session is constructed with. Store and
// Clock are required; the remaining sources may be nil and then contribute
// zero values.
type Deps struct {
	Store    kv.Store
	Clock    Clock
	Earnings EarningsSource
	Orders   OrderHistorySource
	Levels   RiderLevelSource
	Reminder ReminderScheduler
	Logger   *zap.Logger
}

// Session is the per-rider scheduler: it owns the in-progress selection, the
// gig ledger and the availability state, and persists snapshots through the
// key-value store. In-memory state is authoritative for the session; a failed
// write is logged and implicitly retried on the next mutation, which rewrites
// the full record.
var _ RiderSession = (*Session)(nil)

type Session struct {
	riderID string
	deps    Deps

	mu        sync.Mutex
	ledger    *Ledger
	selection map[string]models.TimeSlot
	state     models.AvailabilityState

	obsMu     sync.Mutex
	observers []func()
}

// NewSession loads persisted state for the rider, runs the lifecycle sweep
// and reconciles the online flag against it.
func NewSession(riderID string, deps Deps) *Session {
	if deps.Clock == nil {
		deps.Clock = SystemClock{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	s := &Session{
		riderID:   riderID,
		deps:      deps,
		ledger:    NewLedger(nil),
		selection: make(map[string]models.TimeSlot),
	}
	s.load()
	return s
}

func gigsKey(riderID string) string         { return "rider:" + riderID + ":gigs" }
func availabilityKey(riderID string) string { return "rider:" + riderID + ":availability" }

func (s *Session) load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if raw, err := s.deps.Store.Get(ctx, gigsKey(s.riderID)); err != nil {
		s.deps.Logger.Warn("failed to load gigs, starting empty",
			zap.String("riderId", s.riderID), zap.Error(err))
	} else if raw != nil {
		var gigs []models.Gig
		if err := json.Unmarshal(raw, &gigs); err != nil {
			s.deps.Logger.Warn("corrupt gig record, starting empty",
				zap.String("riderId", s.riderID), zap.Error(err))
		} else {
			s.ledger = NewLedger(gigs)
		}
	}

	if raw, err := s.deps.Store.Get(ctx, availabilityKey(s.riderID)); err != nil {
		s.deps.Logger.Warn("failed to load availability state",
			zap.String("riderId", s.riderID), zap.Error(err))
	} else if raw != nil {
		if err := json.Unmarshal(raw, &s.state); err != nil {
			s.deps.Logger.Warn("corrupt availability record, resetting",
				zap.String("riderId", s.riderID), zap.Error(err))
			s.state = models.AvailabilityState{}
		}
	}

	now := s.deps.Clock.Now()
	swept := s.ledger.Sweep(now)
	if s.reconcileLocked(now) {
		s.persistStateLocked()
	}
	if swept {
		s.persistGigsLocked()
	}
}

// reconcileLocked drops a stale online flag: the flag is trusted only while
// today's gig still resolves to something eligible.
func (s *Session) reconcileLocked(now time.Time) bool {
	if !s.state.IsOnline {
		return false
	}
	g, ok := s.ledger.TodaysGig(now.Format(DateLayout))
	if ok && g.IsEligible() {
		return false
	}
	s.state = models.AvailabilityState{}
	return true
}

// RiderID returns the rider this session belongs to.
func (s *Session) RiderID() string { return s.riderID }

// OnChange registers a callback fired after every ledger or availability
// mutation. Callbacks run after the mutation is applied to in-memory state;
// persistence may lag.
func (s *Session) OnChange(cb func()) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	s.observers = append(s.observers, cb)
}

func (s *Session) notify() {
	s.obsMu.Lock()
	observers := make([]func(), len(s.observers))
	copy(observers, s.observers)
	s.obsMu.Unlock()
	for _, cb := range observers {
		cb()
	}
}

// currentLevelLocked resolves the rider's level, falling back to the lowest
// tier on any failure so a malformed level can never widen the horizon.
func (s *Session) currentLevelLocked(ctx context.Context) models.RiderLevel {
	if s.deps.Levels == nil {
		return LowestLevel
	}
	level, err := s.deps.Levels.CurrentLevel(ctx)
	if err != nil {
		s.deps.Logger.Warn("failed to resolve rider level, using lowest tier",
			zap.String("riderId", s.riderID), zap.Error(err))
		return LowestLevel
	}
	if _, err := LevelProfile(level); err != nil {
		s.deps.Logger.Warn("unknown rider level, using lowest tier",
			zap.String("riderId", s.riderID), zap.String("level", string(level)))
		return LowestLevel
	}
	return level
}

// AvailableDates returns the level-gated booking horizon.
func (s *Session) AvailableDates() ([]models.BookableDate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	return AvailableDates(s.currentLevelLocked(ctx), s.deps.Clock.Now())
}

// SlotsForDate returns the slot template for a date annotated with booking
// and selection marks.
func (s *Session) SlotsForDate(date string) ([]models.SlotView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	now := s.deps.Clock.Now()
	if !WithinHorizon(s.currentLevelLocked(ctx), date, now) {
		return nil, ErrOutOfHorizon
	}

	slots, err := SlotsForDate(date, now)
	if err != nil {
		return nil, err
	}
	views := make([]models.SlotView, 0, len(slots))
	for _, slot := range slots {
		_, selected := s.selection[slot.Key()]
		views = append(views, models.SlotView{
			TimeSlot:   slot,
			IsBooked:   s.ledger.IsSlotBooked(slot.Date, slot.Start, slot.End),
			IsSelected: selected,
		})
	}
	return views, nil
}

// ToggleSlotSelection adds the slot to the in-progress selection, or removes
// it if already selected. The submitted window is resolved against the
// generated template so clients cannot smuggle in arbitrary slots.
func (s *Session) ToggleSlotSelection(date string, start, end int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	now := s.deps.Clock.Now()
	if !WithinHorizon(s.currentLevelLocked(ctx), date, now) {
		return ErrOutOfHorizon
	}

	slots, err := SlotsForDate(date, now)
	if err != nil {
		return err
	}
	var match *models.TimeSlot
	for i := range slots {
		if slots[i].Start == start && slots[i].End == end {
			match = &slots[i]
			break
		}
	}
	if match == nil {
		if templateWindow(start, end) {
			// The window exists in the schedule but was filtered out, which
			// only happens for today's already-started slots.
			return ErrSlotInPast
		}
		return ErrUnknownSlot
	}

	key := match.Key()
	if _, ok := s.selection[key]; ok {
		delete(s.selection, key)
		return nil
	}
	if s.ledger.IsSlotBooked(match.Date, match.Start, match.End) {
		return ErrSlotOverlap
	}
	s.selection[key] = *match
	return nil
}

// templateWindow reports whether (start, end) lines up with the fixed slot
// grid.
func templateWindow(start, end int) bool {
	return start >= OpeningMinute &&
		end <= ClosingMinute &&
		end == start+SlotWidthMinutes &&
		(start-OpeningMinute)%SlotWidthMinutes == 0
}

// Selection returns the current selection ordered by date then start.
func (s *Session) Selection() []models.TimeSlot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectionLocked()
}

func (s *Session) selectionLocked() []models.TimeSlot {
	out := make([]models.TimeSlot, 0, len(s.selection))
	for _, slot := range s.selection {
		out = append(out, slot)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Start < out[j].Start
	})
	return out
}

// ClearSelection drops the in-progress selection.
func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = make(map[string]models.TimeSlot)
}

// BookSelection converts the current selection into committed gigs, one per
// contiguous run per date. On success the selection is cleared and a
// gig-start reminder is scheduled for each created gig.
func (s *Session) BookSelection() ([]models.Gig, error) {
	created, err := s.book()
	if err != nil {
		return nil, err
	}
	s.notify()
	s.scheduleReminders(created)
	return created, nil
}

func (s *Session) book() ([]models.Gig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.deps.Clock.Now()
	swept := s.ledger.Sweep(now)

	if len(s.selection) == 0 {
		if swept {
			s.persistGigsLocked()
		}
		return nil, ErrEmptySelection
	}

	slots := s.selectionLocked()
	today := now.Format(DateLayout)
	nowMinute := now.Hour()*60 + now.Minute()
	for _, slot := range slots {
		if slot.Date == today && slot.Start <= nowMinute {
			return nil, ErrSlotInPast
		}
	}

	if err := ValidateSelection(slots); err != nil {
		return nil, err
	}

	created, err := s.ledger.Book(s.riderID, ContiguousRuns(slots), now)
	if err != nil {
		return nil, err
	}

	s.selection = make(map[string]models.TimeSlot)
	s.persistGigsLocked()
	s.deps.Logger.Info("gigs booked",
		zap.String("riderId", s.riderID), zap.Int("count", len(created)))
	return created, nil
}

func (s *Session) scheduleReminders(gigs []models.Gig) {
	if s.deps.Reminder == nil {
		return
	}
	now := s.deps.Clock.Now()
	for _, g := range gigs {
		startAt, err := minuteAsTime(g.Date, g.Start, now.Location())
		if err != nil {
			continue
		}
		fireAt := startAt.Add(-reminderLead)
		if !fireAt.After(now) {
			continue
		}
		payload := models.ReminderPayload{
			ReminderID: uuid.New().String(),
			RiderID:    s.riderID,
			GigID:      g.ID,
			FireDate:   fireAt.Format(time.RFC3339),
			Title:      "Your gig starts soon",
			Body:       "Gig " + g.Date + " " + minuteLabel(g.Start) + " starts in 15 minutes. Go online to start earning.",
		}
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		if err := s.deps.Reminder.ScheduleGigReminder(ctx, payload, fireAt); err != nil {
			s.deps.Logger.Warn("failed to schedule gig reminder",
				zap.String("gigId", g.ID), zap.Error(err))
		}
		cancel()
	}
}

// Gigs returns the ledger after advancing lifecycle states.
func (s *Session) Gigs() []models.Gig {
	s.mu.Lock()
	changed := s.ledger.Sweep(s.deps.Clock.Now())
	if changed {
		s.persistGigsLocked()
	}
	gigs := s.ledger.Gigs()
	s.mu.Unlock()
	if changed {
		s.notify()
	}
	return gigs
}

// TodayProgress recomputes the home-screen summary.
func (s *Session) TodayProgress() models.DailyProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.deps.Clock.Now()
	if s.ledger.Sweep(now) {
		s.persistGigsLocked()
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	return ComputeTodayProgress(ctx, s.ledger, s.deps.Earnings, s.deps.Orders, now)
}

func (s *Session) persistGigsLocked() {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	raw, err := json.Marshal(s.ledger.Gigs())
	if err != nil {
		s.deps.Logger.Error("failed to encode gigs", zap.Error(err))
		return
	}
	if err := s.deps.Store.Set(ctx, gigsKey(s.riderID), raw); err != nil {
		s.deps.Logger.Warn("failed to persist gigs, in-memory state remains authoritative",
			zap.String("riderId", s.riderID), zap.Error(err))
	}
}

func (s *Session) persistStateLocked() {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	raw, err := json.Marshal(s.state)
	if err != nil {
		s.deps.Logger.Error("failed to encode availability state", zap.Error(err))
		return
	}
	if err := s.deps.Store.Set(ctx, availabilityKey(s.riderID), raw); err != nil {
		s.deps.Logger.Warn("failed to persist availability state, in-memory state remains authoritative",
			zap.String("riderId", s.riderID), zap.Error(err))
	}
}
