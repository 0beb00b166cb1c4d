package gig

import (
	"context"
	"errors"
	"testing"
	"time"

	"dashdine/database/kv"
	"dashdine/models"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type staticLevel struct {
	level models.RiderLevel
}

func (s staticLevel) CurrentLevel(context.Context) (models.RiderLevel, error) {
	return s.level, nil
}

// failingStore accepts reads but rejects every write.
type failingStore struct {
	kv.Store
}

func (f *failingStore) Set(context.Context, string, []byte) error {
	return errors.New("quota exceeded")
}

func newTestSession(store kv.Store, clock Clock) *Session {
	return NewSession("r1", Deps{
		Store:  store,
		Clock:  clock,
		Levels: staticLevel{models.LevelSilver},
	})
}

func mustToggle(t *testing.T, s *Session, date string, start, end int) {
	t.Helper()
	if err := s.ToggleSlotSelection(date, start, end); err != nil {
		t.Fatalf("ToggleSlotSelection(%s %d-%d): %v", date, start, end, err)
	}
}

func TestBookContiguousSelection(t *testing.T) {
	store := kv.NewMemoryStore()
	s := newTestSession(store, &fakeClock{wednesday})

	mustToggle(t, s, "2026-03-11", 600, 720)
	mustToggle(t, s, "2026-03-11", 720, 840)

	gigs, err := s.BookSelection()
	if err != nil {
		t.Fatalf("BookSelection: %v", err)
	}
	if len(gigs) != 1 {
		t.Fatalf("got %d gigs, want 1", len(gigs))
	}
	if gigs[0].TotalHours != 4 {
		t.Errorf("TotalHours = %v, want 4", gigs[0].TotalHours)
	}
	if gigs[0].Status != models.GigStatusBooked {
		t.Errorf("Status = %s, want booked", gigs[0].Status)
	}
	if got := len(s.Selection()); got != 0 {
		t.Errorf("selection not cleared, %d entries remain", got)
	}

	// A fresh session over the same store sees the booking.
	reloaded := newTestSession(store, &fakeClock{wednesday})
	if got := len(reloaded.Gigs()); got != 1 {
		t.Errorf("reloaded session has %d gigs, want 1", got)
	}
}

func TestBookGapLeavesLedgerUnchanged(t *testing.T) {
	s := newTestSession(kv.NewMemoryStore(), &fakeClock{wednesday})
	mustToggle(t, s, "2026-03-11", 600, 720)
	mustToggle(t, s, "2026-03-11", 840, 960)

	_, err := s.BookSelection()
	var gapErr *GapError
	if !errors.As(err, &gapErr) {
		t.Fatalf("want GapError, got %v", err)
	}
	if got := len(s.Gigs()); got != 0 {
		t.Errorf("ledger has %d gigs after failed booking, want 0", got)
	}
	if got := len(s.Selection()); got != 2 {
		t.Errorf("selection should survive a failed booking, has %d", got)
	}
}

func TestBookEmptySelection(t *testing.T) {
	s := newTestSession(kv.NewMemoryStore(), &fakeClock{wednesday})
	if _, err := s.BookSelection(); !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("want ErrEmptySelection, got %v", err)
	}
}

func TestBookOneGigPerDate(t *testing.T) {
	s := newTestSession(kv.NewMemoryStore(), &fakeClock{wednesday})
	mustToggle(t, s, "2026-03-11", 600, 720)
	mustToggle(t, s, "2026-03-12", 960, 1080)
	mustToggle(t, s, "2026-03-12", 1080, 1200)

	gigs, err := s.BookSelection()
	if err != nil {
		t.Fatalf("BookSelection: %v", err)
	}
	if len(gigs) != 2 {
		t.Fatalf("got %d gigs, want one per date", len(gigs))
	}
}

func TestToggleRejectsPastSlot(t *testing.T) {
	s := newTestSession(kv.NewMemoryStore(), &fakeClock{wednesday})
	// 08:00-10:00 started before 09:30.
	if err := s.ToggleSlotSelection("2026-03-11", 480, 600); !errors.Is(err, ErrSlotInPast) {
		t.Fatalf("want ErrSlotInPast, got %v", err)
	}
}

func TestToggleRejectsOutOfHorizon(t *testing.T) {
	s := newTestSession(kv.NewMemoryStore(), &fakeClock{wednesday})
	// Silver may book through 2026-03-14.
	if err := s.ToggleSlotSelection("2026-03-15", 600, 720); !errors.Is(err, ErrOutOfHorizon) {
		t.Fatalf("want ErrOutOfHorizon, got %v", err)
	}
}

func TestToggleRejectsOffGridWindow(t *testing.T) {
	s := newTestSession(kv.NewMemoryStore(), &fakeClock{wednesday})
	if err := s.ToggleSlotSelection("2026-03-12", 605, 725); !errors.Is(err, ErrUnknownSlot) {
		t.Fatalf("want ErrUnknownSlot, got %v", err)
	}
}

func TestToggleRejectsBookedSlot(t *testing.T) {
	s := newTestSession(kv.NewMemoryStore(), &fakeClock{wednesday})
	mustToggle(t, s, "2026-03-11", 600, 720)
	if _, err := s.BookSelection(); err != nil {
		t.Fatalf("BookSelection: %v", err)
	}
	if err := s.ToggleSlotSelection("2026-03-11", 600, 720); !errors.Is(err, ErrSlotOverlap) {
		t.Fatalf("want ErrSlotOverlap, got %v", err)
	}

	views, err := s.SlotsForDate("2026-03-11")
	if err != nil {
		t.Fatalf("SlotsForDate: %v", err)
	}
	for _, v := range views {
		if v.Start == 600 && !v.IsBooked {
			t.Error("booked slot not annotated as booked")
		}
	}
}

func TestToggleTwiceDeselects(t *testing.T) {
	s := newTestSession(kv.NewMemoryStore(), &fakeClock{wednesday})
	mustToggle(t, s, "2026-03-11", 600, 720)
	mustToggle(t, s, "2026-03-11", 600, 720)
	if got := len(s.Selection()); got != 0 {
		t.Fatalf("selection has %d entries after toggle-toggle, want 0", got)
	}
}

func TestGoOnlineWithoutGig(t *testing.T) {
	s := newTestSession(kv.NewMemoryStore(), &fakeClock{wednesday})
	if _, err := s.GoOnline(); !errors.Is(err, ErrNoEligibleGig) {
		t.Fatalf("want ErrNoEligibleGig, got %v", err)
	}
	if s.Availability().IsOnline {
		t.Error("rider flipped online without an eligible gig")
	}
}

func TestGoOnlineActivatesTodaysGig(t *testing.T) {
	s := newTestSession(kv.NewMemoryStore(), &fakeClock{wednesday})
	mustToggle(t, s, "2026-03-11", 600, 720)
	if _, err := s.BookSelection(); err != nil {
		t.Fatalf("BookSelection: %v", err)
	}

	g, err := s.GoOnline()
	if err != nil {
		t.Fatalf("GoOnline: %v", err)
	}
	if g.Status != models.GigStatusActive {
		t.Errorf("gig status = %s, want active", g.Status)
	}
	if g.StartedAt == nil {
		t.Error("StartedAt not stamped on activation")
	}
	state := s.Availability()
	if !state.IsOnline || state.ActiveGigID != g.ID {
		t.Errorf("availability = %+v", state)
	}
}

func TestGoOfflineKeepsGigActive(t *testing.T) {
	s := newTestSession(kv.NewMemoryStore(), &fakeClock{wednesday})
	mustToggle(t, s, "2026-03-11", 600, 720)
	if _, err := s.BookSelection(); err != nil {
		t.Fatalf("BookSelection: %v", err)
	}
	if _, err := s.GoOnline(); err != nil {
		t.Fatalf("GoOnline: %v", err)
	}

	s.GoOffline()
	if s.Availability().IsOnline {
		t.Fatal("still online after GoOffline")
	}
	gigs := s.Gigs()
	if len(gigs) != 1 || gigs[0].Status != models.GigStatusActive {
		t.Fatalf("gig should stay active through a pause, got %+v", gigs)
	}
}

func TestReloadDropsStaleOnlineFlag(t *testing.T) {
	store := kv.NewMemoryStore()
	clock := &fakeClock{wednesday}
	s := newTestSession(store, clock)
	mustToggle(t, s, "2026-03-11", 600, 720)
	if _, err := s.BookSelection(); err != nil {
		t.Fatalf("BookSelection: %v", err)
	}
	if _, err := s.GoOnline(); err != nil {
		t.Fatalf("GoOnline: %v", err)
	}

	// Restart after the gig window has closed.
	reloaded := newTestSession(store, &fakeClock{time.Date(2026, 3, 11, 12, 1, 0, 0, time.UTC)})
	if reloaded.Availability().IsOnline {
		t.Fatal("stale online flag survived reload past the gig window")
	}
	gigs := reloaded.Gigs()
	if len(gigs) != 1 || gigs[0].Status != models.GigStatusCompleted {
		t.Fatalf("active gig past its end should complete on load, got %+v", gigs)
	}
}

func TestReloadExpiresUnactivatedGig(t *testing.T) {
	store := kv.NewMemoryStore()
	s := newTestSession(store, &fakeClock{wednesday})
	mustToggle(t, s, "2026-03-11", 600, 720)
	if _, err := s.BookSelection(); err != nil {
		t.Fatalf("BookSelection: %v", err)
	}

	reloaded := newTestSession(store, &fakeClock{time.Date(2026, 3, 11, 12, 1, 0, 0, time.UTC)})
	gigs := reloaded.Gigs()
	if len(gigs) != 1 || gigs[0].Status != models.GigStatusExpired {
		t.Fatalf("never-activated gig past its end should expire, got %+v", gigs)
	}
	if _, err := reloaded.GoOnline(); !errors.Is(err, ErrNoEligibleGig) {
		t.Fatalf("expired gig must not support going online, got %v", err)
	}
}

func TestObserverFiresAfterMutations(t *testing.T) {
	s := newTestSession(kv.NewMemoryStore(), &fakeClock{wednesday})
	fired := 0
	s.OnChange(func() { fired++ })

	mustToggle(t, s, "2026-03-11", 600, 720)
	if fired != 0 {
		t.Fatal("selection changes are session-local and must not notify")
	}
	if _, err := s.BookSelection(); err != nil {
		t.Fatalf("BookSelection: %v", err)
	}
	if fired != 1 {
		t.Fatalf("fired = %d after booking, want 1", fired)
	}
	if _, err := s.GoOnline(); err != nil {
		t.Fatalf("GoOnline: %v", err)
	}
	s.GoOffline()
	if fired != 3 {
		t.Fatalf("fired = %d after online+offline, want 3", fired)
	}
}

func TestPersistenceFailureKeepsSessionAuthoritative(t *testing.T) {
	store := &failingStore{kv.NewMemoryStore()}
	s := newTestSession(store, &fakeClock{wednesday})
	mustToggle(t, s, "2026-03-11", 600, 720)

	gigs, err := s.BookSelection()
	if err != nil {
		t.Fatalf("booking must succeed despite a failed write, got %v", err)
	}
	if len(gigs) != 1 {
		t.Fatalf("got %d gigs, want 1", len(gigs))
	}
	if got := len(s.Gigs()); got != 1 {
		t.Errorf("in-memory ledger lost the gig, has %d", got)
	}
}

func TestUnknownStoredLevelFallsBack(t *testing.T) {
	store := kv.NewMemoryStore()
	s := NewSession("r1", Deps{
		Store:  store,
		Clock:  &fakeClock{wednesday},
		Levels: staticLevel{models.RiderLevel("mythic")},
	})
	dates, err := s.AvailableDates()
	if err != nil {
		t.Fatalf("AvailableDates: %v", err)
	}
	// Lowest tier books today plus one day.
	if len(dates) != 2 {
		t.Fatalf("got %d dates, want the bronze horizon of 2", len(dates))
	}
}
