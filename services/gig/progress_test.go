package gig

import (
	"context"
	"errors"
	"testing"
	"time"

	"dashdine/models"
)

type stubEarnings struct {
	today float64
	err   error
}

func (s *stubEarnings) PeriodEarnings(_ context.Context, period string) (float64, error) {
	return s.today, s.err
}

type stubOrders struct {
	records []models.OrderRecord
	err     error
}

func (s *stubOrders) OrdersForDate(_ context.Context, _ string) ([]models.OrderRecord, error) {
	return s.records, s.err
}

func TestTodayProgressAllZero(t *testing.T) {
	p := ComputeTodayProgress(context.Background(), NewLedger(nil), nil, nil, wednesday)
	if p.Earnings != 0 || p.Trips != 0 || p.TimeOnOrders != 0 || p.GigsCount != 0 {
		t.Fatalf("expected all-zero progress, got %+v", p)
	}
	if p.Date != "2026-03-11" {
		t.Errorf("Date = %s", p.Date)
	}
}

func TestTodayProgressToleratesFailingSources(t *testing.T) {
	earnings := &stubEarnings{err: errors.New("wallet down")}
	orders := &stubOrders{err: errors.New("history down")}
	p := ComputeTodayProgress(context.Background(), NewLedger(nil), earnings, orders, wednesday)
	if p.Earnings != 0 || p.Trips != 0 {
		t.Fatalf("failing sources should contribute zero, got %+v", p)
	}
}

func TestTodayProgressAggregates(t *testing.T) {
	started := wednesday.Add(-90 * time.Minute)
	ledger := NewLedger([]models.Gig{
		{ID: "done", Date: "2026-03-11", Start: 360, End: 480,
			TotalHours: 2, Status: models.GigStatusCompleted},
		{ID: "live", Date: "2026-03-11", Start: 480, End: 720,
			TotalHours: 4, Status: models.GigStatusActive, StartedAt: &started},
		{ID: "pending", Date: "2026-03-11", Start: 960, End: 1080,
			TotalHours: 2, Status: models.GigStatusBooked},
		{ID: "tomorrow", Date: "2026-03-12", Start: 600, End: 720,
			TotalHours: 2, Status: models.GigStatusBooked},
	})
	earnings := &stubEarnings{today: 84.5}
	orders := &stubOrders{records: []models.OrderRecord{
		{ID: "o1", Date: "2026-03-11", Status: models.OrderStatusDelivered, Amount: 12},
		{ID: "o2", Date: "2026-03-11", Status: models.OrderStatusDelivered, Amount: 9},
		{ID: "o3", Date: "2026-03-11", Status: "cancelled", Amount: 0},
	}}

	p := ComputeTodayProgress(context.Background(), ledger, earnings, orders, wednesday)
	if p.GigsCount != 3 {
		t.Errorf("GigsCount = %d, want 3 (today only)", p.GigsCount)
	}
	// 2h from the completed gig plus 1.5h elapsed on the active one.
	if p.TimeOnOrders != 3.5 {
		t.Errorf("TimeOnOrders = %v, want 3.5", p.TimeOnOrders)
	}
	if p.Earnings != 84.5 {
		t.Errorf("Earnings = %v, want 84.5", p.Earnings)
	}
	if p.Trips != 2 {
		t.Errorf("Trips = %d, want 2 (delivered only)", p.Trips)
	}
}

func TestTodayProgressCapsActiveElapsed(t *testing.T) {
	started := wednesday.Add(-10 * time.Hour)
	ledger := NewLedger([]models.Gig{
		{ID: "live", Date: "2026-03-11", Start: 360, End: 480,
			TotalHours: 2, Status: models.GigStatusActive, StartedAt: &started},
	})
	p := ComputeTodayProgress(context.Background(), ledger, nil, nil, wednesday)
	if p.TimeOnOrders != 2 {
		t.Errorf("TimeOnOrders = %v, want capped at 2", p.TimeOnOrders)
	}
}
