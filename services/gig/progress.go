package gig

import (
	"context"
	"time"

	"dashdine/models"
)

// ComputeTodayProgress assembles the rider home-screen summary from the
// ledger plus the external earnings and order-history sources. Read-only; a
// collaborator returning an error or nothing contributes zero.
func ComputeTodayProgress(ctx context.Context, ledger *Ledger, earnings EarningsSource, orders OrderHistorySource, now time.Time) models.DailyProgress {
	today := now.Format(DateLayout)
	progress := models.DailyProgress{Date: today}

	for _, g := range ledger.GigsForDate(today) {
		progress.GigsCount++
		switch g.Status {
		case models.GigStatusCompleted:
			progress.TimeOnOrders += g.TotalHours
		case models.GigStatusActive:
			if g.StartedAt != nil {
				elapsed := now.Sub(*g.StartedAt).Hours()
				if elapsed < 0 {
					elapsed = 0
				}
				if elapsed > g.TotalHours {
					elapsed = g.TotalHours
				}
				progress.TimeOnOrders += elapsed
			}
		}
	}

	if earnings != nil {
		if amount, err := earnings.PeriodEarnings(ctx, "today"); err == nil {
			progress.Earnings = amount
		}
	}

	if orders != nil {
		if records, err := orders.OrdersForDate(ctx, today); err == nil {
			for _, r := range records {
				if r.Status == "" || r.Status == models.OrderStatusDelivered {
					progress.Trips++
				}
			}
		}
	}

	return progress
}
