package gig

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"dashdine/database/kv"
	"dashdine/models"
)

// KV-backed collaborator sources. Wallet balances, completed orders and the
// rider's level are written elsewhere in the platform; this service reads
// them through the same key-value contract it persists with. Absent keys
// yield zero values.

type walletRecord struct {
	Today float64 `json:"today"`
	Week  float64 `json:"week"`
}

// KVEarningsSource reads period earnings from the rider's wallet record.
type KVEarningsSource struct {
	Store   kv.Store
	RiderID string
}

func (e *KVEarningsSource) PeriodEarnings(ctx context.Context, period string) (float64, error) {
	raw, err := e.Store.Get(ctx, "rider:"+e.RiderID+":wallet")
	if err != nil {
		return 0, err
	}
	if raw == nil {
		return 0, nil
	}
	var w walletRecord
	if err := json.Unmarshal(raw, &w); err != nil {
		return 0, err
	}
	switch period {
	case "week":
		return w.Week, nil
	case "today":
		return w.Today, nil
	default:
		return 0, fmt.Errorf("unknown earnings period %q", period)
	}
}

// KVOrderHistorySource reads completed-order records per date.
type KVOrderHistorySource struct {
	Store   kv.Store
	RiderID string
}

func (o *KVOrderHistorySource) OrdersForDate(ctx context.Context, date string) ([]models.OrderRecord, error) {
	raw, err := o.Store.Get(ctx, "rider:"+o.RiderID+":orders:"+date)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	var records []models.OrderRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// KVLevelSource reads the rider's tenure level, defaulting to the lowest
// tier when no level has been assigned.
type KVLevelSource struct {
	Store   kv.Store
	RiderID string
}

func (l *KVLevelSource) CurrentLevel(ctx context.Context) (models.RiderLevel, error) {
	raw, err := l.Store.Get(ctx, "rider:"+l.RiderID+":level")
	if err != nil {
		return "", err
	}
	if raw == nil {
		return LowestLevel, nil
	}
	level := models.RiderLevel(strings.Trim(strings.TrimSpace(string(raw)), `"`))
	if level == "" {
		return LowestLevel, nil
	}
	return level, nil
}
