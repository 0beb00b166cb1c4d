package gig

import (
	"fmt"
	"time"

	"dashdine/models"
)

// DateLayout is the calendar-day encoding used across persisted state and the
// API surface.
const DateLayout = "2006-01-02"

// Slot schedule constants. The operating window is partitioned into
// fixed-width blocks; every date shares the same template.
const (
	OpeningMinute    = 6 * 60  // 06:00
	ClosingMinute    = 24 * 60 // midnight
	SlotWidthMinutes = 120
)

// Meal category boundaries, minutes from midnight.
const (
	lunchStartMinute  = 11 * 60
	dinnerStartMinute = 16 * 60
)

// Deterministic pay-rate inputs. Peak categories and weekends carry a higher
// base; the max is a fixed spread over the min so displayed "earn up to"
// figures are stable across renders.
const (
	breakfastBaseRate = 6.0
	lunchBaseRate     = 9.0
	dinnerBaseRate    = 10.0
	weekendUplift     = 1.25
	payRateSpread     = 1.5
)

// AvailableDates returns today through today+horizon inclusive for the given
// level, annotated for display.
func AvailableDates(level models.RiderLevel, today time.Time) ([]models.BookableDate, error) {
	horizon, err := HorizonDays(level)
	if err != nil {
		return nil, err
	}

	dates := make([]models.BookableDate, 0, horizon+1)
	for offset := 0; offset <= horizon; offset++ {
		day := today.AddDate(0, 0, offset)
		dates = append(dates, models.BookableDate{
			Date:       day.Format(DateLayout),
			Weekday:    day.Weekday().String(),
			IsToday:    offset == 0,
			IsTomorrow: offset == 1,
		})
	}
	return dates, nil
}

// WithinHorizon reports whether date falls inside [today, today+horizon] for
// the level. A malformed date is simply outside every horizon.
func WithinHorizon(level models.RiderLevel, date string, today time.Time) bool {
	horizon, err := HorizonDays(level)
	if err != nil {
		return false
	}
	d, err := time.ParseInLocation(DateLayout, date, today.Location())
	if err != nil {
		return false
	}
	start := midnight(today)
	end := start.AddDate(0, 0, horizon)
	return !d.Before(start) && !d.After(end)
}

// SlotsForDate generates the full slot template for a date, ordered by start.
// When date is today, slots whose start minute has passed are excluded; the
// comparison is at minute resolution, so repeated calls within the same
// minute return the same set.
func SlotsForDate(date string, now time.Time) ([]models.TimeSlot, error) {
	day, err := time.ParseInLocation(DateLayout, date, now.Location())
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", date, err)
	}

	isToday := date == now.Format(DateLayout)
	nowMinute := now.Hour()*60 + now.Minute()

	var slots []models.TimeSlot
	for start := OpeningMinute; start+SlotWidthMinutes <= ClosingMinute; start += SlotWidthMinutes {
		if isToday && start <= nowMinute {
			continue
		}
		end := start + SlotWidthMinutes
		category := MealCategoryFor(start)
		slots = append(slots, models.TimeSlot{
			Date:         date,
			Start:        start,
			End:          end,
			Label:        fmt.Sprintf("%s - %s", minuteLabel(start), minuteLabel(end)),
			MealCategory: category,
			PayRate:      PayRateFor(category, day.Weekday()),
		})
	}
	return slots, nil
}

// MealCategoryFor buckets a start minute into breakfast, lunch or dinner.
func MealCategoryFor(startMinute int) models.MealCategory {
	switch {
	case startMinute < lunchStartMinute:
		return models.MealBreakfast
	case startMinute < dinnerStartMinute:
		return models.MealLunch
	default:
		return models.MealDinner
	}
}

// PayRateFor derives the advertised per-hour band from the meal category and
// day of week. Pure; identical inputs always price identically.
func PayRateFor(category models.MealCategory, weekday time.Weekday) models.PayRate {
	var base float64
	switch category {
	case models.MealLunch:
		base = lunchBaseRate
	case models.MealDinner:
		base = dinnerBaseRate
	default:
		base = breakfastBaseRate
	}
	if weekday == time.Saturday || weekday == time.Sunday {
		base *= weekendUplift
	}
	return models.PayRate{Min: base, Max: base * payRateSpread}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// minuteAsTime resolves a minutes-from-midnight offset on a date to an
// absolute time. Minute 1440 lands on the following midnight.
func minuteAsTime(date string, minute int, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(time.Duration(minute) * time.Minute), nil
}

func minuteLabel(minute int) string {
	return fmt.Sprintf("%02d:%02d", (minute/60)%24, minute%60)
}
