package gig

import (
	"reflect"
	"testing"
	"time"

	"dashdine/models"
)

// 2026-03-11 is a Wednesday.
var wednesday = time.Date(2026, 3, 11, 9, 30, 0, 0, time.UTC)

func TestAvailableDates(t *testing.T) {
	dates, err := AvailableDates(models.LevelSilver, wednesday)
	if err != nil {
		t.Fatalf("AvailableDates: %v", err)
	}
	if len(dates) != 4 {
		t.Fatalf("silver horizon: got %d dates, want 4", len(dates))
	}
	if dates[0].Date != "2026-03-11" || !dates[0].IsToday {
		t.Errorf("first date = %+v, want today 2026-03-11", dates[0])
	}
	if dates[1].Date != "2026-03-12" || !dates[1].IsTomorrow {
		t.Errorf("second date = %+v, want tomorrow 2026-03-12", dates[1])
	}
	if dates[3].IsToday || dates[3].IsTomorrow {
		t.Errorf("last date should carry no today/tomorrow mark: %+v", dates[3])
	}
}

func TestAvailableDatesUnknownLevel(t *testing.T) {
	if _, err := AvailableDates(models.RiderLevel("vip"), wednesday); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestSlotsForDateFullTemplate(t *testing.T) {
	slots, err := SlotsForDate("2026-03-12", wednesday)
	if err != nil {
		t.Fatalf("SlotsForDate: %v", err)
	}
	if len(slots) != 9 {
		t.Fatalf("got %d slots, want 9 (06:00-24:00 in 2h blocks)", len(slots))
	}
	for i, s := range slots {
		if s.End-s.Start != SlotWidthMinutes {
			t.Errorf("slot %d width = %d", i, s.End-s.Start)
		}
		if i > 0 && slots[i-1].End != s.Start {
			t.Errorf("template has a gap before slot %d", i)
		}
	}
	if slots[0].Start != OpeningMinute {
		t.Errorf("first slot starts at %d, want %d", slots[0].Start, OpeningMinute)
	}
	if slots[len(slots)-1].End != ClosingMinute {
		t.Errorf("last slot ends at %d, want %d", slots[len(slots)-1].End, ClosingMinute)
	}
}

func TestSlotsForDateTodayFiltersPastStarts(t *testing.T) {
	// At 09:30 the 06:00 and 08:00 slots have started; 10:00 onward remain.
	slots, err := SlotsForDate("2026-03-11", wednesday)
	if err != nil {
		t.Fatalf("SlotsForDate: %v", err)
	}
	if len(slots) != 7 {
		t.Fatalf("got %d slots, want 7", len(slots))
	}
	if slots[0].Start != 600 {
		t.Errorf("first remaining slot starts at %d, want 600", slots[0].Start)
	}
}

func TestSlotsForDateIdempotentWithinMinute(t *testing.T) {
	a, _ := SlotsForDate("2026-03-11", wednesday)
	b, _ := SlotsForDate("2026-03-11", wednesday.Add(30*time.Second))
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same minute produced different slot sets")
	}
}

func TestMealCategoryFor(t *testing.T) {
	tests := []struct {
		start int
		want  models.MealCategory
	}{
		{360, models.MealBreakfast},
		{600, models.MealBreakfast},
		{660, models.MealLunch},
		{840, models.MealLunch},
		{960, models.MealDinner},
		{1320, models.MealDinner},
	}
	for _, tt := range tests {
		if got := MealCategoryFor(tt.start); got != tt.want {
			t.Errorf("MealCategoryFor(%d) = %s, want %s", tt.start, got, tt.want)
		}
	}
}

func TestPayRateDeterministic(t *testing.T) {
	a := PayRateFor(models.MealDinner, time.Friday)
	b := PayRateFor(models.MealDinner, time.Friday)
	if a != b {
		t.Fatalf("identical inputs priced differently: %+v vs %+v", a, b)
	}
}

func TestPayRateSpreadAndUplift(t *testing.T) {
	weekday := PayRateFor(models.MealLunch, time.Tuesday)
	weekend := PayRateFor(models.MealLunch, time.Saturday)

	if weekday.Max != weekday.Min*payRateSpread {
		t.Errorf("max %v is not min*%v", weekday.Max, payRateSpread)
	}
	if weekend.Min <= weekday.Min {
		t.Errorf("weekend min %v should exceed weekday min %v", weekend.Min, weekday.Min)
	}
	breakfast := PayRateFor(models.MealBreakfast, time.Tuesday)
	if breakfast.Min >= weekday.Min {
		t.Errorf("breakfast %v should price below lunch %v", breakfast.Min, weekday.Min)
	}
}

func TestWithinHorizon(t *testing.T) {
	tests := []struct {
		date string
		want bool
	}{
		{"2026-03-11", true},  // today
		{"2026-03-14", true},  // horizon edge for silver (+3)
		{"2026-03-15", false}, // one past
		{"2026-03-10", false}, // yesterday
		{"not-a-date", false},
	}
	for _, tt := range tests {
		if got := WithinHorizon(models.LevelSilver, tt.date, wednesday); got != tt.want {
			t.Errorf("WithinHorizon(silver, %s) = %v, want %v", tt.date, got, tt.want)
		}
	}
}
