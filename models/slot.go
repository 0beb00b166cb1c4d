package models

import "fmt"

// MealCategory buckets a slot by its start time. It is used for grouping and
// display only and carries no scheduling weight.
type MealCategory string

const (
	MealBreakfast MealCategory = "breakfast"
	MealLunch     MealCategory = "lunch"
	MealDinner    MealCategory = "dinner"
)

// PayRate is the advertised per-hour earnings band for a slot.
type PayRate struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// TimeSlot represents one bookable window on a given date.
type TimeSlot struct {
	Date         string       `json:"date"`  // e.g., "2026-03-14"
	Start        int          `json:"start"` // minutes from midnight (e.g., 600 for 10:00)
	End          int          `json:"end"`   // minutes from midnight (e.g., 720 for 12:00)
	Label        string       `json:"label"` // e.g., "10:00 - 12:00"
	MealCategory MealCategory `json:"mealCategory"`
	PayRate      PayRate      `json:"payRate"`
}

// Key returns the value identity of a slot. Two slots with the same key refer
// to the same bookable window regardless of annotations.
func (s TimeSlot) Key() string {
	return fmt.Sprintf("%s#%d#%d", s.Date, s.Start, s.End)
}

// Hours returns the slot duration in hours.
func (s TimeSlot) Hours() float64 {
	return float64(s.End-s.Start) / 60.0
}

// SlotView is a TimeSlot annotated for the rider-facing slot picker.
type SlotView struct {
	TimeSlot
	IsBooked   bool `json:"isBooked"`
	IsSelected bool `json:"isSelected"`
}

// BookableDate is one entry of the level-gated booking horizon.
type BookableDate struct {
	Date       string `json:"date"`
	Weekday    string `json:"weekday"`
	IsToday    bool   `json:"isToday"`
	IsTomorrow bool   `json:"isTomorrow"`
}
