package models

// RiderLevel is the rider's tenure tier. The current level is assigned by the
// platform's account service; this service only reads it.
type RiderLevel string

const (
	LevelBronze   RiderLevel = "bronze"
	LevelSilver   RiderLevel = "silver"
	LevelGold     RiderLevel = "gold"
	LevelPlatinum RiderLevel = "platinum"
)

// LevelProfile carries the booking horizon and display metadata for a tier.
type LevelProfile struct {
	Level       RiderLevel `json:"level"`
	Badge       string     `json:"badge"`
	AdvanceDays int        `json:"advanceDays"` // how far ahead booking is allowed
}
