package models

import "time"

// GigStatus is the lifecycle state of a committed booking.
type GigStatus string

const (
	GigStatusBooked    GigStatus = "booked"
	GigStatusActive    GigStatus = "active"
	GigStatusCompleted GigStatus = "completed"
	GigStatusExpired   GigStatus = "expired"
	GigStatusCancelled GigStatus = "cancelled"
)

// Gig is a committed, contiguous booking of one or more slots on a single
// date. Once created only Status and StartedAt change.
type Gig struct {
	ID         string     `json:"id"`
	RiderID    string     `json:"riderId"`
	Date       string     `json:"date"`
	Start      int        `json:"start"` // minutes from midnight
	End        int        `json:"end"`   // minutes from midnight
	Slots      []TimeSlot `json:"slots"`
	TotalHours float64    `json:"totalHours"`
	Status     GigStatus  `json:"status"`
	StartedAt  *time.Time `json:"startedAt,omitempty"` // set on first transition to active
	CreatedAt  time.Time  `json:"createdAt"`
}

// IsLive reports whether the gig still counts for scheduling purposes.
// Cancelled gigs release their slots; all other statuses hold them.
func (g Gig) IsLive() bool {
	return g.Status != GigStatusCancelled
}

// IsEligible reports whether the gig can justify the rider being online.
func (g Gig) IsEligible() bool {
	return g.Status == GigStatusBooked || g.Status == GigStatusActive
}
