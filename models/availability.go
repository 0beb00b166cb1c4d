package models

// AvailabilityState is the rider's persisted online/offline switch. IsOnline
// may only be true while an eligible gig exists; ActiveGigID records which gig
// justified the flag.
type AvailabilityState struct {
	IsOnline    bool   `json:"isOnline"`
	ActiveGigID string `json:"activeGigId,omitempty"`
}
