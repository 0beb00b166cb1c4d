package models

// ReminderPayload is the task body for a scheduled gig-start reminder.
type ReminderPayload struct {
	ReminderID string `json:"reminderId"`
	RiderID    string `json:"riderId"`
	GigID      string `json:"gigId"`
	FireDate   string `json:"fireDate"`
	Title      string `json:"title"`
	Body       string `json:"body"`
}
