package models

// DailyProgress is the derived summary shown on the rider home screen. It is
// recomputed on read and never persisted as a source of truth.
type DailyProgress struct {
	Date         string  `json:"date"`
	Earnings     float64 `json:"earnings"`
	Trips        int     `json:"trips"`
	TimeOnOrders float64 `json:"timeOnOrders"` // hours
	GigsCount    int     `json:"gigsCount"`
}

// OrderRecord is a completed-order entry as written by the order service.
// Only the fields this service reads are modeled.
type OrderRecord struct {
	ID     string  `json:"id"`
	Date   string  `json:"date"`
	Status string  `json:"status"`
	Amount float64 `json:"amount"`
}

const OrderStatusDelivered = "delivered"
