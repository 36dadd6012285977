package notify

// Event type values emitted by the booking lifecycle.
const (
	TypeBookingCreated   = "booking_created"
	TypeBookingApproved  = "booking_approved"
	TypeBookingRejected  = "booking_rejected"
	TypeBookingCancelled = "booking_cancelled"
)

// Event is the lifecycle payload delivered to the notification pipeline.
// CounterpartyID is the user the notification is addressed to: the court
// owner for player actions, the player for owner actions.
type Event struct {
	Type           string `json:"type"`
	BookingID      string `json:"booking_id"`
	CourtID        string `json:"court_id"`
	UserID         string `json:"user_id"`
	CounterpartyID string `json:"counterparty_id"`
	Amount         int64  `json:"amount"`
	Reason         string `json:"reason,omitempty"`
}

// RoutingKey maps the event type to a topic routing key, e.g.
// booking_cancelled -> booking.cancelled.
func (e Event) RoutingKey() string {
	switch e.Type {
	case TypeBookingCreated:
		return "booking.created"
	case TypeBookingApproved:
		return "booking.approved"
	case TypeBookingRejected:
		return "booking.rejected"
	case TypeBookingCancelled:
		return "booking.cancelled"
	default:
		return "booking.unknown"
	}
}
