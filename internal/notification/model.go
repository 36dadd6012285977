package notification

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("notification not found")

// Notification is one in-app inbox entry, produced from a booking lifecycle
// event and addressed to the event's counterparty.
type Notification struct {
	ID        string
	UserID    string
	Type      string
	BookingID string
	Amount    int64
	Reason    string
	IsRead    bool
	CreatedAt time.Time
}

// Filter defines parameters for listing a user's notifications.
type Filter struct {
	UserID     string
	UnreadOnly bool
	Page       int
	PageSize   int
}
