package http

import (
	"time"

	"github.com/courtside/booking-backend/internal/notification"
	"github.com/courtside/booking-backend/internal/pkg/request"
)

type ListNotificationsRequest struct {
	request.ListParams
	UnreadOnly bool `form:"unread_only"`
}

type NotificationResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	BookingID string    `json:"booking_id"`
	Amount    int64     `json:"amount"`
	Reason    string    `json:"reason,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func NewNotificationResponse(n *notification.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		BookingID: n.BookingID,
		Amount:    n.Amount,
		Reason:    n.Reason,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
