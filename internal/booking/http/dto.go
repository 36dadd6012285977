package http

import (
	"time"

	"github.com/courtside/booking-backend/internal/booking"
	courtHttp "github.com/courtside/booking-backend/internal/court/http"
	"github.com/courtside/booking-backend/internal/pkg/request"
	userHttp "github.com/courtside/booking-backend/internal/user/http"
)

type CreateBookingRequest struct {
	CourtID       string    `json:"court_id" binding:"required,uuid"`
	StartTime     time.Time `json:"start_time" binding:"required"`
	DurationHours int       `json:"duration_hours" binding:"required,gt=0"`
	PackageID     *string   `json:"package_id" binding:"omitempty,uuid"`
	// IdempotencyKey may also arrive via the Idempotency-Key header; the
	// handler mints one when the client sends neither.
	IdempotencyKey string `json:"idempotency_key" binding:"omitempty,uuid"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

type ListBookingsRequest struct {
	request.ListParams
	CourtID string     `form:"court_id" binding:"omitempty,uuid"`
	Status  string     `form:"status" binding:"omitempty,oneof=pending active completed cancelled"`
	Role    string     `form:"role" binding:"omitempty,oneof=player owner"`
	From    *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To      *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}

type ConflictCheckRequest struct {
	CourtID   string    `form:"court_id" binding:"required,uuid"`
	StartTime time.Time `form:"start_time" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	EndTime   time.Time `form:"end_time" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}

type ConflictCheckResponse struct {
	Conflict bool `json:"conflict"`
}

type BookingResponse struct {
	ID           string              `json:"id"`
	Court        courtHttp.CourtTag  `json:"court"`
	User         userHttp.UserTag    `json:"user"`
	PackageID    *string             `json:"package_id,omitempty"`
	StartTime    time.Time           `json:"start_time"`
	EndTime      time.Time           `json:"end_time"`
	Status       string              `json:"status"`
	TotalAmount  int64               `json:"total_amount"`
	CancelReason *string             `json:"cancel_reason,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:           b.ID,
		Court:        courtHttp.CourtTag{ID: b.CourtID, Name: b.CourtName},
		User:         userHttp.UserTag{ID: b.UserID, Name: b.UserName},
		PackageID:    b.PackageID,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		Status:       string(b.EffectiveStatus(time.Now().UTC())),
		TotalAmount:  b.TotalAmount,
		CancelReason: b.CancelReason,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}
