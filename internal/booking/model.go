package booking

import (
	"net/http"
	"time"

	"github.com/courtside/booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, apperror.KindStaleState, "booking not found")
	ErrSlotUnavailable   = apperror.New(http.StatusConflict, apperror.KindUserCorrectable, "time slot is not available")
	ErrInvalidTimeRange  = apperror.New(http.StatusBadRequest, apperror.KindUserCorrectable, "duration must be a positive number of hours")
	ErrStartTimePast     = apperror.New(http.StatusBadRequest, apperror.KindUserCorrectable, "cannot create a booking in the past")
	ErrOutsideOpenHours  = apperror.New(http.StatusBadRequest, apperror.KindUserCorrectable, "booking falls outside the court's opening hours")
	ErrInvalidState      = apperror.New(http.StatusConflict, apperror.KindStaleState, "booking is not in a state that allows this operation")
	ErrInvalidPackage    = apperror.New(http.StatusBadRequest, apperror.KindUserCorrectable, "package does not belong to this court")
	ErrPermissionDenied  = apperror.New(http.StatusForbidden, apperror.KindStaleState, "permission denied")
	ErrDuplicateAttempt  = apperror.New(http.StatusConflict, apperror.KindStaleState, "a booking for this attempt already exists")
	ErrRefundProfileGone = apperror.New(http.StatusInternalServerError, apperror.KindFatal, "refund target profile does not exist")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether no further transition is valid from s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition reports whether the lifecycle permits moving from s to next.
// pending -> active (approve), pending/active -> cancelled, active -> completed.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusActive || next == StatusCancelled
	case StatusActive:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}

// Booking reserves a court for the half-open interval [StartTime, EndTime).
// TotalAmount is in the smallest currency unit and is exactly what was
// debited on creation, so a cancellation refund is always TotalAmount.
type Booking struct {
	ID             string
	UserID         string
	UserName       *string
	CourtID        string
	CourtName      string
	CourtOwnerID   string
	PackageID      *string
	StartTime      time.Time
	EndTime        time.Time
	Status         Status
	TotalAmount    int64
	CancelReason   *string
	IdempotencyKey string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EffectiveStatus treats an active booking whose end has passed as completed.
// The row itself is advanced by the background sweep; read paths use this so
// the client never shows an elapsed booking as active.
func (b *Booking) EffectiveStatus(now time.Time) Status {
	if b.Status == StatusActive && !b.EndTime.After(now) {
		return StatusCompleted
	}
	return b.Status
}

// Filter defines parameters for listing bookings.
type Filter struct {
	UserID   string
	CourtID  string
	OwnerID  string
	Status   string
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}
