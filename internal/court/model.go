package court

import (
	"net/http"
	"time"

	"github.com/courtside/booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, apperror.KindStaleState, "court not found")
	ErrInactive         = apperror.New(http.StatusConflict, apperror.KindStaleState, "court is not active")
	ErrNameRequired     = apperror.New(http.StatusBadRequest, apperror.KindUserCorrectable, "court name is required")
	ErrInvalidPrice     = apperror.New(http.StatusBadRequest, apperror.KindUserCorrectable, "price per hour must be a positive integer")
	ErrInvalidHours     = apperror.New(http.StatusBadRequest, apperror.KindUserCorrectable, "opening hours are invalid")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, apperror.KindStaleState, "permission denied")
)

// Court is a bookable unit owned by exactly one user. Prices are in the
// smallest currency unit per hour; opening hours are minutes from midnight
// in the court's local day.
type Court struct {
	ID           string
	OwnerID      string
	Name         string
	Description  string
	PricePerHour int64
	OpenMinute   int
	CloseMinute  int
	AutoApprove  bool
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// WithinHours reports whether the half-open interval [start, end) falls
// inside the court's opening hours on a single day.
func (ct *Court) WithinHours(start, end time.Time) bool {
	if !sameDay(start, end) && !endsAtMidnight(start, end) {
		return false
	}

	startMin := start.Hour()*60 + start.Minute()
	endMin := end.Hour()*60 + end.Minute()
	if endMin == 0 {
		endMin = 24 * 60
	}

	return startMin >= ct.OpenMinute && endMin <= ct.CloseMinute
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func endsAtMidnight(start, end time.Time) bool {
	next := start.AddDate(0, 0, 1)
	ny, nm, nd := next.Date()
	ey, em, ed := end.Date()
	return ny == ey && nm == em && nd == ed && end.Hour() == 0 && end.Minute() == 0
}

// Filter defines parameters for listing courts.
type Filter struct {
	OwnerID  string
	Active   *bool
	Keyword  string
	Page     int
	PageSize int
}
