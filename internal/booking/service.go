package booking

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/courtside/booking-backend/internal/court"
	"github.com/courtside/booking-backend/internal/credit"
	"github.com/courtside/booking-backend/internal/metrics"
	"github.com/courtside/booking-backend/internal/notify"
)

// CreateRequest carries one booking attempt. IdempotencyKey identifies the
// attempt across client retries: replaying the same key returns the booking
// created by the first attempt instead of debiting again.
type CreateRequest struct {
	UserID         string
	CourtID        string
	StartTime      time.Time
	DurationHours  int
	PackageID      *string
	IdempotencyKey string
}

// Service is the booking lifecycle manager. It owns the strictly ordered
// conflict-check -> debit -> insert sequence on creation and the
// transactional cancel-and-refund on the way out.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id, viewerID string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	GetActiveForUser(ctx context.Context, userID string) (*Booking, error)

	Approve(ctx context.Context, id, actorID string) (*Booking, error)
	Reject(ctx context.Context, id, actorID, reason string) (*Booking, error)
	Cancel(ctx context.Context, id, actorID, reason string) (*Booking, error)

	// CheckSlotConflict is the caller-facing pre-check. It fails closed:
	// a store error reports a conflict rather than letting a possibly
	// unsafe booking through.
	CheckSlotConflict(ctx context.Context, courtID string, start, end time.Time) (bool, error)

	// CompleteElapsed advances elapsed active bookings; run periodically.
	CompleteElapsed(ctx context.Context) (int64, error)
}

type service struct {
	repo         Repository
	courtService court.Service
	ledger       credit.Service
	dispatcher   notify.Dispatcher
	logger       zerolog.Logger
	now          func() time.Time
}

func NewService(
	repo Repository,
	courtService court.Service,
	ledger credit.Service,
	dispatcher notify.Dispatcher,
	logger zerolog.Logger,
) Service {
	return &service{
		repo:         repo,
		courtService: courtService,
		ledger:       ledger,
		dispatcher:   dispatcher,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	if req.DurationHours <= 0 {
		return nil, ErrInvalidTimeRange
	}

	now := s.now().UTC()
	if req.StartTime.Before(now) {
		return nil, ErrStartTimePast
	}
	endTime := req.StartTime.Add(time.Duration(req.DurationHours) * time.Hour)

	ct, err := s.courtService.GetByID(ctx, req.CourtID)
	if err != nil {
		return nil, err
	}
	if !ct.IsActive {
		return nil, court.ErrInactive
	}
	if !ct.WithinHours(req.StartTime, endTime) {
		return nil, ErrOutsideOpenHours
	}

	totalAmount := ct.PricePerHour * int64(req.DurationHours)
	if req.PackageID != nil {
		pkg, err := s.courtService.GetPackage(ctx, *req.PackageID)
		if err != nil {
			return nil, err
		}
		if pkg.CourtID != ct.ID {
			return nil, ErrInvalidPackage
		}
		totalAmount = pkg.Price
	}

	// A retried attempt must not debit twice: look up the attempt before
	// touching the balance. A store error here is retryable, not safe to
	// press on through. A key minted by another user never replays their
	// booking to the caller.
	if req.IdempotencyKey != "" {
		existing, err := s.repo.GetByIdempotencyKey(ctx, req.IdempotencyKey)
		if err == nil {
			if existing.UserID != req.UserID {
				return nil, ErrDuplicateAttempt
			}
			return existing, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}

	// Fast-path pre-check. Fail closed on lookup errors: a false conflict
	// costs the user a retry, a false all-clear costs a double booking.
	hasOverlap, err := s.repo.HasOverlap(ctx, req.CourtID, req.StartTime, endTime, "")
	if err != nil {
		s.logger.Warn().Err(err).Str("court_id", req.CourtID).Msg("overlap check failed, reporting conflict")
		return nil, ErrSlotUnavailable
	}
	if hasOverlap {
		metrics.IncSlotConflict()
		return nil, ErrSlotUnavailable
	}

	// Debit before insert so a failed insert can always be compensated by
	// a refund. The order is load-bearing and must not change.
	if err := s.ledger.Debit(ctx, req.UserID, totalAmount); err != nil {
		if errors.Is(err, credit.ErrInsufficientFunds) {
			metrics.IncDebitRejected()
		}
		return nil, err
	}

	status := StatusPending
	if ct.AutoApprove {
		status = StatusActive
	}

	b := &Booking{
		UserID:         req.UserID,
		CourtID:        req.CourtID,
		PackageID:      req.PackageID,
		StartTime:      req.StartTime,
		EndTime:        endTime,
		Status:         status,
		TotalAmount:    totalAmount,
		IdempotencyKey: req.IdempotencyKey,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		cerr := s.compensateFailedInsert(ctx, req, totalAmount, err)
		var replay *replayError
		if errors.As(cerr, &replay) {
			return replay.booking, nil
		}
		return nil, cerr
	}
	b.CourtName = ct.Name
	b.CourtOwnerID = ct.OwnerID

	// Bookkeeping entry for the debit; the balance already moved.
	bookingID := b.ID
	if err := s.ledger.RecordTransaction(ctx, &credit.Transaction{
		UserID:    req.UserID,
		Amount:    -totalAmount,
		Type:      credit.TypeDebit,
		BookingID: &bookingID,
	}); err != nil {
		s.logger.Warn().Err(err).Str("booking_id", b.ID).Msg("failed to record debit transaction")
	}

	metrics.IncBookingCreated(string(status))
	s.dispatch(notify.Event{
		Type:           notify.TypeBookingCreated,
		BookingID:      b.ID,
		CourtID:        b.CourtID,
		UserID:         b.UserID,
		CounterpartyID: ct.OwnerID,
		Amount:         totalAmount,
	})

	return b, nil
}

// compensateFailedInsert reverses the debit applied before a failed insert.
// The store's exclusion constraint is the true serialization point for
// overlapping attempts, so losing the insert race is a normal outcome that
// maps to SlotUnavailable after the refund.
func (s *service) compensateFailedInsert(ctx context.Context, req CreateRequest, amount int64, insertErr error) error {
	if refundErr := s.ledger.Credit(ctx, req.UserID, amount); refundErr != nil {
		// Debited, not booked, refund failed: the one state we can never
		// leave silent. Surface it for the operator queue.
		s.logger.Error().
			Err(refundErr).
			AnErr("insert_error", insertErr).
			Str("user_id", req.UserID).
			Int64("amount", amount).
			Msg("FATAL: failed to refund debit after booking insert failed")
		return ErrRefundProfileGone
	}

	switch {
	case errors.Is(insertErr, ErrSlotUnavailable):
		metrics.IncSlotConflict()
		return ErrSlotUnavailable
	case errors.Is(insertErr, ErrDuplicateAttempt):
		// A concurrent retry of this same attempt won the insert. Replay it,
		// but only back to the user who owns the attempt.
		if req.IdempotencyKey != "" {
			if existing, err := s.repo.GetByIdempotencyKey(ctx, req.IdempotencyKey); err == nil && existing.UserID == req.UserID {
				return &replayError{booking: existing}
			}
		}
		return ErrDuplicateAttempt
	default:
		return insertErr
	}
}

// replayError smuggles the already-created booking out of the compensation
// path; Create unwraps it so a duplicate attempt is a success, not an error.
type replayError struct {
	booking *Booking
}

func (e *replayError) Error() string { return "booking attempt already completed" }

func (s *service) GetByID(ctx context.Context, id, viewerID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != viewerID && b.CourtOwnerID != viewerID {
		return nil, ErrPermissionDenied
	}
	return b, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) GetActiveForUser(ctx context.Context, userID string) (*Booking, error) {
	return s.repo.GetCurrentForUser(ctx, userID)
}

func (s *service) Approve(ctx context.Context, id, actorID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.CourtOwnerID != actorID {
		return nil, ErrPermissionDenied
	}
	if b.Status != StatusPending {
		return nil, ErrInvalidState
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusPending, StatusActive); err != nil {
		return nil, err
	}
	b.Status = StatusActive

	s.dispatch(notify.Event{
		Type:           notify.TypeBookingApproved,
		BookingID:      b.ID,
		CourtID:        b.CourtID,
		UserID:         actorID,
		CounterpartyID: b.UserID,
		Amount:         b.TotalAmount,
	})

	return b, nil
}

func (s *service) Reject(ctx context.Context, id, actorID, reason string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.CourtOwnerID != actorID {
		return nil, ErrPermissionDenied
	}
	if b.Status != StatusPending {
		return nil, ErrInvalidState
	}

	if err := s.cancelWithRefund(ctx, b, reason); err != nil {
		return nil, err
	}

	metrics.IncBookingCancelled("owner")
	s.dispatch(notify.Event{
		Type:           notify.TypeBookingRejected,
		BookingID:      b.ID,
		CourtID:        b.CourtID,
		UserID:         actorID,
		CounterpartyID: b.UserID,
		Amount:         b.TotalAmount,
		Reason:         reason,
	})

	return b, nil
}

func (s *service) Cancel(ctx context.Context, id, actorID, reason string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	isPlayer := b.UserID == actorID
	isOwner := b.CourtOwnerID == actorID
	if !isPlayer && !isOwner {
		return nil, ErrPermissionDenied
	}
	if b.Status.Terminal() {
		return nil, ErrInvalidState
	}

	if err := s.cancelWithRefund(ctx, b, reason); err != nil {
		return nil, err
	}

	// The counterparty gets notified: owner for a player cancellation,
	// player for an owner cancellation.
	counterparty := b.CourtOwnerID
	by := "player"
	if isOwner && !isPlayer {
		counterparty = b.UserID
		by = "owner"
	}

	metrics.IncBookingCancelled(by)
	s.dispatch(notify.Event{
		Type:           notify.TypeBookingCancelled,
		BookingID:      b.ID,
		CourtID:        b.CourtID,
		UserID:         actorID,
		CounterpartyID: counterparty,
		Amount:         b.TotalAmount,
		Reason:         reason,
	})

	return b, nil
}

// cancelWithRefund commits the status flip and the refund as one unit and
// mirrors the result onto b.
func (s *service) cancelWithRefund(ctx context.Context, b *Booking, reason string) error {
	if err := s.repo.CancelAndRefund(ctx, b.ID, reason, b.UserID, b.TotalAmount); err != nil {
		if errors.Is(err, ErrRefundProfileGone) {
			s.logger.Error().
				Str("booking_id", b.ID).
				Str("user_id", b.UserID).
				Int64("amount", b.TotalAmount).
				Msg("FATAL: refund target profile missing, cancellation aborted")
		}
		return err
	}
	b.Status = StatusCancelled
	b.CancelReason = &reason
	return nil
}

func (s *service) CheckSlotConflict(ctx context.Context, courtID string, start, end time.Time) (bool, error) {
	if !end.After(start) {
		return true, ErrInvalidTimeRange
	}

	hasOverlap, err := s.repo.HasOverlap(ctx, courtID, start, end, "")
	if err != nil {
		s.logger.Warn().Err(err).Str("court_id", courtID).Msg("overlap check failed, reporting conflict")
		return true, nil
	}
	return hasOverlap, nil
}

func (s *service) CompleteElapsed(ctx context.Context) (int64, error) {
	n, err := s.repo.CompleteElapsed(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info().Int64("count", n).Msg("completed elapsed bookings")
	}
	return n, nil
}

// dispatch sends a lifecycle event without ever blocking or failing the
// booking operation that produced it.
func (s *service) dispatch(event notify.Event) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.dispatcher.Dispatch(ctx, event); err != nil {
			metrics.IncNotifyFailure()
			s.logger.Warn().
				Err(err).
				Str("type", event.Type).
				Str("booking_id", event.BookingID).
				Msg("failed to dispatch lifecycle event")
		}
	}()
}
