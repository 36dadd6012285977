package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/courtside/booking-backend/internal/credit"
	"github.com/courtside/booking-backend/internal/pkg/apperror"
)

type Repository interface {
	// Create inserts the booking. The bookings table carries an exclusion
	// constraint over (court_id, interval) for non-terminal rows, so a
	// concurrent overlapping insert surfaces here as ErrSlotUnavailable
	// even when the pre-check passed. A replayed idempotency key surfaces
	// as ErrDuplicateAttempt.
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// UpdateStatus advances the booking iff it is still in the expected
	// status, returning ErrInvalidState when the guard fails.
	UpdateStatus(ctx context.Context, id string, expected, next Status) error

	// CancelAndRefund marks the booking cancelled and restores the debited
	// amount to the owner's balance in one database transaction. Partial
	// application (cancelled but unrefunded or vice versa) must be
	// impossible; a missing refund profile aborts with ErrRefundProfileGone.
	CancelAndRefund(ctx context.Context, id string, reason string, refundUserID string, amount int64) error

	// HasOverlap checks for any pending/active booking on the court whose
	// interval overlaps [start, end). excludeID ignores the booking itself
	// during edits.
	HasOverlap(ctx context.Context, courtID string, start, end time.Time, excludeID string) (bool, error)

	// GetCurrentForUser returns the user's next pending/active booking that
	// has not yet ended, or ErrNotFound.
	GetCurrentForUser(ctx context.Context, userID string) (*Booking, error)

	// CompleteElapsed advances every active booking whose end has passed,
	// returning the number of rows touched.
	CompleteElapsed(ctx context.Context) (int64, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("user_id", "court_id", "package_id", "start_time", "end_time", "status", "total_amount", "idempotency_key").
		Values(b.UserID, b.CourtID, b.PackageID, b.StartTime, b.EndTime, b.Status, b.TotalAmount, b.IdempotencyKey).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) {
			switch e.Code {
			case pgerrcode.ExclusionViolation:
				return ErrSlotUnavailable
			case pgerrcode.UniqueViolation:
				return ErrDuplicateAttempt
			}
		}
		return apperror.Unavailable(fmt.Errorf("create booking failed: %w", err))
	}
	return nil
}

const bookingColumns = `
	b.id, b.user_id, p.display_name, b.court_id, c.name, c.owner_id,
	b.package_id, b.start_time, b.end_time, b.status, b.total_amount,
	b.cancel_reason, b.idempotency_key, b.created_at, b.updated_at
`

const bookingJoins = `
	FROM public.bookings b
	JOIN public.courts c ON b.court_id = c.id
	JOIN public.profiles p ON b.user_id = p.id
`

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	if err := row.Scan(
		&b.ID, &b.UserID, &b.UserName, &b.CourtID, &b.CourtName, &b.CourtOwnerID,
		&b.PackageID, &b.StartTime, &b.EndTime, &b.Status, &b.TotalAmount,
		&b.CancelReason, &b.IdempotencyKey, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query := "SELECT " + bookingColumns + bookingJoins + " WHERE b.id = $1"
	return scanBooking(r.pool.QueryRow(ctx, query, id))
}

func (r *pgxRepository) GetByIdempotencyKey(ctx context.Context, key string) (*Booking, error) {
	query := "SELECT " + bookingColumns + bookingJoins + " WHERE b.idempotency_key = $1"
	return scanBooking(r.pool.QueryRow(ctx, query, key))
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"b.id", "b.user_id", "p.display_name", "b.court_id", "c.name", "c.owner_id",
		"b.package_id", "b.start_time", "b.end_time", "b.status", "b.total_amount",
		"b.cancel_reason", "b.idempotency_key", "b.created_at", "b.updated_at",
		"count(*) OVER() AS total_count",
	).
		From("public.bookings b").
		Join("public.courts c ON b.court_id = c.id").
		Join("public.profiles p ON b.user_id = p.id")

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"b.user_id": filter.UserID})
	}
	if filter.CourtID != "" {
		query = query.Where(squirrel.Eq{"b.court_id": filter.CourtID})
	}
	if filter.OwnerID != "" {
		query = query.Where(squirrel.Eq{"c.owner_id": filter.OwnerID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	// Date range filtering (intersection logic)
	if filter.From != nil {
		query = query.Where(squirrel.GtOrEq{"b.end_time": filter.From})
	}
	if filter.To != nil {
		query = query.Where(squirrel.LtOrEq{"b.start_time": filter.To})
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.OrderBy("b.start_time DESC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.UserName, &b.CourtID, &b.CourtName, &b.CourtOwnerID,
			&b.PackageID, &b.StartTime, &b.EndTime, &b.Status, &b.TotalAmount,
			&b.CancelReason, &b.IdempotencyKey, &b.CreatedAt, &b.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, expected, next Status) error {
	const query = `
		UPDATE public.bookings
		SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3
	`

	ct, err := r.pool.Exec(ctx, query, next, id, expected)
	if err != nil {
		return apperror.Unavailable(fmt.Errorf("update booking status failed: %w", err))
	}
	if ct.RowsAffected() == 0 {
		return ErrInvalidState
	}
	return nil
}

func (r *pgxRepository) CancelAndRefund(ctx context.Context, id string, reason string, refundUserID string, amount int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return apperror.Unavailable(fmt.Errorf("begin cancel transaction failed: %w", err))
	}
	defer tx.Rollback(ctx)

	// Guarded status flip; failing the guard means the UI acted on stale state.
	ct, err := tx.Exec(ctx, `
		UPDATE public.bookings
		SET status = 'cancelled', cancel_reason = $1, updated_at = now()
		WHERE id = $2 AND status IN ('pending', 'active')
	`, reason, id)
	if err != nil {
		return fmt.Errorf("cancel booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrInvalidState
	}

	// Refund is unconditional. Zero rows here means the profile vanished,
	// which is an inconsistency that must abort the whole transaction.
	ct, err = tx.Exec(ctx, `
		UPDATE public.profiles
		SET credit_balance = credit_balance + $1
		WHERE id = $2
	`, amount, refundUserID)
	if err != nil {
		return fmt.Errorf("refund failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrRefundProfileGone
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO public.credit_transactions (user_id, amount, type, booking_id, note)
		VALUES ($1, $2, $3, $4, $5)
	`, refundUserID, amount, credit.TypeRefund, id, reason); err != nil {
		return fmt.Errorf("record refund transaction failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.Unavailable(fmt.Errorf("commit cancel transaction failed: %w", err))
	}
	return nil
}

func (r *pgxRepository) HasOverlap(ctx context.Context, courtID string, start, end time.Time, excludeID string) (bool, error) {
	// Strict half-open overlap: existing.start < newEnd AND existing.end > newStart.
	// Only pending/active rows block a slot.
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	subQuery := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"court_id": courtID}).
		Where(squirrel.Eq{"status": []string{string(StatusPending), string(StatusActive)}}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start})

	if excludeID != "" {
		subQuery = subQuery.Where(squirrel.NotEq{"id": excludeID})
	}

	sql, args, err := subQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("build check overlap query failed: %w", err)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, "SELECT EXISTS ("+sql+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check overlap failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) GetCurrentForUser(ctx context.Context, userID string) (*Booking, error) {
	query := "SELECT " + bookingColumns + bookingJoins + `
		WHERE b.user_id = $1
		  AND b.status IN ('pending', 'active')
		  AND b.end_time > now()
		ORDER BY b.start_time ASC
		LIMIT 1
	`
	return scanBooking(r.pool.QueryRow(ctx, query, userID))
}

func (r *pgxRepository) CompleteElapsed(ctx context.Context) (int64, error) {
	const query = `
		UPDATE public.bookings
		SET status = 'completed', updated_at = now()
		WHERE status = 'active' AND end_time <= now()
	`

	ct, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("complete elapsed bookings failed: %w", err)
	}
	return ct.RowsAffected(), nil
}
