package credit

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/courtside/booking-backend/internal/pkg/apperror"
)

// Repository is the storage contract for the credit ledger. Debit must be a
// single conditional update so two racing debits for the last unit of credit
// cannot both succeed.
type Repository interface {
	GetBalance(ctx context.Context, userID string) (int64, error)
	// Debit decreases the balance iff balance >= amount, returning
	// ErrInsufficientFunds otherwise. Never read-modify-write.
	Debit(ctx context.Context, userID string, amount int64) error
	// Credit increases the balance; ErrNotFound if the profile is missing.
	Credit(ctx context.Context, userID string, amount int64) error

	AppendTransaction(ctx context.Context, tx *Transaction) error
	ListTransactions(ctx context.Context, userID string, page, pageSize int) ([]*Transaction, int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) GetBalance(ctx context.Context, userID string) (int64, error) {
	const query = `SELECT credit_balance FROM public.profiles WHERE id = $1`

	var balance int64
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, apperror.Unavailable(fmt.Errorf("get balance failed: %w", err))
	}
	return balance, nil
}

func (r *pgxRepository) Debit(ctx context.Context, userID string, amount int64) error {
	// The WHERE clause is the compare-and-set: the row is only touched when
	// the balance covers the amount, guarded by the database's own row lock.
	const query = `
		UPDATE public.profiles
		SET credit_balance = credit_balance - $1
		WHERE id = $2 AND credit_balance >= $1
	`

	ct, err := r.pool.Exec(ctx, query, amount, userID)
	if err != nil {
		return apperror.Unavailable(fmt.Errorf("debit failed: %w", err))
	}
	if ct.RowsAffected() == 0 {
		// Distinguish a missing profile from an uncovered amount.
		if _, err := r.GetBalance(ctx, userID); err != nil {
			return err
		}
		return ErrInsufficientFunds
	}
	return nil
}

func (r *pgxRepository) Credit(ctx context.Context, userID string, amount int64) error {
	const query = `
		UPDATE public.profiles
		SET credit_balance = credit_balance + $1
		WHERE id = $2
	`

	ct, err := r.pool.Exec(ctx, query, amount, userID)
	if err != nil {
		return apperror.Unavailable(fmt.Errorf("credit failed: %w", err))
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) AppendTransaction(ctx context.Context, t *Transaction) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.credit_transactions").
		Columns("user_id", "amount", "type", "booking_id", "note").
		Values(t.UserID, t.Amount, t.Type, t.BookingID, t.Note).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build append transaction query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&t.ID, &t.CreatedAt)
}

func (r *pgxRepository) ListTransactions(ctx context.Context, userID string, page, pageSize int) ([]*Transaction, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "user_id", "amount", "type", "booking_id", "note", "created_at",
		"count(*) OVER() AS total_count",
	).
		From("public.credit_transactions").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list transactions query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions failed: %w", err)
	}
	defer rows.Close()

	var txs []*Transaction
	var total int

	for rows.Next() {
		var t Transaction
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.Amount, &t.Type, &t.BookingID, &t.Note, &t.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan transaction failed: %w", err)
		}
		txs = append(txs, &t)
	}

	return txs, total, nil
}
