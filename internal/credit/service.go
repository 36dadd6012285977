package credit

import (
	"context"
)

// Service is the credit ledger: one non-negative integer balance per user,
// mutated only through Debit and Credit. It does not record audit entries on
// its own; callers append the matching Transaction.
type Service interface {
	GetBalance(ctx context.Context, userID string) (int64, error)
	Debit(ctx context.Context, userID string, amount int64) error
	Credit(ctx context.Context, userID string, amount int64) error

	TopUp(ctx context.Context, userID string, amount int64) (int64, error)
	ListTransactions(ctx context.Context, userID string, page, pageSize int) ([]*Transaction, int, error)
	RecordTransaction(ctx context.Context, tx *Transaction) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetBalance(ctx context.Context, userID string) (int64, error) {
	return s.repo.GetBalance(ctx, userID)
}

func (s *service) Debit(ctx context.Context, userID string, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return s.repo.Debit(ctx, userID, amount)
}

func (s *service) Credit(ctx context.Context, userID string, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return s.repo.Credit(ctx, userID, amount)
}

// TopUp credits the balance and records the log entry, returning the new
// balance. Payment-provider integration sits in front of this call.
func (s *service) TopUp(ctx context.Context, userID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	if err := s.repo.Credit(ctx, userID, amount); err != nil {
		return 0, err
	}

	// Log entry is best effort bookkeeping; the balance move already happened.
	_ = s.repo.AppendTransaction(ctx, &Transaction{
		UserID: userID,
		Amount: amount,
		Type:   TypeTopUp,
	})

	return s.repo.GetBalance(ctx, userID)
}

func (s *service) ListTransactions(ctx context.Context, userID string, page, pageSize int) ([]*Transaction, int, error) {
	return s.repo.ListTransactions(ctx, userID, page, pageSize)
}

func (s *service) RecordTransaction(ctx context.Context, tx *Transaction) error {
	return s.repo.AppendTransaction(ctx, tx)
}
