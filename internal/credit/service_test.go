package credit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	balances map[string]int64
	log      []*Transaction
}

func (r *fakeRepository) GetBalance(ctx context.Context, userID string) (int64, error) {
	bal, ok := r.balances[userID]
	if !ok {
		return 0, ErrNotFound
	}
	return bal, nil
}

func (r *fakeRepository) Debit(ctx context.Context, userID string, amount int64) error {
	bal, ok := r.balances[userID]
	if !ok {
		return ErrNotFound
	}
	if bal < amount {
		return ErrInsufficientFunds
	}
	r.balances[userID] = bal - amount
	return nil
}

func (r *fakeRepository) Credit(ctx context.Context, userID string, amount int64) error {
	if _, ok := r.balances[userID]; !ok {
		return ErrNotFound
	}
	r.balances[userID] += amount
	return nil
}

func (r *fakeRepository) AppendTransaction(ctx context.Context, tx *Transaction) error {
	r.log = append(r.log, tx)
	return nil
}

func (r *fakeRepository) ListTransactions(ctx context.Context, userID string, page, pageSize int) ([]*Transaction, int, error) {
	return r.log, len(r.log), nil
}

func newTestService(balances map[string]int64) (Service, *fakeRepository) {
	repo := &fakeRepository{balances: balances}
	return NewService(repo), repo
}

func TestDebitValidatesAmount(t *testing.T) {
	svc, repo := newTestService(map[string]int64{"u1": 500})

	require.ErrorIs(t, svc.Debit(context.Background(), "u1", 0), ErrInvalidAmount)
	require.ErrorIs(t, svc.Debit(context.Background(), "u1", -10), ErrInvalidAmount)
	assert.Equal(t, int64(500), repo.balances["u1"])
}

func TestDebitInsufficientFunds(t *testing.T) {
	svc, repo := newTestService(map[string]int64{"u1": 100})

	require.ErrorIs(t, svc.Debit(context.Background(), "u1", 200), ErrInsufficientFunds)
	assert.Equal(t, int64(100), repo.balances["u1"])
}

func TestDebitToZeroAllowed(t *testing.T) {
	svc, repo := newTestService(map[string]int64{"u1": 200})

	require.NoError(t, svc.Debit(context.Background(), "u1", 200))
	assert.Equal(t, int64(0), repo.balances["u1"])
}

func TestDebitUnknownUser(t *testing.T) {
	svc, _ := newTestService(map[string]int64{})
	require.ErrorIs(t, svc.Debit(context.Background(), "nobody", 100), ErrNotFound)
}

func TestCreditValidatesAmount(t *testing.T) {
	svc, _ := newTestService(map[string]int64{"u1": 0})
	require.ErrorIs(t, svc.Credit(context.Background(), "u1", 0), ErrInvalidAmount)
}

func TestTopUpMovesBalanceAndLogs(t *testing.T) {
	svc, repo := newTestService(map[string]int64{"u1": 50})

	balance, err := svc.TopUp(context.Background(), "u1", 150)
	require.NoError(t, err)
	assert.Equal(t, int64(200), balance)

	require.Len(t, repo.log, 1)
	assert.Equal(t, TypeTopUp, repo.log[0].Type)
	assert.Equal(t, int64(150), repo.log[0].Amount)
}

func TestTopUpRejectsNonPositive(t *testing.T) {
	svc, repo := newTestService(map[string]int64{"u1": 50})

	_, err := svc.TopUp(context.Background(), "u1", -5)
	require.ErrorIs(t, err, ErrInvalidAmount)
	assert.Empty(t, repo.log)
}
