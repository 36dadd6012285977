package user

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtside/booking-backend/internal/auth"
	"github.com/courtside/booking-backend/internal/credit"
)

type fakeRepository struct {
	byEmail map[string]*User
	nextID  int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byEmail: make(map[string]*User)}
}

func (r *fakeRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (r *fakeRepository) GetByID(ctx context.Context, id string) (*User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepository) Create(ctx context.Context, u *User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return ErrEmailAlreadyUsed
	}
	r.nextID++
	u.ID = fmt.Sprintf("user-%d", r.nextID)
	u.CreatedAt = time.Now()
	r.byEmail[u.Email] = u
	return nil
}

func (r *fakeRepository) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	for _, u := range r.byEmail {
		if u.ID == id {
			u.LastLoginAt = &t
			return nil
		}
	}
	return ErrNotFound
}

// fakeGrantLedger collects recorded grant transactions.
type fakeGrantLedger struct {
	log []*credit.Transaction
}

func (l *fakeGrantLedger) RecordTransaction(ctx context.Context, tx *credit.Transaction) error {
	l.log = append(l.log, tx)
	return nil
}

func newTestService(startingCredits int64) (Service, *fakeRepository, *fakeGrantLedger) {
	repo := newFakeRepository()
	ledger := &fakeGrantLedger{}
	return NewService(repo, auth.NewBcryptPasswordHasherWithCost(4), ledger, startingCredits), repo, ledger
}

func TestRegisterGrantsStartingCredits(t *testing.T) {
	svc, _, ledger := newTestService(100000)

	u, err := svc.Register(context.Background(), "Player@Example.com", "password123", "Player One")
	require.NoError(t, err)

	assert.Equal(t, "player@example.com", u.Email, "email is normalized")
	assert.Equal(t, int64(100000), u.CreditBalance)
	assert.True(t, u.IsActive)
	require.NotNil(t, u.DisplayName)
	assert.Equal(t, "Player One", *u.DisplayName)

	// The opening balance is traceable through the credit log.
	require.Len(t, ledger.log, 1)
	assert.Equal(t, u.ID, ledger.log[0].UserID)
	assert.Equal(t, int64(100000), ledger.log[0].Amount)
	assert.Equal(t, credit.TypeGrant, ledger.log[0].Type)
}

func TestRegisterWithoutGrantSkipsLedger(t *testing.T) {
	svc, _, ledger := newTestService(0)

	u, err := svc.Register(context.Background(), "a@b.com", "password123", "")
	require.NoError(t, err)
	assert.Zero(t, u.CreditBalance)
	assert.Empty(t, ledger.log)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc, _, _ := newTestService(0)

	_, err := svc.Register(context.Background(), "a@b.com", "short", "")
	assert.Error(t, err)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(0)

	_, err := svc.Register(context.Background(), "a@b.com", "password123", "")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "A@B.com", "password123", "")
	require.ErrorIs(t, err, ErrEmailAlreadyUsed)
}

func TestLoginRoundTrip(t *testing.T) {
	svc, _, _ := newTestService(0)

	registered, err := svc.Register(context.Background(), "a@b.com", "password123", "")
	require.NoError(t, err)

	u, err := svc.Login(context.Background(), "a@b.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)
	assert.NotNil(t, u.LastLoginAt)

	_, err = svc.Login(context.Background(), "a@b.com", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "missing@b.com", "password123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	svc, repo, _ := newTestService(0)

	_, err := svc.Register(context.Background(), "a@b.com", "password123", "")
	require.NoError(t, err)
	repo.byEmail["a@b.com"].IsActive = false

	_, err = svc.Login(context.Background(), "a@b.com", "password123")
	require.ErrorIs(t, err, ErrInactiveUser)
}
