package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/courtside/booking-backend/internal/auth"
	"github.com/courtside/booking-backend/internal/credit"
)

// Service defines business logic related to user profiles.
type Service interface {
	Register(ctx context.Context, email, password, displayName string) (*User, error)
	Login(ctx context.Context, email, password string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

// GrantLedger records the starting-credit grant in the credit log, so the
// ledger explains the opening balance of every profile.
type GrantLedger interface {
	RecordTransaction(ctx context.Context, tx *credit.Transaction) error
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher
	ledger GrantLedger

	minPasswordLength int
	startingCredits   int64
}

// NewService creates a new user Service. startingCredits is granted to every
// new profile so users can book before their first top-up.
func NewService(repo Repository, hasher auth.PasswordHasher, ledger GrantLedger, startingCredits int64) Service {
	return &service{
		repo:              repo,
		hasher:            hasher,
		ledger:            ledger,
		minPasswordLength: 8,
		startingCredits:   startingCredits,
	}
}

func (s *service) Register(ctx context.Context, email, password, displayName string) (*User, error) {
	cleanEmail := normalizeEmail(email)
	if cleanEmail == "" {
		return nil, fmt.Errorf("email is required")
	}

	if len(password) < s.minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters", s.minPasswordLength)
	}

	// Check if email is already used.
	_, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err == nil {
		return nil, ErrEmailAlreadyUsed
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var displayNamePtr *string
	if strings.TrimSpace(displayName) != "" {
		d := strings.TrimSpace(displayName)
		displayNamePtr = &d
	}

	u := &User{
		Email:         cleanEmail,
		PasswordHash:  hash,
		DisplayName:   displayNamePtr,
		CreditBalance: s.startingCredits,
		IsActive:      true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	// The balance already landed with the profile row; the ledger entry is
	// best effort so a log failure never loses the registration.
	if s.startingCredits > 0 && s.ledger != nil {
		_ = s.ledger.RecordTransaction(ctx, &credit.Transaction{
			UserID: u.ID,
			Amount: s.startingCredits,
			Type:   credit.TypeGrant,
			Note:   "starting credit grant",
		})
	}

	return u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	cleanEmail := normalizeEmail(email)
	if cleanEmail == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}

	if !u.IsActive {
		return nil, ErrInactiveUser
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Best effort; a failed last-login update must not fail the login.
	now := time.Now().UTC()
	_ = s.repo.UpdateLastLogin(ctx, u.ID, now)

	return u, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// normalizeEmail trims spaces and lowercases the email.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
