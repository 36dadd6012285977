package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailAlreadyUsed   = errors.New("email already used")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveUser       = errors.New("user is inactive")
)

// User represents a player or court-owner profile. CreditBalance is the
// app-internal balance used to pay for bookings; it is mutated only through
// the credit ledger, never written directly by this package.
type User struct {
	ID            string // UUID
	Email         string
	PasswordHash  string
	DisplayName   *string
	CreditBalance int64
	CreatedAt     time.Time
	LastLoginAt   *time.Time
	IsActive      bool
}
