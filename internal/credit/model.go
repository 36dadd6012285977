package credit

import (
	"net/http"
	"time"

	"github.com/courtside/booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, apperror.KindStaleState, "profile not found")
	ErrInsufficientFunds = apperror.New(http.StatusPaymentRequired, apperror.KindUserCorrectable, "insufficient credit balance")
	ErrInvalidAmount     = apperror.New(http.StatusBadRequest, apperror.KindUserCorrectable, "amount must be a positive integer")
)

// TransactionType labels entries in the append-only credit log.
type TransactionType string

const (
	TypeDebit  TransactionType = "debit"
	TypeRefund TransactionType = "refund"
	TypeTopUp  TransactionType = "topup"
	TypeGrant  TransactionType = "grant"
)

// Transaction is one entry in the append-only credit log. The ledger itself
// only moves the balance; callers record the matching Transaction so every
// balance change can be traced back to a booking or top-up.
type Transaction struct {
	ID        string
	UserID    string
	Amount    int64 // positive for credits, negative for debits
	Type      TransactionType
	BookingID *string
	Note      string
	CreatedAt time.Time
}
