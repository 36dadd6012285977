package http

import (
	"time"

	"github.com/courtside/booking-backend/internal/credit"
)

type BalanceResponse struct {
	Balance int64 `json:"balance"`
}

type TopUpRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

type TransactionResponse struct {
	ID        string    `json:"id"`
	Amount    int64     `json:"amount"`
	Type      string    `json:"type"`
	BookingID *string   `json:"booking_id,omitempty"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewTransactionResponse(t *credit.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        t.ID,
		Amount:    t.Amount,
		Type:      string(t.Type),
		BookingID: t.BookingID,
		Note:      t.Note,
		CreatedAt: t.CreatedAt,
	}
}
