package notification

import (
	"context"

	"github.com/courtside/booking-backend/internal/notify"
)

type Service interface {
	List(ctx context.Context, filter Filter) ([]*Notification, int, error)
	MarkRead(ctx context.Context, id, userID string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Notification, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) MarkRead(ctx context.Context, id, userID string) error {
	return s.repo.MarkRead(ctx, id, userID)
}

// InboxDispatcher turns lifecycle events into inbox rows for the addressed
// counterparty. It satisfies notify.Dispatcher so it can sit in the same
// fan-out as the message-queue publisher.
type InboxDispatcher struct {
	repo Repository
}

func NewInboxDispatcher(repo Repository) *InboxDispatcher {
	return &InboxDispatcher{repo: repo}
}

func (d *InboxDispatcher) Dispatch(ctx context.Context, event notify.Event) error {
	return d.repo.Create(ctx, &Notification{
		UserID:    event.CounterpartyID,
		Type:      event.Type,
		BookingID: event.BookingID,
		Amount:    event.Amount,
		Reason:    event.Reason,
	})
}
