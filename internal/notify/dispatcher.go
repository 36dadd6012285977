package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// Dispatcher delivers booking lifecycle events. Delivery is best effort:
// callers log and swallow errors, a failed dispatch never rolls back the
// booking operation that produced it.
type Dispatcher interface {
	Dispatch(ctx context.Context, event Event) error
}

// LogDispatcher is the fallback used when no message queue is configured.
// It only records the event so an operator can trace what would have been
// delivered.
type LogDispatcher struct {
	logger zerolog.Logger
}

func NewLogDispatcher(logger zerolog.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

// Fanout delivers the event to every dispatcher, returning the first error
// after all have been attempted.
type Fanout []Dispatcher

func (f Fanout) Dispatch(ctx context.Context, event Event) error {
	var first error
	for _, d := range f {
		if err := d.Dispatch(ctx, event); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (d *LogDispatcher) Dispatch(_ context.Context, event Event) error {
	d.logger.Info().
		Str("type", event.Type).
		Str("booking_id", event.BookingID).
		Str("counterparty_id", event.CounterpartyID).
		Int64("amount", event.Amount).
		Msg("lifecycle event (no mq configured)")
	return nil
}
