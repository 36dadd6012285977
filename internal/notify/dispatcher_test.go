package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDispatcher struct {
	events []Event
	err    error
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, event Event) error {
	d.events = append(d.events, event)
	return d.err
}

func TestFanoutDeliversToAll(t *testing.T) {
	a := &recordingDispatcher{}
	b := &recordingDispatcher{}
	f := Fanout{a, b}

	err := f.Dispatch(context.Background(), Event{Type: TypeBookingCreated, BookingID: "b1"})
	require.NoError(t, err)
	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1)
}

func TestFanoutContinuesPastFailure(t *testing.T) {
	boom := errors.New("broker down")
	a := &recordingDispatcher{err: boom}
	b := &recordingDispatcher{}
	f := Fanout{a, b}

	err := f.Dispatch(context.Background(), Event{Type: TypeBookingCancelled})
	require.ErrorIs(t, err, boom)
	assert.Len(t, b.events, 1, "later dispatchers still run after a failure")
}

func TestRoutingKey(t *testing.T) {
	assert.Equal(t, "booking.created", Event{Type: TypeBookingCreated}.RoutingKey())
	assert.Equal(t, "booking.approved", Event{Type: TypeBookingApproved}.RoutingKey())
	assert.Equal(t, "booking.rejected", Event{Type: TypeBookingRejected}.RoutingKey())
	assert.Equal(t, "booking.cancelled", Event{Type: TypeBookingCancelled}.RoutingKey())
	assert.Equal(t, "booking.unknown", Event{Type: "something_else"}.RoutingKey())
}
