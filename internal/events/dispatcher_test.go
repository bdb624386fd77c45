package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hjalloh/campsite/internal/events"
)

func TestDispatcher_PublishInvokesSubscribers(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	var received []events.Event
	dispatcher.Subscribe(events.EventBookingCreated, func(_ context.Context, e events.Event) error {
		received = append(received, e)
		return nil
	})

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:      events.EventBookingCreated,
		BookingID: 7,
	})

	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, int64(7), received[0].BookingID)
}

func TestDispatcher_IgnoresOtherEventTypes(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	called := false
	dispatcher.Subscribe(events.EventBookingCancelled, func(_ context.Context, _ events.Event) error {
		called = true
		return nil
	})

	err := dispatcher.Publish(context.Background(), events.Event{Type: events.EventBookingCreated})

	require.NoError(t, err)
	assert.False(t, called)
}

func TestDispatcher_FailingHandlerDoesNotStopDelivery(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	secondCalled := false
	dispatcher.Subscribe(events.EventBookingModified, func(_ context.Context, _ events.Event) error {
		return errors.New("handler failed")
	})
	dispatcher.Subscribe(events.EventBookingModified, func(_ context.Context, _ events.Event) error {
		secondCalled = true
		return nil
	})

	err := dispatcher.Publish(context.Background(), events.Event{Type: events.EventBookingModified})

	require.NoError(t, err)
	assert.True(t, secondCalled)
}
