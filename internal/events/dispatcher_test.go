package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []Event
	d.Subscribe(EventSignedIn, func(_ context.Context, e Event) error {
		got = append(got, e)
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{ID: "1", Type: EventSignedIn}))
	require.NoError(t, d.Publish(context.Background(), Event{ID: "2", Type: EventSignedOut}))

	// Only the subscribed type is delivered.
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	d := NewInMemoryDispatcher()

	var count int
	unsubscribe := d.Subscribe(EventSignedIn, func(context.Context, Event) error {
		count++
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventSignedIn}))
	unsubscribe()
	require.NoError(t, d.Publish(context.Background(), Event{Type: EventSignedIn}))

	assert.Equal(t, 1, count)
}

func TestHandlerErrorDoesNotStopDelivery(t *testing.T) {
	d := NewInMemoryDispatcher()

	var delivered bool
	d.Subscribe(EventSignedIn, func(context.Context, Event) error {
		return errors.New("handler failed")
	})
	d.Subscribe(EventSignedIn, func(context.Context, Event) error {
		delivered = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventSignedIn}))
	assert.True(t, delivered)
}
