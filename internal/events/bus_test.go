package events_test

import (
	"testing"
	"time"

	"github.com/quarterline/arcade-circuit/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForEvent(t *testing.T, ch <-chan events.Event) events.Event {
	t.Helper()
	select {
	case evt, ok := <-ch:
		require.True(t, ok, "channel closed before an event arrived")
		return evt
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return events.Event{}
	}
}

func TestPublishSubscribe(t *testing.T) {
	bus := events.NewBus()
	defer bus.Close()

	ch, unsubscribe, err := bus.Subscribe(events.TypeCreated)
	require.NoError(t, err)
	defer unsubscribe()

	err = bus.Publish(events.Event{
		Type:         events.TypeCreated,
		TournamentID: "t1",
		Entity:       map[string]any{"name": "Cup"},
	})
	require.NoError(t, err)

	evt := waitForEvent(t, ch)
	assert.Equal(t, events.TypeCreated, evt.Type)
	assert.Equal(t, "t1", evt.TournamentID)
	assert.NotZero(t, evt.OccurredAt)
}

func TestSubscribeFiltersTypes(t *testing.T) {
	bus := events.NewBus()
	defer bus.Close()

	ch, unsubscribe, err := bus.Subscribe(events.TypeCompleted)
	require.NoError(t, err)
	defer unsubscribe()

	require.NoError(t, bus.Publish(events.Event{Type: events.TypeCreated, TournamentID: "t1"}))
	require.NoError(t, bus.Publish(events.Event{Type: events.TypeCompleted, TournamentID: "t1"}))

	evt := waitForEvent(t, ch)
	assert.Equal(t, events.TypeCompleted, evt.Type)
}

func TestErrorEventCarriesDescriptor(t *testing.T) {
	bus := events.NewBus()
	defer bus.Close()

	ch, unsubscribe, err := bus.Subscribe(events.TypeError)
	require.NoError(t, err)
	defer unsubscribe()

	require.NoError(t, bus.Publish(events.Event{
		Type:         events.TypeError,
		TournamentID: "t1",
		Error:        &events.Error{Op: "start", Message: "not enough participants"},
	}))

	evt := waitForEvent(t, ch)
	require.NotNil(t, evt.Error)
	assert.Equal(t, "start", evt.Error.Op)
	assert.Equal(t, "not enough participants", evt.Error.Message)
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	bus := events.NewBus()
	defer bus.Close()

	ch, unsubscribe, err := bus.Subscribe(events.TypeCreated)
	require.NoError(t, err)

	unsubscribe()
	// Calling it twice is fine.
	unsubscribe()

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel should be closed after unsubscribe")
	case <-time.After(2 * time.Second):
		t.Fatal("channel was not closed after unsubscribe")
	}
}

func TestOrderWithinTournamentSequence(t *testing.T) {
	bus := events.NewBus()
	defer bus.Close()

	// A subscriber to every type must see one tournament's lifecycle in
	// publish order even though the events carry different types.
	ch, unsubscribe, err := bus.Subscribe()
	require.NoError(t, err)
	defer unsubscribe()

	sequence := []events.Type{
		events.TypeCreated,
		events.TypeParticipantJoin,
		events.TypeStarted,
		events.TypeCompleted,
	}
	for _, eventType := range sequence {
		require.NoError(t, bus.Publish(events.Event{Type: eventType, TournamentID: "t1"}))
	}

	for _, eventType := range sequence {
		evt := waitForEvent(t, ch)
		assert.Equal(t, eventType, evt.Type)
		assert.Equal(t, "t1", evt.TournamentID)
	}
}

func TestOrderAcrossTournaments(t *testing.T) {
	bus := events.NewBus()
	defer bus.Close()

	ch, unsubscribe, err := bus.Subscribe(events.TypeStarted)
	require.NoError(t, err)
	defer unsubscribe()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, bus.Publish(events.Event{Type: events.TypeStarted, TournamentID: id}))
	}

	assert.Equal(t, "a", waitForEvent(t, ch).TournamentID)
	assert.Equal(t, "b", waitForEvent(t, ch).TournamentID)
	assert.Equal(t, "c", waitForEvent(t, ch).TournamentID)
}
