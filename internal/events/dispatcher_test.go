package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherInvokesSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var seen []Event
	dispatcher.Subscribe(EventLeadAssigned, func(_ context.Context, event Event) error {
		seen = append(seen, event)
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventLeadAssigned, SubjectID: "lead-1"})
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.Equal(t, "lead-1", seen[0].SubjectID)

	// unrelated event types do not reach the subscriber
	err = dispatcher.Publish(context.Background(), Event{Type: EventDoubtResolved})
	require.NoError(t, err)
	assert.Len(t, seen, 1)
}

func TestDispatcherContinuesAfterHandlerError(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	calls := 0
	dispatcher.Subscribe(EventDoubtSubmitted, func(context.Context, Event) error {
		calls++
		return errors.New("boom")
	})
	dispatcher.Subscribe(EventDoubtSubmitted, func(context.Context, Event) error {
		calls++
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventDoubtSubmitted})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestNewActorDerivesRole(t *testing.T) {
	actor := NewActor("bob.tutor@doutly.com")
	assert.Equal(t, "bob.tutor@doutly.com", actor.Email)
	assert.Equal(t, "tutor", string(actor.Role))
}
